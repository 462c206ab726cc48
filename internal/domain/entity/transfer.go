package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRecord represents a single on-chain transfer from the ledger snapshot
type TransferRecord struct {
	TxID        string          `json:"tx_id"`
	Timestamp   time.Time       `json:"timestamp"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	Notes       string          `json:"notes"`
}

// PathHop represents one traversed edge of a shortest path
type PathHop struct {
	Hop         int             `json:"hop"`
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	TxID        string          `json:"tx_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Notes       string          `json:"notes"`
}

// PathResult represents the shortest path found between two wallets.
// TotalFees is the sum of each hop's fee. FinalAmount is the literal amount
// of the last hop; intermediate amounts are not chained arithmetic.
type PathResult struct {
	Source      string          `json:"source"`
	Target      string          `json:"target"`
	PathNodes   []string        `json:"path_nodes"`
	TotalHops   int             `json:"total_hops"`
	TotalFees   decimal.Decimal `json:"total_fees"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Hops        []PathHop       `json:"path_details"`
}

// TraceDirection indicates whether a bounded traversal follows outgoing or
// incoming edges
type TraceDirection string

const (
	TraceOutward TraceDirection = "outward"
	TraceInward  TraceDirection = "inward"
)

// TraceEdge represents an edge observed during a bounded traversal, tagged
// with the depth at which it was traversed
type TraceEdge struct {
	FromAddress string          `json:"from_address"`
	ToAddress   string          `json:"to_address"`
	Depth       int             `json:"depth"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Fee         decimal.Decimal `json:"fee"`
	TxID        string          `json:"tx_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Notes       string          `json:"notes"`
}

// TraceResult represents the outcome of a depth-limited traversal. Each wallet
// appears under the depth at which it was first reached; the start wallet
// (depth 0) is excluded from the reached set and counts.
type TraceResult struct {
	StartWallet         string           `json:"start_wallet"`
	Direction           TraceDirection   `json:"direction"`
	MaxDepth            int              `json:"max_depth"`
	TotalEdges          int              `json:"total_edges"`
	TotalWalletsReached int              `json:"total_wallets_reached"`
	WalletsByDepth      map[int][]string `json:"wallets_by_depth"`
	Edges               []TraceEdge      `json:"edges"`
	ReachableWallets    []string         `json:"all_reachable_wallets"`
}

// FlowReport represents a single-hop activity summary for one wallet.
// Unique wallet counts are distinct counterparty addresses, not transaction
// counts.
type FlowReport struct {
	WalletAddress             string                     `json:"wallet_address"`
	TotalOutboundTransactions int                        `json:"total_outbound_transactions"`
	TotalInboundTransactions  int                        `json:"total_inbound_transactions"`
	UniqueOutboundWallets     int                        `json:"unique_outbound_wallets"`
	UniqueInboundWallets      int                        `json:"unique_inbound_wallets"`
	OutboundTotalsByAsset     map[string]decimal.Decimal `json:"outbound_totals_by_asset"`
	InboundTotalsByAsset      map[string]decimal.Decimal `json:"inbound_totals_by_asset"`
	OutboundTransactions      []TransferRecord           `json:"outbound_transactions"`
	InboundTransactions       []TransferRecord           `json:"inbound_transactions"`
}
