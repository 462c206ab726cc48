package graph

import (
	"github.com/shopspring/decimal"

	"crypto-fund-tracer/internal/domain/entity"
)

// Summarize aggregates the depth-1 activity of a single wallet: per-asset
// outbound and inbound totals, transaction counts and distinct counterparty
// counts on each side. No recursive traversal takes place. Returns
// WalletNotFoundError when the wallet has no edges at all.
func (g *Graph) Summarize(wallet string) (*entity.FlowReport, error) {
	if !g.HasWallet(wallet) {
		return nil, &entity.WalletNotFoundError{Address: wallet}
	}

	outbound := g.Outgoing(wallet)
	inbound := g.Incoming(wallet)

	outboundTotals := make(map[string]decimal.Decimal)
	outboundWallets := make(map[string]struct{})
	for _, edge := range outbound {
		outboundTotals[edge.Asset] = outboundTotals[edge.Asset].Add(edge.Amount)
		outboundWallets[edge.ToAddress] = struct{}{}
	}

	inboundTotals := make(map[string]decimal.Decimal)
	inboundWallets := make(map[string]struct{})
	for _, edge := range inbound {
		inboundTotals[edge.Asset] = inboundTotals[edge.Asset].Add(edge.Amount)
		inboundWallets[edge.FromAddress] = struct{}{}
	}

	return &entity.FlowReport{
		WalletAddress:             wallet,
		TotalOutboundTransactions: len(outbound),
		TotalInboundTransactions:  len(inbound),
		UniqueOutboundWallets:     len(outboundWallets),
		UniqueInboundWallets:      len(inboundWallets),
		OutboundTotalsByAsset:     outboundTotals,
		InboundTotalsByAsset:      inboundTotals,
		OutboundTransactions:      outbound,
		InboundTransactions:       inbound,
	}, nil
}
