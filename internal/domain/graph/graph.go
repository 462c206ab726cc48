package graph

import (
	"crypto-fund-tracer/internal/domain/entity"
)

// Graph is a directed multigraph over wallet addresses built from a ledger
// snapshot. Every transfer record becomes one edge attached to its ordered
// (from, to) pair; parallel edges between the same pair are all retained.
// Edges are owned by the graph and referenced by index into the edge arena,
// in input order. The graph is immutable once built and is rebuilt fresh per
// query from the current record set.
type Graph struct {
	edges    []entity.TransferRecord
	outgoing map[string][]int
	incoming map[string][]int
}

// New builds a graph from an ordered sequence of transfer records in O(E).
// No record is ever dropped; a self-transfer appears in both indexes for its
// node. A record with a negative amount or fee, or a zero timestamp, aborts
// construction with InvalidRecordError: callers must treat this as a fatal
// input error, not a per-record skip.
func New(records []entity.TransferRecord) (*Graph, error) {
	g := &Graph{
		edges:    make([]entity.TransferRecord, 0, len(records)),
		outgoing: make(map[string][]int),
		incoming: make(map[string][]int),
	}

	for _, rec := range records {
		if rec.Amount.IsNegative() {
			return nil, &entity.InvalidRecordError{TxID: rec.TxID, Reason: "negative amount"}
		}
		if rec.Fee.IsNegative() {
			return nil, &entity.InvalidRecordError{TxID: rec.TxID, Reason: "negative fee"}
		}
		if rec.Timestamp.IsZero() {
			return nil, &entity.InvalidRecordError{TxID: rec.TxID, Reason: "missing or unparsable timestamp"}
		}

		idx := len(g.edges)
		g.edges = append(g.edges, rec)
		g.outgoing[rec.FromAddress] = append(g.outgoing[rec.FromAddress], idx)
		g.incoming[rec.ToAddress] = append(g.incoming[rec.ToAddress], idx)
	}

	return g, nil
}

// HasWallet reports whether the address appears as the sender or receiver of
// at least one retained edge. Addresses are opaque and case-sensitive.
func (g *Graph) HasWallet(address string) bool {
	if _, ok := g.outgoing[address]; ok {
		return true
	}
	_, ok := g.incoming[address]
	return ok
}

// EdgeCount returns the total number of retained edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// WalletCount returns the number of distinct addresses present in the graph
func (g *Graph) WalletCount() int {
	seen := make(map[string]struct{}, len(g.outgoing)+len(g.incoming))
	for addr := range g.outgoing {
		seen[addr] = struct{}{}
	}
	for addr := range g.incoming {
		seen[addr] = struct{}{}
	}
	return len(seen)
}

// Outgoing returns the edges leaving the address, in input order
func (g *Graph) Outgoing(address string) []entity.TransferRecord {
	return g.edgesAt(g.outgoing[address])
}

// Incoming returns the edges arriving at the address, in input order
func (g *Graph) Incoming(address string) []entity.TransferRecord {
	return g.edgesAt(g.incoming[address])
}

func (g *Graph) edgesAt(idxs []int) []entity.TransferRecord {
	if len(idxs) == 0 {
		return nil
	}
	out := make([]entity.TransferRecord, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.edges[i])
	}
	return out
}
