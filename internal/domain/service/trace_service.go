package service

import (
	"context"

	"crypto-fund-tracer/internal/domain/entity"
)

// TraceService defines the graph query operations over the ledger snapshot
type TraceService interface {
	// FindPath finds the shortest path between two wallets
	FindPath(ctx context.Context, source, target string) (*entity.PathResult, error)

	// TraceOutward finds all wallets reachable from a start wallet within maxDepth hops
	TraceOutward(ctx context.Context, start string, maxDepth int) (*entity.TraceResult, error)

	// TraceInward finds all wallets that fed a start wallet within maxDepth hops
	TraceInward(ctx context.Context, start string, maxDepth int) (*entity.TraceResult, error)

	// SummarizeWallet aggregates the direct inbound and outbound activity of a wallet
	SummarizeWallet(ctx context.Context, wallet string) (*entity.FlowReport, error)
}
