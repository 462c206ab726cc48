package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/domain/graph"
	"crypto-fund-tracer/internal/domain/repository"
	"crypto-fund-tracer/internal/domain/service"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

// TraceApplicationService implements TraceService. The transaction graph is
// rebuilt from the ledger snapshot on every query, so a query can never see
// stale state; callers needing low-latency repeated queries should cache at
// their own layer for the lifetime of one snapshot.
type TraceApplicationService struct {
	transfers repository.TransferRepository
	logger    *logger.Logger
}

// NewTraceApplicationService creates a new trace application service
func NewTraceApplicationService(
	transfers repository.TransferRepository,
	logger *logger.Logger,
) service.TraceService {
	return &TraceApplicationService{
		transfers: transfers,
		logger:    logger.WithComponent("trace-service"),
	}
}

// FindPath finds the shortest path between two wallets
func (s *TraceApplicationService) FindPath(ctx context.Context, source, target string) (*entity.PathResult, error) {
	g, err := s.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	result, err := g.FindPath(source, target)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Found path between wallets",
		zap.String("source", source),
		zap.String("target", target),
		zap.Int("hops", result.TotalHops))
	return result, nil
}

// TraceOutward finds all wallets reachable from a start wallet within maxDepth hops
func (s *TraceApplicationService) TraceOutward(ctx context.Context, start string, maxDepth int) (*entity.TraceResult, error) {
	g, err := s.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	result, err := g.TraceOutward(start, maxDepth)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Traced outward flows",
		zap.String("start_wallet", start),
		zap.Int("max_depth", maxDepth),
		zap.Int("wallets_reached", result.TotalWalletsReached),
		zap.Int("edges", result.TotalEdges))
	return result, nil
}

// TraceInward finds all wallets that fed a start wallet within maxDepth hops
func (s *TraceApplicationService) TraceInward(ctx context.Context, start string, maxDepth int) (*entity.TraceResult, error) {
	g, err := s.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	result, err := g.TraceInward(start, maxDepth)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Traced inward flows",
		zap.String("start_wallet", start),
		zap.Int("max_depth", maxDepth),
		zap.Int("wallets_reached", result.TotalWalletsReached),
		zap.Int("edges", result.TotalEdges))
	return result, nil
}

// SummarizeWallet aggregates the direct inbound and outbound activity of a wallet
func (s *TraceApplicationService) SummarizeWallet(ctx context.Context, wallet string) (*entity.FlowReport, error) {
	g, err := s.buildGraph(ctx)
	if err != nil {
		return nil, err
	}

	report, err := g.Summarize(wallet)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Summarized wallet activity",
		zap.String("wallet", wallet),
		zap.Int("outbound", report.TotalOutboundTransactions),
		zap.Int("inbound", report.TotalInboundTransactions))
	return report, nil
}

func (s *TraceApplicationService) buildGraph(ctx context.Context) (*graph.Graph, error) {
	started := time.Now()

	records, err := s.transfers.LoadTransfers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transfer records")
	}

	g, err := graph.New(records)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction graph")
	}

	s.logger.Debug("Built transaction graph",
		zap.Int("edges", g.EdgeCount()),
		zap.Int("wallets", g.WalletCount()),
		zap.Duration("took", time.Since(started)))
	return g, nil
}
