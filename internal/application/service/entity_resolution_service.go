package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/domain/repository"
	"crypto-fund-tracer/internal/domain/service"
	"crypto-fund-tracer/internal/domain/xref"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

// EntityResolutionApplicationService implements EntityResolutionService over
// the cross-reference snapshot. Like the trace service it reindexes the
// snapshot per query.
type EntityResolutionApplicationService struct {
	mappings repository.MappingRepository
	logger   *logger.Logger
}

// NewEntityResolutionApplicationService creates a new entity resolution application service
func NewEntityResolutionApplicationService(
	mappings repository.MappingRepository,
	logger *logger.Logger,
) service.EntityResolutionService {
	return &EntityResolutionApplicationService{
		mappings: mappings,
		logger:   logger.WithComponent("entity-resolution-service"),
	}
}

// Resolve maps a wallet address to its best entity mapping
func (s *EntityResolutionApplicationService) Resolve(ctx context.Context, walletAddress string) (*entity.EntityResolution, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	resolution, err := resolver.Resolve(walletAddress)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resolved wallet to entity",
		zap.String("wallet", walletAddress),
		zap.String("entity", resolution.EntityName),
		zap.Float64("confidence", resolution.Confidence),
		zap.String("source", resolution.Source))
	return resolution, nil
}

// FindByEntity lists mapping rows whose entity name matches a substring
func (s *EntityResolutionApplicationService) FindByEntity(ctx context.Context, nameSubstring string) (*entity.EntitySearchResult, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	result := resolver.FindByEntity(nameSubstring)
	s.logger.Info("Searched mappings by entity name",
		zap.String("search_term", nameSubstring),
		zap.Int("entities_found", result.EntitiesFound),
		zap.Int("total_wallets", result.TotalWallets))
	return result, nil
}

// SearchByConfidence lists mapping rows within an inclusive confidence range
func (s *EntityResolutionApplicationService) SearchByConfidence(ctx context.Context, min, max float64) (*entity.ConfidenceSearchResult, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	result := resolver.SearchByConfidence(min, max)
	s.logger.Info("Searched mappings by confidence range",
		zap.Float64("min", min),
		zap.Float64("max", max),
		zap.Int("total_mappings", result.TotalMappings))
	return result, nil
}

// SourceReliability ranks mapping sources by mean confidence
func (s *EntityResolutionApplicationService) SourceReliability(ctx context.Context) (*entity.SourceReliabilityReport, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	report := resolver.SourceReliability()
	s.logger.Info("Analyzed mapping source reliability",
		zap.Int("total_sources", report.TotalSources))
	return report, nil
}

// TypeSummary reports the entity type distribution of the snapshot
func (s *EntityResolutionApplicationService) TypeSummary(ctx context.Context) (*entity.TypeSummaryReport, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	report := resolver.TypeSummary()
	s.logger.Info("Summarized mapping types",
		zap.Int("total_mappings", report.TotalMappings),
		zap.Int("unique_entities", report.UniqueEntities))
	return report, nil
}

// Validate compares the resolved entity for a wallet against an expectation
func (s *EntityResolutionApplicationService) Validate(ctx context.Context, walletAddress, expectedEntity string) (*entity.ValidationResult, error) {
	resolver, err := s.buildResolver(ctx)
	if err != nil {
		return nil, err
	}

	result := xref.NewValidator(resolver).Validate(walletAddress, expectedEntity)
	s.logger.Info("Validated wallet mapping",
		zap.String("wallet", walletAddress),
		zap.String("expected_entity", expectedEntity),
		zap.String("status", string(result.Status)))
	return result, nil
}

func (s *EntityResolutionApplicationService) buildResolver(ctx context.Context) (*xref.Resolver, error) {
	rows, err := s.mappings.LoadMappings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entity mappings")
	}
	return xref.NewResolver(rows), nil
}
