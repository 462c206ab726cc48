package service

import (
	"context"

	"crypto-fund-tracer/internal/domain/entity"
)

// EntityResolutionService defines the wallet-to-entity resolution operations
type EntityResolutionService interface {
	// Resolve maps a wallet address to its best entity mapping
	Resolve(ctx context.Context, walletAddress string) (*entity.EntityResolution, error)

	// FindByEntity lists mapping rows whose entity name matches a substring
	FindByEntity(ctx context.Context, nameSubstring string) (*entity.EntitySearchResult, error)

	// SearchByConfidence lists mapping rows within an inclusive confidence range
	SearchByConfidence(ctx context.Context, min, max float64) (*entity.ConfidenceSearchResult, error)

	// SourceReliability ranks mapping sources by mean confidence
	SourceReliability(ctx context.Context) (*entity.SourceReliabilityReport, error)

	// TypeSummary reports the entity type distribution of the snapshot
	TypeSummary(ctx context.Context) (*entity.TypeSummaryReport, error)

	// Validate compares the resolved entity for a wallet against an expectation
	Validate(ctx context.Context, walletAddress, expectedEntity string) (*entity.ValidationResult, error)
}
