package repository

import (
	"context"

	"crypto-fund-tracer/internal/domain/entity"
)

// MappingRepository defines access to the wallet-to-entity cross-reference
// snapshot
type MappingRepository interface {
	// LoadMappings returns every mapping row in source order, including
	// multiple rows for the same wallet.
	LoadMappings(ctx context.Context) ([]entity.EntityMapping, error)
}
