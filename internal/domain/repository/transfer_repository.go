package repository

import (
	"context"

	"crypto-fund-tracer/internal/domain/entity"
)

// TransferRepository defines access to the authoritative ledger snapshot
type TransferRepository interface {
	// LoadTransfers returns every transfer record in source order. A single
	// malformed row aborts the whole load.
	LoadTransfers(ctx context.Context) ([]entity.TransferRecord, error)
}
