package store

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/domain/repository"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

// CSVMappingRepository implements MappingRepository over a CSV snapshot with
// the header wallet,entity,type,confidence,source. Confidence values are
// parsed but not range-checked: out-of-range scores pass through unchanged.
type CSVMappingRepository struct {
	path   string
	logger *logger.Logger
}

// NewCSVMappingRepository creates a new CSV-backed mapping repository
func NewCSVMappingRepository(cfg *config.LedgerConfig, logger *logger.Logger) repository.MappingRepository {
	return &CSVMappingRepository{
		path:   cfg.MappingsFile,
		logger: logger.WithComponent("csv-mapping-repo"),
	}
}

// LoadMappings returns every mapping row in source order
func (r *CSVMappingRepository) LoadMappings(ctx context.Context) ([]entity.EntityMapping, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open mappings file %s", r.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read mappings header from %s", r.path)
	}
	cols, err := columnIndex(header, "wallet", "entity", "type", "confidence", "source")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid mappings header in %s", r.path)
	}

	var mappings []entity.EntityMapping
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read mappings row in %s", r.path)
		}

		wallet := field(row, cols, "wallet")
		confidence, err := strconv.ParseFloat(field(row, cols, "confidence"), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "unparsable confidence for wallet %s", wallet)
		}

		mappings = append(mappings, entity.EntityMapping{
			WalletAddress: wallet,
			EntityName:    field(row, cols, "entity"),
			EntityType:    field(row, cols, "type"),
			Confidence:    confidence,
			Source:        field(row, cols, "source"),
		})
	}

	r.logger.Debug("Loaded entity mappings",
		zap.String("file", r.path),
		zap.Int("count", len(mappings)))
	return mappings, nil
}
