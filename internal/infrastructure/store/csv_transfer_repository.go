package store

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/domain/repository"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

// CSVTransferRepository implements TransferRepository over a CSV snapshot
// with the header tx_hash,timestamp,from,to,asset,amount,fee,notes. Rows are
// returned in file order. Any malformed row aborts the whole load; there is
// no per-row skip.
type CSVTransferRepository struct {
	path            string
	timestampFormat string
	logger          *logger.Logger
}

// NewCSVTransferRepository creates a new CSV-backed transfer repository
func NewCSVTransferRepository(cfg *config.LedgerConfig, logger *logger.Logger) repository.TransferRepository {
	return &CSVTransferRepository{
		path:            cfg.TransfersFile,
		timestampFormat: cfg.TimestampFormat,
		logger:          logger.WithComponent("csv-transfer-repo"),
	}
}

// LoadTransfers returns every transfer record in source order
func (r *CSVTransferRepository) LoadTransfers(ctx context.Context) ([]entity.TransferRecord, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open transfers file %s", r.path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read transfers header from %s", r.path)
	}
	cols, err := columnIndex(header, "tx_hash", "timestamp", "from", "to", "asset", "amount", "fee", "notes")
	if err != nil {
		return nil, errors.Wrapf(err, "invalid transfers header in %s", r.path)
	}

	var records []entity.TransferRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read transfers row in %s", r.path)
		}

		record, err := r.parseRow(row, cols)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	r.logger.Debug("Loaded transfer records",
		zap.String("file", r.path),
		zap.Int("count", len(records)))
	return records, nil
}

func (r *CSVTransferRepository) parseRow(row []string, cols map[string]int) (entity.TransferRecord, error) {
	txID := field(row, cols, "tx_hash")

	timestamp, err := time.Parse(r.timestampFormat, field(row, cols, "timestamp"))
	if err != nil {
		return entity.TransferRecord{}, &entity.InvalidRecordError{TxID: txID, Reason: "unparsable timestamp"}
	}

	amount, err := decimal.NewFromString(field(row, cols, "amount"))
	if err != nil {
		return entity.TransferRecord{}, &entity.InvalidRecordError{TxID: txID, Reason: "unparsable amount"}
	}
	if amount.IsNegative() {
		return entity.TransferRecord{}, &entity.InvalidRecordError{TxID: txID, Reason: "negative amount"}
	}

	fee, err := decimal.NewFromString(field(row, cols, "fee"))
	if err != nil {
		return entity.TransferRecord{}, &entity.InvalidRecordError{TxID: txID, Reason: "unparsable fee"}
	}
	if fee.IsNegative() {
		return entity.TransferRecord{}, &entity.InvalidRecordError{TxID: txID, Reason: "negative fee"}
	}

	return entity.TransferRecord{
		TxID:        txID,
		Timestamp:   timestamp,
		FromAddress: field(row, cols, "from"),
		ToAddress:   field(row, cols, "to"),
		Asset:       field(row, cols, "asset"),
		Amount:      amount,
		Fee:         fee,
		Notes:       field(row, cols, "notes"),
	}, nil
}
