package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger("error")
	require.NoError(t, err)
	return log
}

func TestLoadTransfersKeepsFileOrder(t *testing.T) {
	path := writeSnapshot(t, "tx.csv",
		"tx_hash,timestamp,from,to,asset,amount,fee,notes\n"+
			"tx1,2023-11-10T12:00:00Z,A,B,BTC,0.05,0.0001,first hop\n"+
			"tx2,2023-11-10T12:05:00Z,B,C,BTC,0.048,0.0001,second hop\n")

	repo := NewCSVTransferRepository(&config.LedgerConfig{
		TransfersFile:   path,
		TimestampFormat: time.RFC3339,
	}, testLogger(t))

	records, err := repo.LoadTransfers(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "tx1", records[0].TxID)
	assert.Equal(t, "A", records[0].FromAddress)
	assert.Equal(t, "B", records[0].ToAddress)
	assert.Equal(t, "BTC", records[0].Asset)
	assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("0.05")))
	assert.True(t, records[0].Fee.Equal(decimal.RequireFromString("0.0001")))
	assert.Equal(t, "first hop", records[0].Notes)
	assert.Equal(t, "tx2", records[1].TxID)
}

func TestLoadTransfersNegativeFeeAbortsLoad(t *testing.T) {
	path := writeSnapshot(t, "tx.csv",
		"tx_hash,timestamp,from,to,asset,amount,fee,notes\n"+
			"tx1,2023-11-10T12:00:00Z,A,B,BTC,0.05,0.0001,ok\n"+
			"tx2,2023-11-10T12:05:00Z,B,C,BTC,0.048,-0.0001,bad\n")

	repo := NewCSVTransferRepository(&config.LedgerConfig{
		TransfersFile:   path,
		TimestampFormat: time.RFC3339,
	}, testLogger(t))

	records, err := repo.LoadTransfers(context.Background())
	assert.Nil(t, records)

	var invalid *entity.InvalidRecordError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "tx2", invalid.TxID)
}

func TestLoadTransfersUnparsableTimestampAbortsLoad(t *testing.T) {
	path := writeSnapshot(t, "tx.csv",
		"tx_hash,timestamp,from,to,asset,amount,fee,notes\n"+
			"tx1,not-a-timestamp,A,B,BTC,0.05,0.0001,bad\n")

	repo := NewCSVTransferRepository(&config.LedgerConfig{
		TransfersFile:   path,
		TimestampFormat: time.RFC3339,
	}, testLogger(t))

	_, err := repo.LoadTransfers(context.Background())

	var invalid *entity.InvalidRecordError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "tx1", invalid.TxID)
}

func TestLoadTransfersMissingColumn(t *testing.T) {
	path := writeSnapshot(t, "tx.csv", "tx_hash,timestamp,from,to,asset,amount\n")

	repo := NewCSVTransferRepository(&config.LedgerConfig{
		TransfersFile:   path,
		TimestampFormat: time.RFC3339,
	}, testLogger(t))

	_, err := repo.LoadTransfers(context.Background())
	assert.ErrorContains(t, err, "fee")
}

func TestLoadTransfersMissingFile(t *testing.T) {
	repo := NewCSVTransferRepository(&config.LedgerConfig{
		TransfersFile:   filepath.Join(t.TempDir(), "missing.csv"),
		TimestampFormat: time.RFC3339,
	}, testLogger(t))

	_, err := repo.LoadTransfers(context.Background())
	assert.Error(t, err)
}

func TestLoadMappingsKeepsDuplicateWalletRows(t *testing.T) {
	path := writeSnapshot(t, "xref.csv",
		"wallet,entity,type,confidence,source\n"+
			"0xabc,Acme Exchange,exchange-hot-wallet,0.95,kyc\n"+
			"0xabc,Acme Holdings,unknown,0.6,heuristic\n")

	repo := NewCSVMappingRepository(&config.LedgerConfig{MappingsFile: path}, testLogger(t))

	mappings, err := repo.LoadMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, "Acme Exchange", mappings[0].EntityName)
	assert.Equal(t, 0.95, mappings[0].Confidence)
	assert.Equal(t, "heuristic", mappings[1].Source)
}

func TestLoadMappingsOutOfRangeConfidencePassesThrough(t *testing.T) {
	path := writeSnapshot(t, "xref.csv",
		"wallet,entity,type,confidence,source\n"+
			"0xabc,Acme Exchange,exchange-hot-wallet,1.4,kyc\n")

	repo := NewCSVMappingRepository(&config.LedgerConfig{MappingsFile: path}, testLogger(t))

	mappings, err := repo.LoadMappings(context.Background())
	require.NoError(t, err)
	require.Len(t, mappings, 1)
	assert.Equal(t, 1.4, mappings[0].Confidence)
}

func TestLoadMappingsUnparsableConfidenceAbortsLoad(t *testing.T) {
	path := writeSnapshot(t, "xref.csv",
		"wallet,entity,type,confidence,source\n"+
			"0xabc,Acme Exchange,exchange-hot-wallet,high,kyc\n")

	repo := NewCSVMappingRepository(&config.LedgerConfig{MappingsFile: path}, testLogger(t))

	_, err := repo.LoadMappings(context.Background())
	assert.Error(t, err)
}
