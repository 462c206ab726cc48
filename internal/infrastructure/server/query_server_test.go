package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_service "crypto-fund-tracer/internal/application/service"
	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

type transferRepoStub struct {
	records []entity.TransferRecord
}

func (s *transferRepoStub) LoadTransfers(_ context.Context) ([]entity.TransferRecord, error) {
	return s.records, nil
}

type mappingRepoStub struct {
	mappings []entity.EntityMapping
}

func (s *mappingRepoStub) LoadMappings(_ context.Context) ([]entity.EntityMapping, error) {
	return s.mappings, nil
}

func newTestServer(t *testing.T) *QueryServer {
	t.Helper()
	log, err := logger.NewLogger("error")
	require.NoError(t, err)

	ts := time.Date(2023, 11, 10, 12, 0, 0, 0, time.UTC)
	transfers := &transferRepoStub{records: []entity.TransferRecord{
		{TxID: "tx1", Timestamp: ts, FromAddress: "A", ToAddress: "B", Asset: "BTC",
			Amount: decimal.RequireFromString("0.05"), Fee: decimal.RequireFromString("0.0001")},
		{TxID: "tx2", Timestamp: ts, FromAddress: "B", ToAddress: "C", Asset: "BTC",
			Amount: decimal.RequireFromString("0.048"), Fee: decimal.RequireFromString("0.0001")},
	}}
	mappings := &mappingRepoStub{mappings: []entity.EntityMapping{
		{WalletAddress: "0xabc", EntityName: "Acme Exchange", EntityType: "exchange-hot-wallet", Confidence: 0.95, Source: "kyc"},
	}}

	cfg := &config.Config{
		App:   config.AppConfig{HTTPPort: 0},
		Trace: config.TraceConfig{DefaultMaxDepth: 3, MaxDepthLimit: 10},
	}
	return NewQueryServer(
		app_service.NewTraceApplicationService(transfers, log),
		app_service.NewEntityResolutionApplicationService(mappings, log),
		cfg,
		log,
	)
}

func doRequest(t *testing.T, s *QueryServer, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandlePath(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/path?source=A&target=C")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "A", body["source"])
	assert.Equal(t, "C", body["target"])
	assert.EqualValues(t, 2, body["total_hops"])
}

func TestHandlePathUnknownWalletIs404(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/path?source=Z&target=C")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePathDisconnectedIs404(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/path?source=C&target=A")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePathMissingParamsIs400(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/path?source=A")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTraceOutwardDefaultsDepth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/trace/outward?wallet=A")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 3, body["max_depth"])
	assert.EqualValues(t, 2, body["total_wallets_reached"])
}

func TestHandleTraceDepthOverLimitIs400(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/trace/outward?wallet=A&depth=99")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTraceNegativeDepthIs400(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/trace/inward?wallet=A&depth=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleResolve(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/xref/resolve?wallet=0xabc")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Acme Exchange", body["entity"])
	assert.Equal(t, "very_high", body["resolution_quality"])
}

func TestHandleResolveNotMappedIs404(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/xref/resolve?wallet=0xmissing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleValidate(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/xref/validate?wallet=0xabc&expected=Acme")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "partial_match", body["validation_status"])
}

func TestHandleConfidenceBadParamIs400(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/api/v1/xref/confidence?min=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
