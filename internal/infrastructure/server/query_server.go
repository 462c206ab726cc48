package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"crypto-fund-tracer/internal/domain/entity"
	"crypto-fund-tracer/internal/domain/service"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
)

// QueryServer exposes the trace and entity-resolution services as a
// read-only JSON API. Typed not-found results map to 404, bad query
// parameters to 400 and load or build failures to 500.
type QueryServer struct {
	traces service.TraceService
	xref   service.EntityResolutionService
	cfg    *config.Config
	logger *logger.Logger
	server *http.Server
}

// NewQueryServer creates a new query server
func NewQueryServer(
	traces service.TraceService,
	xref service.EntityResolutionService,
	cfg *config.Config,
	logger *logger.Logger,
) *QueryServer {
	s := &QueryServer{
		traces: traces,
		xref:   xref,
		cfg:    cfg,
		logger: logger.WithComponent("query-server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/path", s.handlePath)
	mux.HandleFunc("/api/v1/trace/outward", s.handleTraceOutward)
	mux.HandleFunc("/api/v1/trace/inward", s.handleTraceInward)
	mux.HandleFunc("/api/v1/wallets/summary", s.handleWalletSummary)
	mux.HandleFunc("/api/v1/xref/resolve", s.handleResolve)
	mux.HandleFunc("/api/v1/xref/entities", s.handleEntities)
	mux.HandleFunc("/api/v1/xref/confidence", s.handleConfidence)
	mux.HandleFunc("/api/v1/xref/sources", s.handleSources)
	mux.HandleFunc("/api/v1/xref/types", s.handleTypes)
	mux.HandleFunc("/api/v1/xref/validate", s.handleValidate)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.HTTPPort),
		Handler: mux,
	}
	return s
}

// Start begins serving in the background
func (s *QueryServer) Start() {
	go func() {
		s.logger.Info("Query server listening", zap.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Query server error", zap.Error(err))
		}
	}()
}

// Stop shuts the server down gracefully
func (s *QueryServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *QueryServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *QueryServer) handlePath(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	target := r.URL.Query().Get("target")
	if source == "" || target == "" {
		s.writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}

	result, err := s.traces.FindPath(r.Context(), source, target)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *QueryServer) handleTraceOutward(w http.ResponseWriter, r *http.Request) {
	s.handleTrace(w, r, s.traces.TraceOutward)
}

func (s *QueryServer) handleTraceInward(w http.ResponseWriter, r *http.Request) {
	s.handleTrace(w, r, s.traces.TraceInward)
}

func (s *QueryServer) handleTrace(
	w http.ResponseWriter,
	r *http.Request,
	trace func(ctx context.Context, start string, maxDepth int) (*entity.TraceResult, error),
) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		s.writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	depth := s.cfg.Trace.DefaultMaxDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "depth must be a non-negative integer")
			return
		}
		depth = parsed
	}
	if depth > s.cfg.Trace.MaxDepthLimit {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("depth exceeds limit of %d", s.cfg.Trace.MaxDepthLimit))
		return
	}

	result, err := trace(r.Context(), wallet, depth)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *QueryServer) handleWalletSummary(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		s.writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	report, err := s.traces.SummarizeWallet(r.Context(), wallet)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *QueryServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		s.writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	resolution, err := s.xref.Resolve(r.Context(), wallet)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resolution)
}

func (s *QueryServer) handleEntities(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := s.xref.FindByEntity(r.Context(), name)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *QueryServer) handleConfidence(w http.ResponseWriter, r *http.Request) {
	min, err := parseFloatParam(r, "min", 0.0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "min must be a number")
		return
	}
	max, err := parseFloatParam(r, "max", 1.0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "max must be a number")
		return
	}

	result, qerr := s.xref.SearchByConfidence(r.Context(), min, max)
	if qerr != nil {
		s.writeQueryError(w, qerr)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *QueryServer) handleSources(w http.ResponseWriter, r *http.Request) {
	report, err := s.xref.SourceReliability(r.Context())
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *QueryServer) handleTypes(w http.ResponseWriter, r *http.Request) {
	report, err := s.xref.TypeSummary(r.Context())
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *QueryServer) handleValidate(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	expected := r.URL.Query().Get("expected")
	if wallet == "" || expected == "" {
		s.writeError(w, http.StatusBadRequest, "wallet and expected are required")
		return
	}

	result, err := s.xref.Validate(r.Context(), wallet, expected)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// writeQueryError maps typed domain results onto HTTP statuses. Not-found
// outcomes are recoverable query results and are reported verbatim; anything
// else means the snapshot itself failed to load or build.
func (s *QueryServer) writeQueryError(w http.ResponseWriter, err error) {
	var walletErr *entity.WalletNotFoundError
	var notMapped *entity.NotMappedError
	switch {
	case errors.As(err, &walletErr), errors.As(err, &notMapped), errors.Is(err, entity.ErrNoPathExists):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Query failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *QueryServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *QueryServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func parseFloatParam(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(raw, 64)
}
