package chi

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/inference"
	healthuc "github.com/kailas-cloud/quantmaster/internal/usecase/health"
	"github.com/kailas-cloud/quantmaster/internal/usecase/retrieval"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the knowledge base and inference API.
type Server struct {
	retriever     Retriever
	catalog       Catalog
	readiness     Readiness
	tools         ToolDispatcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	retriever Retriever,
	cat Catalog,
	readiness Readiness,
	tools ToolDispatcher,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		retriever: retriever,
		catalog:   cat,
		readiness: readiness,
		tools:     tools,
		health:    health,
		logger:    logger,
	}
	// Order matters: ingestion into an unknown collection wraps both not-found and invalid input.
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCollectionNotFound, http.StatusNotFound, CodeCollectionNotFound),
		sentinelHandler(domain.ErrUnknownTool, http.StatusNotFound, CodeUnknownTool),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, CodeStoreUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, CodeEmbeddingProviderError),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/collections", s.ListCollections)
		r.Post("/collections/{id}/documents", s.AddDocuments)
		r.Post("/search", s.Search)
		r.Get("/power", s.Power)
		r.Get("/tools", s.ListTools)
		r.Post("/tools/{name}", s.CallTool)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		Collections: report.Collections,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ListCollections handles GET /v1/collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	var category *string
	if err := runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &category); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	var filter string
	if category != nil {
		filter = *category
	}
	descs, err := s.catalog.Targets(filter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]CollectionItem, len(descs))
	for i, d := range descs {
		items[i] = s.collectionItem(d)
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items, Count: len(items)})
}

func (s *Server) collectionItem(d catalog.Descriptor) CollectionItem {
	_, ready := s.readiness.Collection(d.StoreName())
	return CollectionItem{
		ID:          d.ID(),
		StoreName:   d.StoreName(),
		Category:    string(d.Category()),
		Level:       string(d.Level()),
		Description: d.Description(),
		Ready:       ready,
	}
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	results, err := s.retriever.Search(ctx, retrieval.Query{
		Text:     req.Query,
		Category: req.Category,
		Limit:    req.Limit,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	category := req.Category
	if category == "" {
		category = catalog.All
	}
	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, SearchResponse{
		Query:    req.Query,
		Category: category,
		Count:    len(results),
		Results:  results,
	})
}

// AddDocuments handles POST /v1/collections/{id}/documents.
func (s *Server) AddDocuments(w http.ResponseWriter, r *http.Request) {
	var req AddDocumentsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	docs := make([]retrieval.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = retrieval.Document{ID: d.ID, Content: d.Content, Metadata: d.Metadata}
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	res, err := s.retriever.AddDocuments(ctx, chi.URLParam(r, "id"), docs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusCreated, AddDocumentsResponse{
		Collection: res.Collection,
		IDs:        res.IDs,
		Tokens:     res.Tokens,
	})
}

// Power handles GET /v1/power?n=&effect_size=&alpha=.
func (s *Server) Power(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var n, effectSize float64
	var alpha *float64
	if err := runtime.BindQueryParameter("form", true, true, "n", query, &n); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "effect_size", query, &effectSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "alpha", query, &alpha); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	a := inference.DefaultAlpha
	if alpha != nil {
		a = *alpha
	}
	power, err := inference.CalculatePower(n, effectSize, a)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := PowerResponse{
		N:          n,
		EffectSize: effectSize,
		Alpha:      a,
		Power:      math.Round(power*1e4) / 1e4,
		Adequate:   power >= inference.DefaultPower,
	}
	if effectSize != 0 {
		if required, err := inference.CalculateSampleSize(effectSize, a, inference.DefaultPower); err == nil {
			resp.RequiredN = &required
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTools handles GET /v1/tools.
func (s *Server) ListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ToolListResponse{Tools: s.tools.Definitions()})
}

// CallTool handles POST /v1/tools/{name}. The body is the tool's JSON arguments.
func (s *Server) CallTool(w http.ResponseWriter, r *http.Request) {
	args, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(args) > 0 && !json.Valid(args) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: arguments must be JSON")
		return
	}

	name := chi.URLParam(r, "name")
	ctx, usage := domain.NewContextWithUsage(r.Context())
	result, err := s.tools.Call(ctx, name, args)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, ToolCallResponse{Tool: name, Result: result})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage.Used() {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.Tokens()))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-facing message without exposing internals.
// Validation errors carry the caller's own input, so they are returned in full.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrCollectionNotFound) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrCollectionNotFound,
		domain.ErrUnknownTool,
		domain.ErrStoreUnavailable,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
