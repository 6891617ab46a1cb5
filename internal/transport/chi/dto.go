package chi

import (
	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/usecase/tools"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest             ErrorCode = "bad_request"
	CodeValidationFailed       ErrorCode = "validation_failed"
	CodeUnauthorized           ErrorCode = "unauthorized"
	CodeCollectionNotFound     ErrorCode = "collection_not_found"
	CodeUnknownTool            ErrorCode = "unknown_tool"
	CodeStoreUnavailable       ErrorCode = "store_unavailable"
	CodeEmbeddingProviderError ErrorCode = "embedding_provider_error"
	CodeInternalError          ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Collections int               `json:"collections"`
}

// CollectionItem describes one catalog entry.
type CollectionItem struct {
	ID          string `json:"id"`
	StoreName   string `json:"store_name"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Description string `json:"description"`
	Ready       bool   `json:"ready"`
}

// CollectionListResponse is the GET /v1/collections body.
type CollectionListResponse struct {
	Items []CollectionItem `json:"items"`
	Count int              `json:"count"`
}

// SearchRequest is the POST /v1/search body.
type SearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// SearchResponse is the POST /v1/search body.
type SearchResponse struct {
	Query    string                `json:"query"`
	Category string                `json:"category"`
	Count    int                   `json:"count"`
	Results  []domain.SearchResult `json:"results"`
}

// DocumentInput is one passage in an ingestion request.
type DocumentInput struct {
	ID       string         `json:"id,omitempty"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AddDocumentsRequest is the POST /v1/collections/{id}/documents body.
type AddDocumentsRequest struct {
	Documents []DocumentInput `json:"documents"`
}

// AddDocumentsResponse reports the ingested documents.
type AddDocumentsResponse struct {
	Collection string   `json:"collection"`
	IDs        []string `json:"ids"`
	Tokens     int      `json:"tokens"`
}

// PowerResponse is the GET /v1/power body.
type PowerResponse struct {
	N          float64 `json:"n"`
	EffectSize float64 `json:"effect_size"`
	Alpha      float64 `json:"alpha"`
	Power      float64 `json:"power"`
	Adequate   bool    `json:"adequate"`
	// RequiredN is the per-group n reaching 80% power; omitted for a zero effect.
	RequiredN *int `json:"required_n,omitempty"`
}

// ToolListResponse is the GET /v1/tools body.
type ToolListResponse struct {
	Tools []tools.Definition `json:"tools"`
}

// ToolCallResponse wraps a tool result.
type ToolCallResponse struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}
