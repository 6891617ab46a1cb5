package domain

// Metadata keys set on the degraded-mode notice.
const (
	MetaType          = "type"
	MetaSource        = "source"
	MetaCollection    = "collection"
	TypeSystemNotice  = "system_notice"
	SourceSystem      = "system"
	DefaultSourceName = "knowledge_base"
)

// SearchResult is one retrieved passage.
// Metadata values are primitives (string, float64, bool).
type SearchResult struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Distance *float64       `json:"distance,omitempty"`
}

// EffectiveDistance is the distance used for ranking; an absent distance ranks as 0.
func (r SearchResult) EffectiveDistance() float64 {
	if r.Distance == nil {
		return 0
	}
	return *r.Distance
}

// IsSystemNotice reports whether r is a synthetic notice rather than a stored passage.
func (r SearchResult) IsSystemNotice() bool {
	t, _ := r.Metadata[MetaType].(string)
	return t == TypeSystemNotice
}

// Source returns the metadata source or DefaultSourceName.
func (r SearchResult) Source() string {
	if s, ok := r.Metadata[MetaSource].(string); ok && s != "" {
		return s
	}
	return DefaultSourceName
}
