package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure. Search still answers, possibly with a notice.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Check names.
const (
	CheckStore         = "store"
	CheckEmbedding     = "embedding"
	CheckKnowledgeBase = "knowledge_base"
)

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	Collections int
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	embedding EmbeddingChecker
	kb        KnowledgeBase
}

// New creates a Service. embedding and kb can be nil.
func New(store StorePinger, embedding EmbeddingChecker, kb KnowledgeBase) *Service {
	return &Service{store: store, embedding: embedding, kb: kb}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var collections int

	checks[CheckStore] = result(s.store.Ping(ctx))

	if s.embedding != nil {
		checks[CheckEmbedding] = result(s.embedding.HealthCheck(ctx))
	}

	if s.kb != nil {
		collections = s.kb.Ready()
		if s.kb.IsAvailable() && collections > 0 {
			checks[CheckKnowledgeBase] = CheckOK
		} else {
			checks[CheckKnowledgeBase] = CheckError
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, Collections: collections}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
