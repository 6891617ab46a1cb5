package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

// RegisterMetrics registers HTTP, embedding and retrieval metrics with the default registry.
// Safe to call more than once; only the first call registers.
func RegisterMetrics() {
	registerOnce.Do(func() {
		for _, c := range httpCollectors() {
			prometheus.MustRegister(c)
		}
		for _, c := range embeddingCollectors() {
			prometheus.MustRegister(c)
		}
		for _, c := range retrievalCollectors() {
			prometheus.MustRegister(c)
		}
	})
}
