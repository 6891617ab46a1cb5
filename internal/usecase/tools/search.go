package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/quantmaster/internal/domain"
	"github.com/kailas-cloud/quantmaster/internal/domain/catalog"
	"github.com/kailas-cloud/quantmaster/internal/usecase/retrieval"
)

// maxSnippetRunes bounds the passage text returned per result.
const maxSnippetRunes = 500

type searchArgs struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	NResults int    `json:"n_results"`
}

// SearchResponse is the search_stats_knowledge output.
type SearchResponse struct {
	Query        string       `json:"query"`
	Category     string       `json:"category"`
	ResultsCount int          `json:"results_count"`
	Results      []SearchItem `json:"results"`
}

// SearchItem is one passage. Relevance is 1 − distance with three decimals,
// or "N/A" when the distance is zero or absent.
type SearchItem struct {
	Content   string `json:"content"`
	Source    string `json:"source"`
	Relevance string `json:"relevance"`
}

func (d *Dispatcher) searchKnowledge(ctx context.Context, raw json.RawMessage) (any, error) {
	var args searchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.Category == "" {
		args.Category = catalog.All
	}

	results, err := d.searcher.Search(ctx, retrieval.Query{
		Text:     args.Query,
		Category: args.Category,
		Limit:    args.NResults,
	})
	if err != nil {
		return nil, err
	}

	items := make([]SearchItem, len(results))
	for i, r := range results {
		items[i] = SearchItem{
			Content:   truncateRunes(r.Content, maxSnippetRunes),
			Source:    r.Source(),
			Relevance: relevance(r),
		}
	}
	return SearchResponse{
		Query:        args.Query,
		Category:     args.Category,
		ResultsCount: len(items),
		Results:      items,
	}, nil
}

func relevance(r domain.SearchResult) string {
	if r.Distance == nil || *r.Distance == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", 1-*r.Distance)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
