package view

import (
	"strings"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/graph"
)

// Search limits. Queries shorter than two characters return nothing, and
// result lists are capped so a one-letter-at-a-time typist never sees the
// whole dataset scroll past.
const (
	searchMinQuery   = 2
	searchMaxResults = 10
)

// SearchResult is a single match of a title search.
type SearchResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// searchNodes matches the query case-insensitively against node titles as a
// substring, preserving dataset order. A non-nil visible predicate restricts
// matches to the nodes the current projection renders.
func searchNodes(d *graph.Dataset, query string, visible func(*graph.Node) bool) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < searchMinQuery {
		return nil
	}

	var results []SearchResult
	for _, n := range d.Nodes {
		if visible != nil && !visible(n) {
			continue
		}
		if !strings.Contains(strings.ToLower(n.Title), query) {
			continue
		}
		results = append(results, SearchResult{ID: n.ID, Title: n.Title})
		if len(results) == searchMaxResults {
			break
		}
	}
	return results
}
