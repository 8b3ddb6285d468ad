package browser

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilterConfig bundles tuning parameters for fuzzy search.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

// DefaultFilterConfig is what the dashboard uses for fuzzy mode.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinCoverage: 0.6,
		MaxSpread:   40,
		MaxResults:  200,
	}
}

// Filter returns the orders whose display name or raw file identifier
// contains query, ignoring case. An empty query matches everything. The
// result keeps load order.
func (b *Browser) Filter(query string) []Order {
	if query == "" {
		return append([]Order(nil), b.orders...)
	}
	out := make([]Order, 0, len(b.orders))
	for _, o := range b.orders {
		if label, ok := b.names.Lookup(o.File); ok && containsFold(label, query) {
			out = append(out, o)
			continue
		}
		if containsFold(o.File, query) {
			out = append(out, o)
		}
	}
	return out
}

// FilterFuzzy ranks orders by fuzzy similarity of query against display name
// and file identifier. Matches that cover too little of the query or spread
// too far are pruned; if pruning leaves nothing the raw ranking is used.
func (b *Browser) FilterFuzzy(query string, cfg FilterConfig) []Order {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return b.Filter("")
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = len(b.orders)
	}
	base := make([]string, len(b.orders))
	for i, o := range b.orders {
		base[i] = strings.ToLower(b.names.Display(o.File) + "  " + o.File)
	}
	matches := fuzzy.Find(q, base)

	pruned := make([]Order, 0, len(matches))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage {
			continue
		}
		if matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, b.orders[mt.Index])
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	if len(pruned) == 0 {
		for i := 0; i < len(matches) && i < cfg.MaxResults; i++ {
			pruned = append(pruned, b.orders[matches[i].Index])
		}
	}
	return pruned
}

// matchCoverage returns the ratio of matched characters to the query length.
func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// matchSpread returns the distance between the first and last matched index.
func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
