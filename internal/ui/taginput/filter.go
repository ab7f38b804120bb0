package taginput

import (
	"fmt"
	"strings"

	"taginput/internal/domain"
)

// FilterPolicy decides how raw text narrows the candidate options
type FilterPolicy int

const (
	// FilterLookup leaves narrowing to the lookup, which already searched the term
	FilterLookup FilterPolicy = iota
	// FilterSubstring keeps candidates whose label contains the raw text
	FilterSubstring
)

// ParseFilterPolicy maps a config name to a policy
func ParseFilterPolicy(name string) (FilterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lookup":
		return FilterLookup, nil
	case "substring":
		return FilterSubstring, nil
	default:
		return FilterLookup, fmt.Errorf("unknown filter policy %q", name)
	}
}

// Filter returns the candidates eligible for display. Candidates already in
// selection are always excluded.
func Filter(policy FilterPolicy, rawText string, candidates []domain.Option, selection domain.Selection) []domain.Option {
	out := make([]domain.Option, 0, len(candidates))
	for _, opt := range candidates {
		if selection.HasValue(opt.Value) {
			continue
		}
		if policy == FilterSubstring && !strings.Contains(opt.Label, rawText) {
			continue
		}
		out = append(out, opt)
	}
	return out
}
