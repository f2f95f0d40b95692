package archive

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter restricts which archive members are scanned by glob patterns on
// their names. Names inside a ZIP always use forward slashes.
type Filter struct {
	patterns []string
}

// NewFilter validates the given glob patterns. An empty list matches everything.
func NewFilter(patterns []string) (*Filter, error) {
	var kept []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
		kept = append(kept, p)
	}
	return &Filter{patterns: kept}, nil
}

// Match reports whether name matches at least one pattern.
func (f *Filter) Match(name string) bool {
	if f == nil || len(f.patterns) == 0 {
		return true
	}
	for _, p := range f.patterns {
		// Patterns were validated in NewFilter, so the error is always nil.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Patterns returns the active patterns.
func (f *Filter) Patterns() []string {
	if f == nil {
		return nil
	}
	return f.patterns
}
