package lookup

import (
	"context"
	"strings"
	"sync"
	"time"

	"taginput/internal/domain"
)

// Source answers a search term with matching options
type Source interface {
	Search(ctx context.Context, term string) ([]domain.Option, error)
}

// StaticSource searches an in-memory catalog
type StaticSource struct {
	mu      sync.RWMutex
	options []domain.Option
	latency time.Duration
	limit   int
}

// NewStaticSource creates a source over options. latency simulates a slow
// backend; limit <= 0 means unlimited.
func NewStaticSource(options []domain.Option, latency time.Duration, limit int) *StaticSource {
	s := &StaticSource{latency: latency, limit: limit}
	s.Replace(options)
	return s
}

// Replace swaps the catalog, used when the catalog file is reloaded
func (s *StaticSource) Replace(options []domain.Option) {
	cp := make([]domain.Option, len(options))
	copy(cp, options)

	s.mu.Lock()
	s.options = cp
	s.mu.Unlock()
}

// Len returns the catalog size
func (s *StaticSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.options)
}

// Search returns catalog entries whose label contains term
func (s *StaticSource) Search(ctx context.Context, term string) ([]domain.Option, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Option{}
	for _, opt := range s.options {
		if !strings.Contains(opt.Label, term) {
			continue
		}
		out = append(out, opt)
		if s.limit > 0 && len(out) >= s.limit {
			break
		}
	}
	return out, nil
}
