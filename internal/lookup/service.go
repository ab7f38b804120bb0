package lookup

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"taginput/internal/domain"
	"taginput/internal/eventbus"
)

const defaultTimeout = 10 * time.Second

// ResultMsg carries a finished lookup back into the Bubble Tea program
type ResultMsg struct {
	Term    string
	Options []domain.Option
	Err     error
}

// Service fronts a Source with a per-term cache and request de-duplication
type Service struct {
	source  Source
	cache   *expirable.LRU[string, []domain.Option]
	group   singleflight.Group
	bus     eventbus.EventBus
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a lookup service. cacheSize <= 0 disables caching.
func NewService(source Source, cacheSize int, ttl time.Duration, bus eventbus.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		source:  source,
		bus:     bus,
		logger:  logger.Named("lookup"),
		timeout: defaultTimeout,
	}
	if cacheSize > 0 {
		s.cache = expirable.NewLRU[string, []domain.Option](cacheSize, nil, ttl)
	}
	return s
}

// Search returns the options for term, from cache when possible.
// Concurrent searches for the same term share one source call.
func (s *Service) Search(ctx context.Context, term string) ([]domain.Option, error) {
	if s.cache != nil {
		if options, ok := s.cache.Get(term); ok {
			s.publish(eventbus.LookupRequestedEvent{Term: term, Cached: true})
			s.publish(eventbus.LookupCompletedEvent{Term: term, Count: len(options)})
			return clone(options), nil
		}
	}
	s.publish(eventbus.LookupRequestedEvent{Term: term})

	v, err, shared := s.group.Do(term, func() (interface{}, error) {
		options, err := s.source.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			s.cache.Add(term, options)
		}
		return options, nil
	})
	if err != nil {
		s.logger.Warn("lookup failed", zap.String("term", term), zap.Error(err))
		s.publish(eventbus.ErrorEvent{Message: "lookup failed for " + term, Err: err})
		return nil, err
	}

	options := v.([]domain.Option)
	s.logger.Debug("lookup completed",
		zap.String("term", term),
		zap.Int("count", len(options)),
		zap.Bool("shared", shared))
	s.publish(eventbus.LookupCompletedEvent{Term: term, Count: len(options)})
	return clone(options), nil
}

// Fetch returns a command that searches term and reports a ResultMsg
func (s *Service) Fetch(term string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		options, err := s.Search(ctx, term)
		return ResultMsg{Term: term, Options: options, Err: err}
	}
}

// Purge drops every cached result, used after the catalog changes
func (s *Service) Purge() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func clone(options []domain.Option) []domain.Option {
	out := make([]domain.Option, len(options))
	copy(out, options)
	return out
}
