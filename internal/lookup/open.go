package lookup

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taginput/internal/config"
	"taginput/internal/domain"
)

// Catalog is a Source whose contents can be replaced at runtime
type Catalog interface {
	Source
	Reload(ctx context.Context, options []domain.Option) error
	Close() error
}

// Open builds the catalog described by settings. The static source serves
// the catalog file, or the built-in list without one. The sqlite source is
// seeded from the catalog file when one is set.
func Open(ctx context.Context, settings config.LookupSettings, logger *zap.Logger) (Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var seed []domain.Option
	if settings.Catalog != "" {
		options, err := LoadCatalog(settings.Catalog)
		if err != nil {
			return nil, err
		}
		seed = options
	}

	switch settings.Source {
	case "", config.SourceStatic:
		if seed == nil {
			seed = DefaultCatalog()
		}
		logger.Info("using static catalog", zap.Int("contacts", len(seed)))
		return NewStaticSource(seed, settings.Latency(), settings.Limit), nil

	case config.SourceSQLite:
		db, err := OpenSQLite(settings.Database, settings.Limit)
		if err != nil {
			return nil, err
		}
		if len(seed) > 0 {
			n, err := db.Import(ctx, seed)
			if err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.Info("seeded contacts database", zap.Int("contacts", n))
		}
		return db, nil

	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSource, settings.Source)
	}
}

// Reload swaps the in-memory catalog
func (s *StaticSource) Reload(_ context.Context, options []domain.Option) error {
	s.Replace(options)
	return nil
}

// Close is a no-op, the static source holds no resources
func (s *StaticSource) Close() error {
	return nil
}

// Reload replaces the contacts table with the reloaded catalog, contacts
// dropped from the file stop matching
func (s *SQLiteSource) Reload(ctx context.Context, options []domain.Option) error {
	_, err := s.Replace(ctx, options)
	return err
}
