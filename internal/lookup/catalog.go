package lookup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"taginput/internal/domain"
)

// catalogFile is the structured catalog layout shared by YAML, JSON and TOML.
// Emails are shorthand for contacts whose label equals their value.
type catalogFile struct {
	Emails   []string        `json:"emails" yaml:"emails" toml:"emails"`
	Contacts []domain.Option `json:"contacts" yaml:"contacts" toml:"contacts"`
}

// LoadCatalog reads a catalog file. The format follows the extension:
// .yaml/.yml, .json, .toml, anything else is one email per line.
func LoadCatalog(path string) ([]domain.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(filepath.Ext(path), data)
}

// ParseCatalog decodes catalog data in the format named by ext
func ParseCatalog(ext string, data []byte) ([]domain.Option, error) {
	var cf catalogFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse json catalog: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse toml catalog: %w", err)
		}
	default:
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			cf.Emails = append(cf.Emails, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
	}

	seen := make(map[string]bool, len(cf.Emails)+len(cf.Contacts))
	out := make([]domain.Option, 0, len(cf.Emails)+len(cf.Contacts))
	add := func(opt domain.Option) {
		if opt.Value == "" || seen[opt.Value] {
			return
		}
		if opt.Label == "" {
			opt.Label = opt.Value
		}
		seen[opt.Value] = true
		out = append(out, opt)
	}
	for _, email := range cf.Emails {
		add(domain.NewOption(strings.TrimSpace(email)))
	}
	for _, c := range cf.Contacts {
		add(domain.Option{Label: c.Label, Value: c.Value})
	}
	return out, nil
}

// WatchCatalog reloads the catalog whenever the file is written or replaced
// and passes the new options to onReload. It blocks until ctx is done.
func WatchCatalog(ctx context.Context, path string, logger *zap.Logger, onReload func([]domain.Option)) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, editors replace files rather than writing in place
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	// Coalesce bursts of events from a single save
	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				reload = time.After(50 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		case <-reload:
			reload = nil
			options, err := LoadCatalog(path)
			if err != nil {
				logger.Warn("catalog reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Info("catalog reloaded", zap.String("path", path), zap.Int("count", len(options)))
			onReload(options)
		}
	}
}
