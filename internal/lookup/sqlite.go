package lookup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taginput/internal/domain"
)

const defaultDBPath = "contacts.sqlite3"

// SQLiteSource searches a contacts table in a SQLite database
type SQLiteSource struct {
	db    *sql.DB
	limit int
}

// OpenSQLite opens (and migrates) the contacts database at path.
// ":memory:" opens a private in-memory database.
func OpenSQLite(path string, limit int) (*SQLiteSource, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultDBPath
	}

	dsn := path
	if path != ":memory:" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = absPath
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteSource{db: db, limit: limit}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *SQLiteSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteSource) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			value TEXT PRIMARY KEY,
			label TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_label ON contacts(label)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate contacts: %w", err)
		}
	}
	return nil
}

// Import upserts options into the contacts table and returns how many were written
func (s *SQLiteSource) Import(ctx context.Context, options []domain.Option) (int, error) {
	return s.write(ctx, options, false)
}

// Replace swaps the whole contacts table for options in one transaction
func (s *SQLiteSource) Replace(ctx context.Context, options []domain.Option) (int, error) {
	return s.write(ctx, options, true)
}

func (s *SQLiteSource) write(ctx context.Context, options []domain.Option, replace bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
			return 0, fmt.Errorf("clear contacts: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (value, label) VALUES (?, ?)
		 ON CONFLICT(value) DO UPDATE SET label = excluded.label`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, opt := range options {
		if strings.TrimSpace(opt.Value) == "" {
			continue
		}
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		if _, err := stmt.ExecContext(ctx, opt.Value, label); err != nil {
			return n, fmt.Errorf("import %q: %w", opt.Value, err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return n, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

// Count returns the number of stored contacts
func (s *SQLiteSource) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

// Search returns contacts whose label contains term, ordered by label
func (s *SQLiteSource) Search(ctx context.Context, term string) ([]domain.Option, error) {
	query := `SELECT label, value FROM contacts WHERE label LIKE ? ESCAPE '\' ORDER BY label`
	args := []any{"%" + escapeLike(term) + "%"}
	if s.limit > 0 {
		query += ` LIMIT ?`
		args = append(args, s.limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	defer rows.Close()

	out := []domain.Option{}
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.Label, &opt.Value); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, opt)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
