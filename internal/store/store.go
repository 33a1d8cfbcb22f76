package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/sampbb1996-dot/Frame-scanner/internal/ports"
)

// builder is the shared squirrel statement builder; sqlite uses ?
// placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// DB wraps a sql.DB connection to the scanner's SQLite database and
// carries the per-day decay rate applied to weight reads.
type DB struct {
	*sql.DB
	Path      string
	decayRate float64
}

var _ ports.Store = (*DB)(nil)

// Open opens (or creates) the SQLite database at path, configures
// pragmas, and runs migrations. decayRate is the per-day multiplicative
// decay in (0, 1) applied when weights are read.
func Open(path string, decayRate float64) (*DB, error) {
	if err := validDecayRate(decayRate); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return prepare(&DB{DB: sqlDB, Path: path, decayRate: decayRate})
}

// OpenMemory opens an in-memory database for testing.
func OpenMemory(decayRate float64) (*DB, error) {
	if err := validDecayRate(decayRate); err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	return prepare(&DB{DB: sqlDB, Path: ":memory:", decayRate: decayRate})
}

func prepare(db *DB) (*DB, error) {
	if err := db.configurePragmas(); err != nil {
		db.Close()
		return nil, err
	}
	if err := db.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (db *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func validDecayRate(rate float64) error {
	if rate <= 0 || rate >= 1 {
		return fmt.Errorf("decay rate %v outside (0, 1)", rate)
	}
	return nil
}
