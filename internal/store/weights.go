package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/sampbb1996-dot/Frame-scanner/internal/excite"
)

// Weight returns the weight for key decayed to now, or 0 if the key has
// never been written. Absence is a valid zero, not an error.
func (db *DB) Weight(ctx context.Context, key string, now time.Time) (float64, error) {
	query, args, err := builder.
		Select("value", "updated_at").
		From("weights").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build weight query: %w", err)
	}

	var (
		value   float64
		updated int64
	)
	err = db.QueryRowContext(ctx, query, args...).Scan(&value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read weight %s: %w", key, err)
	}

	return excite.Decay(value, time.Unix(updated, 0), now, db.decayRate), nil
}

// SetWeight upserts the raw (un-decayed) weight for key, stamped with the
// write time. This is the external feedback entry point; the scoring path
// never calls it.
func (db *DB) SetWeight(ctx context.Context, key string, value float64, now time.Time) error {
	query, args, err := builder.
		Insert("weights").
		Columns("key", "value", "updated_at").
		Values(key, value, now.Unix()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build weight upsert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set weight %s: %w", key, err)
	}
	return nil
}
