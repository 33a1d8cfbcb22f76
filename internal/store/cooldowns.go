package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// OnCooldown reports whether key is suppressed as of now. A key with no
// cooldown record is not on cooldown.
func (db *DB) OnCooldown(ctx context.Context, key string, now time.Time) (bool, error) {
	query, args, err := builder.
		Select("until").
		From("cooldowns").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build cooldown query: %w", err)
	}

	var until int64
	err = db.QueryRowContext(ctx, query, args...).Scan(&until)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read cooldown %s: %w", key, err)
	}

	return now.Unix() < until, nil
}

// StartCooldown upserts the suppression window for key. External feedback
// entry point; the scoring path only reads cooldowns.
func (db *DB) StartCooldown(ctx context.Context, key string, until time.Time) error {
	query, args, err := builder.
		Insert("cooldowns").
		Columns("key", "until").
		Values(key, until.Unix()).
		Suffix("ON CONFLICT(key) DO UPDATE SET until = excluded.until").
		ToSql()
	if err != nil {
		return fmt.Errorf("build cooldown upsert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("start cooldown %s: %w", key, err)
	}
	return nil
}
