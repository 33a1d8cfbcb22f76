package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// MarkSeen records a listing identity and reports whether this call was
// the one that inserted it. The insert-if-absent runs as one statement,
// so two pollers sharing the database cannot both claim a listing: the
// loser's insert hits the primary key and affects zero rows.
func (db *DB) MarkSeen(ctx context.Context, source, id string) (bool, error) {
	query, args, err := builder.
		Insert("seen").
		Columns("source", "id", "first_seen").
		Values(source, id, time.Now().Unix()).
		Suffix("ON CONFLICT(source, id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build seen insert: %w", err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark seen %s/%s: %w", source, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark seen %s/%s: rows affected: %w", source, id, err)
	}
	return n > 0, nil
}

// Seen reports whether the identity has already been recorded, without
// recording it.
func (db *DB) Seen(ctx context.Context, source, id string) (bool, error) {
	query, args, err := builder.
		Select("COUNT(*)").
		From("seen").
		Where(sq.Eq{"source": source, "id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build seen query: %w", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("read seen %s/%s: %w", source, id, err)
	}
	return count > 0, nil
}
