package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format, or returns
// nil.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

// =============================================================================
// Calendar Cache Queries
// =============================================================================

// GetCalendar retrieves the calendar stored under key in epoch and counts
// the hit. Returns ErrNotFound if there is none.
func (db *DB) GetCalendar(ctx context.Context, key, epoch string) (*CachedCalendar, error) {
	query := `
		SELECT cache_key, epoch, settings, year, payload, hits, created_at, last_hit_at
		FROM calendar_cache
		WHERE cache_key = ? AND epoch = ?
	`

	var c CachedCalendar
	var createdAt, lastHitAt sql.NullString

	err := db.QueryRowContext(ctx, query, key, epoch).Scan(
		&c.Key, &c.Epoch, &c.Settings, &c.Year, &c.Payload, &c.Hits, &createdAt, &lastHitAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query calendar %s: %w", key, err)
	}
	c.CreatedAt = parseTimestamp(createdAt)
	c.LastHitAt = parseTimestamp(lastHitAt)

	_, err = db.ExecContext(ctx, `
		UPDATE calendar_cache
		SET hits = hits + 1, last_hit_at = datetime('now')
		WHERE cache_key = ? AND epoch = ?
	`, key, epoch)
	if err != nil {
		db.logger.Warn("count cache hit", "key", key, "error", err)
	}

	return &c, nil
}

// execer is satisfied by both *DB and *Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// PutCalendar stores a calendar, replacing any row with the same key and
// epoch.
func (db *DB) PutCalendar(ctx context.Context, c *CachedCalendar) error {
	return putCalendar(ctx, db, c)
}

// PutCalendar stores a calendar within the transaction.
func (tx *Tx) PutCalendar(ctx context.Context, c *CachedCalendar) error {
	return putCalendar(ctx, tx, c)
}

func putCalendar(ctx context.Context, ex execer, c *CachedCalendar) error {
	if c.Key == "" || c.Epoch == "" {
		return errors.New("put calendar: key and epoch are required")
	}

	query := `
		INSERT INTO calendar_cache (cache_key, epoch, settings, year, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cache_key, epoch) DO UPDATE SET
			settings = excluded.settings,
			year = excluded.year,
			payload = excluded.payload,
			created_at = datetime('now'),
			hits = 0,
			last_hit_at = NULL
	`

	if _, err := ex.ExecContext(ctx, query, c.Key, c.Epoch, c.Settings, c.Year, c.Payload); err != nil {
		return fmt.Errorf("put calendar %s: %w", c.Key, err)
	}
	return nil
}

// DeleteCalendar removes every epoch of key. Returns ErrNotFound if
// nothing was stored.
func (db *DB) DeleteCalendar(ctx context.Context, key string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM calendar_cache WHERE cache_key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete calendar: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune deletes the rows of every epoch other than keep and returns how
// many were removed.
func (db *DB) Prune(ctx context.Context, keep string) (int64, error) {
	var removed int64
	err := db.WithTx(ctx, func(tx *Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM calendar_cache WHERE epoch <> ?`, keep)
		if err != nil {
			return fmt.Errorf("prune calendar cache: %w", err)
		}
		removed, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	db.logger.Info("calendar cache pruned",
		"keep_epoch", keep,
		"removed", removed,
	)
	return removed, nil
}

// GetCacheStats returns the size of the store per epoch.
func (db *DB) GetCacheStats(ctx context.Context) (*CacheStats, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT epoch, COUNT(*), COALESCE(SUM(LENGTH(payload)), 0), COALESCE(SUM(hits), 0)
		FROM calendar_cache
		GROUP BY epoch
		ORDER BY epoch
	`)
	if err != nil {
		return nil, fmt.Errorf("query cache stats: %w", err)
	}
	defer rows.Close()

	stats := &CacheStats{Epochs: make(map[string]int)}
	for rows.Next() {
		var (
			epoch       string
			count, hits int
			size        int64
		)
		if err := rows.Scan(&epoch, &count, &size, &hits); err != nil {
			return nil, fmt.Errorf("scan cache stats: %w", err)
		}
		stats.Epochs[epoch] = count
		stats.Entries += count
		stats.Bytes += size
		stats.Hits += hits
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache stats: %w", err)
	}

	return stats, nil
}
