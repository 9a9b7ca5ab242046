package database

// migrationsSQL contains all database migrations, applied in order by
// version number.
var migrationsSQL = map[int]string{
	1: migrationV1CalendarCache,
	2: migrationV2CacheHits,
}

// migrationV1CalendarCache creates the store of computed calendars.
//
// A row is one calendar for one settings digest within one epoch. The
// epoch is the month the row was computed in; rows of past epochs are
// pruned so that reference data updates reach clients within a month.
const migrationV1CalendarCache = `
-- Migration 001: calendar cache

CREATE TABLE IF NOT EXISTS calendar_cache (
    cache_key TEXT NOT NULL,
    epoch TEXT NOT NULL,

    -- Canonical settings string, for inspection
    settings TEXT NOT NULL,
    year INTEGER NOT NULL CHECK (year BETWEEN 1970 AND 9999),

    -- JSON encoding of the calendar
    payload BLOB NOT NULL,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),

    PRIMARY KEY (cache_key, epoch)
);

CREATE INDEX IF NOT EXISTS idx_calendar_cache_epoch ON calendar_cache(epoch);
`

// migrationV2CacheHits counts reads per row.
const migrationV2CacheHits = `
-- Migration 002: hit counter

ALTER TABLE calendar_cache ADD COLUMN hits INTEGER NOT NULL DEFAULT 0;
ALTER TABLE calendar_cache ADD COLUMN last_hit_at TEXT;
`
