// Package store provides a SQLite-backed cache of parsed sheets and a
// short history of opened workbooks.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/xonecas/gridsel/internal/sheet"
)

const schema = `
CREATE TABLE IF NOT EXISTS sheet_cache (
	path     TEXT NOT NULL,
	sheet    TEXT NOT NULL,
	mtime    INTEGER NOT NULL,
	payload  TEXT NOT NULL,
	created  INTEGER NOT NULL,
	PRIMARY KEY (path, sheet)
);

CREATE TABLE IF NOT EXISTS recent_files (
	path    TEXT PRIMARY KEY,
	sheet   TEXT NOT NULL,
	opened  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sheet_created ON sheet_cache(created);
CREATE INDEX IF NOT EXISTS idx_recent_opened ON recent_files(opened);
`

// Cache is a SQLite-backed cache for parsed sheets.
type Cache struct {
	mu  sync.Mutex
	db  *sql.DB
	ttl time.Duration
}

// Open creates or opens a cache database at the given path.
// ttl controls how long entries remain fresh.
func Open(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	// Migrate: caches written before mtime tracking cannot be validated.
	// This is a cache, so losing data is acceptable.
	if tableExists(db, "sheet_cache") && !hasColumn(db, "sheet_cache", "mtime") {
		db.Exec("DROP TABLE sheet_cache") //nolint:errcheck // best-effort migration
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	c := &Cache{db: db, ttl: ttl}
	c.purgeStale()
	return c, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// --- Sheet cache ---

// GetSheet returns the cached sheet for path and sheet name if it was stored
// for the same file modification time and is still fresh.
// Safe to call on a nil receiver (returns miss).
func (c *Cache) GetSheet(path, name string, mtime time.Time) (*sheet.Sheet, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl).Unix()
	var payload string
	err := c.db.QueryRow(
		"SELECT payload FROM sheet_cache WHERE path = ? AND sheet = ? AND mtime = ? AND created > ?",
		path, name, mtime.UnixNano(), cutoff,
	).Scan(&payload)
	if err != nil {
		return nil, false
	}

	var s sheet.Sheet
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("discarding corrupt cached sheet")
		return nil, false
	}
	return &s, true
}

// PutSheet stores a parsed sheet. No-op on nil receiver.
func (c *Cache) PutSheet(path, name string, mtime time.Time, s *sheet.Sheet) {
	if c == nil || s == nil {
		return
	}
	payload, err := json.Marshal(s)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to encode sheet for cache")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO sheet_cache (path, sheet, mtime, payload, created) VALUES (?, ?, ?, ?, ?)",
		path, name, mtime.UnixNano(), string(payload), time.Now().Unix(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Str("sheet", name).Msg("failed to cache sheet")
	}
}

// --- Helpers ---

// purgeStale removes cached sheets older than the TTL.
func (c *Cache) purgeStale() {
	cutoff := time.Now().Add(-c.ttl).Unix()
	res, err := c.db.Exec("DELETE FROM sheet_cache WHERE created <= ?", cutoff)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge stale cache")
		return
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("purged stale cache entries")
	}
}

// tableExists checks if a table is present in the schema.
func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
	return err == nil
}

// hasColumn checks if a table has a specific column.
func hasColumn(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table)) //nolint:gosec // table name is hardcoded by caller
	if err != nil {
		return false
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}
