package store

import (
	"time"

	"github.com/rs/zerolog/log"
)

// RecentFile is a workbook the viewer opened.
type RecentFile struct {
	Path   string
	Sheet  string
	Opened time.Time
}

// RecordOpen remembers that path was opened on sheet. No-op on nil receiver.
func (c *Cache) RecordOpen(path, sheet string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO recent_files (path, sheet, opened) VALUES (?, ?, ?)",
		path, sheet, time.Now().UnixNano(),
	)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to record recent file")
	}
}

// Recent returns up to limit recently opened files, newest first.
func (c *Cache) Recent(limit int) ([]RecentFile, error) {
	if c == nil {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(
		"SELECT path, sheet, opened FROM recent_files ORDER BY opened DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentFile
	for rows.Next() {
		var f RecentFile
		var opened int64
		if err := rows.Scan(&f.Path, &f.Sheet, &opened); err != nil {
			continue
		}
		f.Opened = time.Unix(0, opened)
		out = append(out, f)
	}
	return out, rows.Err()
}

// ForgetRecent removes path from the history.
func (c *Cache) ForgetRecent(path string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM recent_files WHERE path = ?", path)
	return err
}
