package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/gridsel/internal/config"
	"github.com/xonecas/gridsel/internal/sheet"
	"github.com/xonecas/gridsel/internal/store"
)

// openCache opens the sheet cache, or returns nil when it is disabled or
// cannot be opened. A nil *store.Cache is a valid, always-missing cache.
func openCache(cfg *config.Config) *store.Cache {
	if cfg.Cache.Disabled {
		return nil
	}
	path, err := cfg.Cache.PathOrDefault()
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	if cfg.Cache.Path == "" {
		if _, err := config.EnsureDataDir(); err != nil {
			log.Warn().Err(err).Msg("cache disabled")
			return nil
		}
	}
	c, err := store.Open(path, cfg.Cache.CacheTTLOrDefault())
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("cache disabled")
		return nil
	}
	return c
}

// loadSheet reads a sheet through the cache. Entries are keyed by the
// absolute path, the requested sheet name and the file's mtime, so an edited
// file is always re-read.
func loadSheet(c *store.Cache, path, name string) (*sheet.Sheet, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	if s, ok := c.GetSheet(abs, name, fi.ModTime()); ok {
		log.Debug().Str("path", abs).Str("sheet", s.Name).Msg("sheet cache hit")
		c.RecordOpen(abs, s.Name)
		return s, nil
	}

	s, err := sheet.Load(abs, name)
	if err != nil {
		return nil, err
	}
	c.PutSheet(abs, name, fi.ModTime(), s)
	c.RecordOpen(abs, s.Name)
	return s, nil
}
