// Package palettecache stores extracted palettes keyed by image content, so a
// wallpaper that has been seen before skips k-means extraction.
package palettecache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite" // Register the sqlite driver

	"github.com/jmylchreest/bartint/internal/colour"
)

const schema = `
CREATE TABLE IF NOT EXISTS palettes (
	key        TEXT    NOT NULL,
	size       INTEGER NOT NULL,
	palette    TEXT    NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (key, size)
);
CREATE INDEX IF NOT EXISTS palettes_created_at ON palettes (created_at);
`

// Cache is a SQLite-backed palette store. It is safe for concurrent use.
type Cache struct {
	db     *sql.DB
	logger hclog.Logger
	now    func() time.Time
}

// DefaultPath returns the default database location under the user cache dir.
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "bartint", "palettes.db"), nil
	}
	return filepath.Join(cacheDir, "bartint", "palettes.db"), nil
}

// Open opens (creating if needed) the cache database at path.
func Open(ctx context.Context, path string, logger hclog.Logger) (*Cache, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette cache: %w", err)
	}
	// A single connection serialises writers without SQLITE_BUSY retries.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialise palette cache: %w", err)
	}

	return &Cache{db: db, logger: logger.Named("palettecache"), now: time.Now}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for raw image bytes.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached palette for key and size, if present.
func (c *Cache) Get(ctx context.Context, key string, size int) (*colour.Palette, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		"SELECT palette FROM palettes WHERE key = ? AND size = ?", key, size).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		c.logger.Trace("cache miss", "key", key[:min(12, len(key))], "size", size)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read palette cache: %w", err)
	}

	p, err := colour.PaletteFromJSON([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	c.logger.Debug("cache hit", "key", key[:min(12, len(key))], "size", size)
	return p, true, nil
}

// Put stores a palette, replacing any existing entry for key and size.
func (c *Cache) Put(ctx context.Context, key string, p *colour.Palette) error {
	data, err := p.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode palette: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO palettes (key, size, palette, created_at) VALUES (?, ?, ?, ?)",
		key, p.Len(), string(data), c.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write palette cache: %w", err)
	}
	return nil
}

// Prune deletes entries created at or before now minus olderThan and returns how
// many were removed.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := c.now().Add(-olderThan).Unix()
	res, err := c.db.ExecContext(ctx, "DELETE FROM palettes WHERE created_at <= ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune palette cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned entries: %w", err)
	}
	if n > 0 {
		c.logger.Debug("pruned cache", "entries", n)
	}
	return n, nil
}

// Len returns the number of cached palettes.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM palettes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count palette cache: %w", err)
	}
	return n, nil
}
