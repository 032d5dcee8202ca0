// Package store provides a SQLite-backed query cache that survives between
// bizdash runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theirongolddev/bizdash/internal/query"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is a query.Cache persisted in SQLite.
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

var _ query.Cache = (*Cache)(nil)

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, now: time.Now}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (query.Entry, bool, error) {
	var (
		e        query.Entry
		storedAt string
		stale    int
	)
	err := c.db.QueryRow("SELECT key, value, stored_at, stale FROM query_cache WHERE key = ?", key).
		Scan(&e.Key, &e.Value, &storedAt, &stale)
	if errors.Is(err, sql.ErrNoRows) {
		return query.Entry{}, false, nil
	}
	if err != nil {
		return query.Entry{}, false, err
	}

	e.Stale = stale != 0
	e.StoredAt, _ = time.Parse(time.RFC3339Nano, storedAt)
	return e, true, nil
}

// Set stores value under key as fresh.
func (c *Cache) Set(key string, value []byte) error {
	_, err := c.db.Exec(`INSERT OR REPLACE INTO query_cache (key, value, stored_at, stale)
		VALUES (?, ?, ?, 0)`, key, value, c.now().UTC().Format(time.RFC3339Nano))
	return err
}

// Invalidate marks key prefix and everything beneath it stale.
func (c *Cache) Invalidate(prefix string) error {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		_, err := c.db.Exec("UPDATE query_cache SET stale = 1")
		return err
	}
	_, err := c.db.Exec(`UPDATE query_cache SET stale = 1
		WHERE key = ? OR key LIKE ? ESCAPE '\'`, prefix, escapeLike(prefix)+"/%")
	return err
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM query_cache")
	return err
}

// Stats reports total and stale entry counts.
func (c *Cache) Stats() (total, stale int, err error) {
	err = c.db.QueryRow("SELECT COUNT(*), COALESCE(SUM(stale), 0) FROM query_cache").Scan(&total, &stale)
	return total, stale, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
