// Package query caches API reads and marks them stale when writes land.
package query

import (
	"strings"
	"sync"
	"time"
)

// DashboardSummaryKey is the cache key of the dashboard summary. Every
// resource write invalidates it.
const DashboardSummaryKey = "dashboard-summary"

// Entry is one cached response body.
type Entry struct {
	Key      string
	Value    []byte
	StoredAt time.Time
	// Stale entries are kept but must be refetched before use.
	Stale bool
}

// Cache stores raw response bodies by key. Implementations must be safe for
// concurrent use, and Invalidate must be idempotent.
type Cache interface {
	Get(key string) (Entry, bool, error)
	Set(key string, value []byte) error
	Invalidate(prefix string) error
}

// Key joins segments into a cache key, e.g. Key("billing", "5") == "billing/5".
func Key(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, "/")
}

// Matches reports whether key falls under prefix. Matching is by whole
// segment: "billing" matches "billing" and "billing/5" but not "billings".
func Matches(key, prefix string) bool {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return true
	}
	return key == prefix || strings.HasPrefix(key, prefix+"/")
}

// Memory is an in-process Cache scoped to one session.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemory returns an empty Memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the entry for key.
func (m *Memory) Get(key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	e.Value = append([]byte(nil), e.Value...)
	return e, true, nil
}

// Set stores value under key as fresh.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{
		Key:      key,
		Value:    append([]byte(nil), value...),
		StoredAt: m.now(),
	}
	return nil
}

// Invalidate marks every entry under prefix stale.
func (m *Memory) Invalidate(prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if Matches(k, prefix) {
			e.Stale = true
			m.entries[k] = e
		}
	}
	return nil
}

// Len returns the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
