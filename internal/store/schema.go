package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS query_cache (
    key                  TEXT PRIMARY KEY,
    value                BLOB NOT NULL,
    stored_at            TEXT NOT NULL,
    stale                INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_query_cache_stale ON query_cache(stale);
`
