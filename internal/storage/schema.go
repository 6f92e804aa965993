package storage

// SnapshotSchema is the SQL schema for the snapshot database. Each row is one
// named, whole-record snapshot; writes replace the row.
const SnapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    name        TEXT PRIMARY KEY,
    version     INTEGER NOT NULL DEFAULT 0,
    payload     TEXT NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// dsnPragmas configures SQLite for a single local writer.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"
