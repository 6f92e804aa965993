package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/wagnerlima/designdata-mcp/internal/store"
)

// DefaultName is the record name the snapshot is kept under.
const DefaultName = "design-data-storage"

// ErrCorrupt is returned by Load when a stored payload cannot be decoded.
var ErrCorrupt = errors.New("snapshot payload is corrupt")

// CorruptSuffix is appended to the name of a quarantined record.
const CorruptSuffix = ".corrupt"

// SnapshotVersion is written into every envelope.
const SnapshotVersion = 0

// DBFile is the database file name inside the data directory.
const DBFile = "designdata.db"

// SnapshotStore keeps named store snapshots in a local SQLite database.
type SnapshotStore struct {
	db      *sql.DB
	dataDir string
}

// envelope is the on-disk shape of one snapshot record.
type envelope struct {
	State   store.Snapshot `json:"state"`
	Version int            `json:"version"`
}

// Open opens (or creates) the snapshot database under dataDir and migrates it.
func Open(dataDir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFile)
	db, err := sql.Open("sqlite3", "file:"+dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snapshot db: %w", err)
	}
	if _, err := db.Exec(SnapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}

	return &SnapshotStore{db: db, dataDir: dataDir}, nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// DataDir returns the base data directory.
func (s *SnapshotStore) DataDir() string {
	return s.dataDir
}

// Load reads the named snapshot. A missing record is not an error: it yields
// an empty snapshot and found=false, which is what a fresh start looks like.
func (s *SnapshotStore) Load(name string) (snap store.Snapshot, found bool, err error) {
	var payload string
	err = s.db.QueryRow(`SELECT payload FROM snapshots WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("read snapshot %q: %w", name, err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return store.Snapshot{}, true, fmt.Errorf("decode snapshot %q: %w: %w", name, ErrCorrupt, err)
	}
	return env.State, true, nil
}

// Save replaces the named snapshot with snap.
func (s *SnapshotStore) Save(name string, snap store.Snapshot) error {
	payload, err := json.Marshal(envelope{State: snap, Version: SnapshotVersion})
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (name, version, payload) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     version = excluded.version,
		     payload = excluded.payload,
		     updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		name, SnapshotVersion, string(payload),
	)
	if err != nil {
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	return nil
}

// Delete removes the named snapshot. Deleting a missing record is a no-op.
func (s *SnapshotStore) Delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	return nil
}

// Quarantine moves the named record to name+CorruptSuffix, replacing any
// earlier quarantined copy. A missing record is a no-op.
func (s *SnapshotStore) Quarantine(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("quarantine snapshot %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshots WHERE name = ?`, name+CorruptSuffix); err != nil {
		return fmt.Errorf("quarantine snapshot %q: %w", name, err)
	}
	if _, err := tx.Exec(`UPDATE snapshots SET name = ? WHERE name = ?`, name+CorruptSuffix, name); err != nil {
		return fmt.Errorf("quarantine snapshot %q: %w", name, err)
	}
	return tx.Commit()
}

// Persister returns a store.Persister writing to the named record.
func (s *SnapshotStore) Persister(name string) store.Persister {
	return store.PersisterFunc(func(snap store.Snapshot) error {
		return s.Save(name, snap)
	})
}
