package snapshot

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"ownworld/internal/errs"
)

// SQLiteStore keeps every snapshot as a row in one table, opened with
// the same WAL pragmas the teacher's initDB uses (db.go).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if necessary) a SQLite database at
// path and ensures the snapshots table exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		blob BLOB NOT NULL,
		updated_at_tick INTEGER
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Save upserts name's envelope.
func (s *SQLiteStore) Save(name string, data []byte) error {
	env := wrap(data)
	_, err := s.db.Exec(
		`INSERT INTO snapshots (name, hash, blob) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET hash = excluded.hash, blob = excluded.blob`,
		name, env.hash, env.compressed,
	)
	return err
}

// Load reads and verifies name's envelope.
func (s *SQLiteStore) Load(name string) ([]byte, error) {
	var hash string
	var blob []byte
	err := s.db.QueryRow(`SELECT hash, blob FROM snapshots WHERE name = ?`, name).Scan(&hash, &blob)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("snapshot: no row for %q", name)
	}
	if err != nil {
		return nil, err
	}
	env := envelope{hash: hash, compressed: blob}
	return env.unwrap()
}
