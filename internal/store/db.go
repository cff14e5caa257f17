package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// dsnParams puts the database in WAL mode and waits on a busy lock instead of
// failing immediately.
const dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

// DB is the SQLite database that holds a session's state snapshots.
type DB struct {
	*sql.DB
	path string
}

// Open opens the database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db %s: %w", path, err)
	}
	return &DB{DB: db, path: path}, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
