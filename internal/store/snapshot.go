package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when no snapshot is stored under a key.
var ErrNotFound = errors.New("snapshot not found")

// Get returns the snapshot stored under key.
func (db *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put overwrites the snapshot stored under key and bumps its revision.
func (db *DB) Put(key string, value []byte) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO snapshots (key, value, updated_at, revision)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			revision = snapshots.revision + 1`,
		key, value, now)
	return err
}

// Delete removes the snapshot stored under key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	_, err := db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	return err
}

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	Key       string
	Size      int
	Revision  int64
	UpdatedAt time.Time
}

// Info returns metadata about the snapshot stored under key.
func (db *DB) Info(key string) (*SnapshotInfo, error) {
	var (
		info      SnapshotInfo
		updatedAt int64
	)
	err := db.QueryRow(`SELECT key, length(value), revision, updated_at FROM snapshots WHERE key = ?`, key).
		Scan(&info.Key, &info.Size, &info.Revision, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	info.UpdatedAt = time.UnixMilli(updatedAt)
	return &info, nil
}
