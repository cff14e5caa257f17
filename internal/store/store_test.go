package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already ran Migrate; a second run must be a no-op.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed() {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 2 {
		t.Errorf("version = %d, want 2 (snapshots + revision)", result.Version)
	}
	if result.Dirty {
		t.Error("migration left the database dirty")
	}
}

func TestMigrateFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}

	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.From != 0 || result.Version != 2 || !result.Changed() {
		t.Errorf("result = %+v, want 0 -> 2", result)
	}
}

func TestGetMissing(t *testing.T) {
	db := testDB(t)
	if _, err := db.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrNotFound", err)
	}
	if _, err := db.Info("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Info(nope) error = %v, want ErrNotFound", err)
	}
}

func TestPutOverwrites(t *testing.T) {
	db := testDB(t)

	if err := db.Put("k", []byte(`{"v":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("k", []byte(`{"v":2}`)); err != nil {
		t.Fatal(err)
	}

	got, err := db.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"v":2}` {
		t.Errorf("Get(k) = %s, want the latest value", got)
	}

	info, err := db.Info("k")
	if err != nil {
		t.Fatal(err)
	}
	if info.Revision != 2 {
		t.Errorf("revision = %d, want 2", info.Revision)
	}
	if info.Size != len(`{"v":2}`) {
		t.Errorf("size = %d, want %d", info.Size, len(`{"v":2}`))
	}
	if info.UpdatedAt.IsZero() {
		t.Error("updated_at not set")
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	if err := db.Put("k", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := db.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
	if err := db.Delete("k"); err != nil {
		t.Errorf("Delete of missing key error = %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	if err := db.Put("k", []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get(k) = %q, want persisted", got)
	}
}
