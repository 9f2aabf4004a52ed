package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGStoreSetUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}

	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("resume:abc", `{"id":"abc"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Set(context.Background(), "resume:abc", `{"id":"abc"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetMissingKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}

	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("resume:missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err = store.Get(context.Background(), "resume:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGStoreListByPrefix(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	store := &PGStore{DB: db}

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("resume:a", "{}").
		AddRow("resume:b", "{}")
	mock.ExpectQuery("SELECT key, value FROM kv_entries").
		WithArgs("resume:").
		WillReturnRows(rows)

	entries, err := store.List(context.Background(), "resume:")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "resume:a" {
		t.Fatalf("expected resume:a first, got %s", entries[0].Key)
	}
}
