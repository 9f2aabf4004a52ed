package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resumind-backend/internal/shared/storage/kv"
)

// RecordStore persists resume records as JSON values in a key-value store.
type RecordStore struct {
	KV kv.Store
}

// NewRecordStore constructs a RecordStore.
func NewRecordStore(store kv.Store) *RecordStore {
	return &RecordStore{KV: store}
}

// Put writes the record under its key, replacing any prior value.
func (s *RecordStore) Put(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return s.KV.Set(ctx, rec.Key(), string(payload))
}

// Get loads one record by id. Missing ids map to ErrNotFound.
func (s *RecordStore) Get(ctx context.Context, id string) (Record, error) {
	value, err := s.KV.Get(ctx, RecordKey(id))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return Record{}, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, nil
}

// List returns all records in key order. A value that no longer decodes is
// skipped rather than failing the whole listing.
func (s *RecordStore) List(ctx context.Context) ([]Record, error) {
	entries, err := s.KV.List(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		var rec Record
		if err := json.Unmarshal([]byte(entry.Value), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
