package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Entry is a key together with its stored value.
type Entry struct {
	Key   string
	Value string
}

// Store is the key-value collaborator. Values are opaque strings; callers own
// serialization. Set overwrites silently, which is how the pipeline replaces a
// placeholder record with its final form.
type Store interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	List(ctx context.Context, prefix string) ([]Entry, error)
}
