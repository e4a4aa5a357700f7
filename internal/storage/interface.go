package storage

import (
	"context"
)

// Op is one write inside a Batch. A nil Value deletes the key.
type Op struct {
	Key   string
	Value []byte
}

func Put(key string, value []byte) Op { return Op{Key: key, Value: value} }
func Del(key string) Op               { return Op{Key: key} }

// KV is the key-value persistence substrate. Values are raw JSON documents.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Batch applies all ops or none of them.
	Batch(ctx context.Context, ops []Op) error
	Close() error
}
