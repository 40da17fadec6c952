// Package repository is the key-value persistence layer. Every record is a
// JSON document stored under a string key.
package repository

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

type Entry struct {
	Key   string
	Value []byte
}

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns every entry whose key starts with prefix, ordered by key.
	GetByPrefix(ctx context.Context, prefix string) ([]Entry, error)
	// MGet returns the entries that exist, in the order the keys were given.
	MGet(ctx context.Context, keys ...string) ([]Entry, error)
	Close() error
}

type Credentials struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

func orderByKeys(keys []string, found map[string][]byte) []Entry {
	out := make([]Entry, 0, len(found))
	for _, k := range keys {
		if v, ok := found[k]; ok {
			out = append(out, Entry{Key: k, Value: v})
			delete(found, k)
		}
	}
	return out
}
