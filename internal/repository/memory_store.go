package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps everything in a map. Data is lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = clone(value)
	return nil
}

func (s *MemoryStore) SetMany(_ context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.data[e.Key] = clone(e.Value)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

func (s *MemoryStore) GetByPrefix(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Value: clone(v)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) MGet(_ context.Context, keys ...string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out = append(out, Entry{Key: k, Value: clone(v)})
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
