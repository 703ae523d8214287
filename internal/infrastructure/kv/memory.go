package kv

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrClosed lo devuelve Memory después de Close.
var ErrClosed = errors.New("kv: backend cerrado")

var _ Backend = (*Memory)(nil)

// Memory backend en memoria, seguro para uso concurrente. No persiste entre reinicios.
type Memory struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
	closed  bool
}

// NewMemory crea un backend vacío.
func NewMemory() *Memory {
	return &Memory{buckets: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	v, ok := m.buckets[bucket][key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return clone(v), nil
}

func (m *Memory) Put(_ context.Context, bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[string][]byte)
		m.buckets[bucket] = b
	}
	b[key] = clone(value)
	return nil
}

func (m *Memory) Delete(_ context.Context, bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if _, ok := m.buckets[bucket][key]; !ok {
		return ErrKeyNotFound
	}
	delete(m.buckets[bucket], key)
	return nil
}

func (m *Memory) Scan(_ context.Context, bucket string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	b := m.buckets[bucket]
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, clone(b[k]))
	}
	return out, nil
}

func (m *Memory) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
