// Package storage persists named collections as JSON text in a local
// key-value backend.
package storage

import (
	"errors"
	"sync"
)

// Keys under which the tracker stores its collections.
const (
	KeyExpenses = "expenses"
	KeyTrips    = "trips"
)

// Backend is a durable string-keyed byte store. Get reports ok=false for a
// missing key without an error.
type Backend interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

var ErrBackendClosed = errors.New("storage backend closed")

// MemoryBackend keeps values in a map. It is the stand-in for browser local
// storage in tests and the "memory" backend in config.
type MemoryBackend struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrBackendClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrBackendClosed
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
