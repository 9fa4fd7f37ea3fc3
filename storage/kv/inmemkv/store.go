// Package inmemkv is a map-backed document store for tests and throwaway
// runs; nothing survives Close.
package inmemkv

import "sync"

type Store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	value, ok := s.table[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

func (s *Store) Set(key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.table[key] = cp
	return nil
}

func (s *Store) Close() error { return nil }
