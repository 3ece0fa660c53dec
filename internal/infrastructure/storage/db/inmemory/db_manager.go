package inmemory

import (
	"context"
	"sync"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

// KeyValueStore is a volatile ports.KeyValueStore, mostly useful for
// testing or for running without datadir.
type KeyValueStore struct {
	locker *sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewKeyValueStore returns a new empty KeyValueStore.
func NewKeyValueStore() ports.KeyValueStore {
	return &KeyValueStore{
		locker: &sync.RWMutex{},
		values: make(map[string][]byte),
	}
}

func (s *KeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.locker.RLock()
	defer s.locker.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, value...), nil
}

func (s *KeyValueStore) Set(_ context.Context, key string, value []byte) error {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.values[key] = append([]byte{}, value...)
	return nil
}

func (s *KeyValueStore) Close() {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.closed = true
}
