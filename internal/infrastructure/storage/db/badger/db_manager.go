package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/oysy-network/oysy-wallet/internal/core/ports"
)

const (
	stateDir   = "state"
	gcInterval = 30 * time.Minute
)

// entry is the record stored for every key.
type entry struct {
	Key       string
	Value     []byte
	UpdatedAt int64
}

type keyValueStore struct {
	store  *badgerhold.Store
	stopGC chan struct{}
}

// NewKeyValueStore opens (or creates if not exists) the badger store in the
// given base directory. An empty dir opens an in-memory store.
func NewKeyValueStore(
	baseDbDir string, logger badger.Logger,
) (ports.KeyValueStore, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, stateDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	kv := &keyValueStore{store: store}
	if len(dbDir) > 0 {
		kv.stopGC = make(chan struct{})
		go kv.runValueLogGC()
	}
	return kv, nil
}

func (s *keyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	var e entry
	if err := s.store.Get(key, &e); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return e.Value, nil
}

func (s *keyValueStore) Set(_ context.Context, key string, value []byte) error {
	e := entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().Unix(),
	}
	return s.store.Upsert(key, &e)
}

func (s *keyValueStore) Close() {
	if s.stopGC != nil {
		close(s.stopGC)
	}
	if err := s.store.Close(); err != nil {
		log.WithError(err).Warn("error while closing state db")
	}
}

func (s *keyValueStore) runValueLogGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		case <-s.stopGC:
			return
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
