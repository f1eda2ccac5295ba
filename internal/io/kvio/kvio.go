package kvio

import (
	"errors"
	"log/slog"

	"github.com/birdwatch/yardlist/internal/ent/photo"
	"github.com/dgraph-io/badger/v2"
	"github.com/gnames/gnsys"
)

type kvio struct {
	dir string
	kv  *badger.DB
}

// New returns a persistent key-value cache in the given directory.
// Unlike a scratch store the directory is kept between runs, so cached
// lookups survive sessions.
func New(dir string) (photo.Cache, error) {
	res := kvio{dir: dir}

	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create directory", "error", err, "dir", dir)
		return nil, err
	}

	return &res, nil
}

// Open opens a key-value store.
func (k *kvio) Open() error {
	if k.kv != nil {
		slog.Warn("key-value store is not nil")
	}
	options := badger.DefaultOptions(k.dir)
	options.Logger = nil

	bdb, err := badger.Open(options)
	if err != nil {
		return err
	}
	k.kv = bdb
	return nil
}

// Close closes a key-value store.
func (k *kvio) Close() error {
	if k.kv == nil {
		slog.Warn("key-value store is nil")
		return nil
	}
	err := k.kv.Close()
	k.kv = nil
	return err
}

// Get returns a value for a given key, or nil when the key is absent.
func (k *kvio) Get(key string) ([]byte, error) {
	if k.kv == nil {
		return nil, errors.New("key-value store is not open")
	}
	txn := k.kv.NewTransaction(false)
	defer txn.Discard()
	val, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var res []byte
	return val.ValueCopy(res)
}

// Set stores a value under a key.
func (k *kvio) Set(key string, val []byte) error {
	if k.kv == nil {
		return errors.New("key-value store is not open")
	}
	txn := k.kv.NewTransaction(true)
	defer txn.Discard()
	if err := txn.Set([]byte(key), val); err != nil {
		return err
	}
	return txn.Commit()
}
