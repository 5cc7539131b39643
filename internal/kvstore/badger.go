package kvstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// DefaultKeyPrefix namespaces the keys this service writes into a shared database.
const DefaultKeyPrefix = "facetd:"

// BadgerStore keeps values in BadgerDB under a key prefix.
type BadgerStore struct {
	db     *badger.DB
	prefix string
	ownsDB bool
}

// NewBadgerStore wraps an open database. Close leaves the database open.
func NewBadgerStore(db *badger.DB, prefix string) *BadgerStore {
	return &BadgerStore{db: db, prefix: prefix}
}

// OpenBadgerStore opens a database at path, closed again by Close.
func OpenBadgerStore(path, prefix string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}
	return &BadgerStore{db: db, prefix: prefix, ownsDB: true}, nil
}

func (b *BadgerStore) key(key string) []byte {
	return []byte(b.prefix + key)
}

func (b *BadgerStore) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (b *BadgerStore) Set(key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key(key), value)
	})
}

func (b *BadgerStore) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(key))
	})
}

// Clear deletes every key under the store's prefix.
func (b *BadgerStore) Clear() error {
	prefix := []byte(b.prefix)
	var keys [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("list keys under %s: %w", b.prefix, err)
	}

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return wb.Flush()
}

func (b *BadgerStore) Close() error {
	if b.ownsDB {
		return b.db.Close()
	}
	return nil
}
