// Package persist provides an optional on-disk snapshot backend for a
// kernel.Kernel, layered on top of the in-memory SaveState/LoadState byte
// blob kernel.Kernel already produces (kernel/persist.go). The kernel itself
// never depends on this package; it is an adapter for callers that want
// durability across process restarts without building their own storage
// layer.
package persist

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// stateKey is the single badger key under which the latest snapshot blob
// lives. Snapshots replace each other; history is not retained.
var stateKey = []byte("synar:state")

// snapshotMetaKey records when the last snapshot was written, independent
// of whatever timestamp is embedded in the blob itself.
var snapshotMetaKey = []byte("synar:snapshot-at")

// SnapshotStore wraps a badger.DB as a durable home for a kernel's
// serialized state. Grounded on the pack's badger usage for an embedded
// key-value store rather than hand-rolling a file format: the kernel
// already emits a single JSON blob per snapshot (kernel/persist.go), so a
// single-key badger store is sufficient and gives free crash-safety via
// badger's own WAL.
type SnapshotStore struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger database at dir for snapshot
// storage.
func Open(dir string) (*SnapshotStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("persist: open badger store: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close releases the underlying badger database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save writes a kernel-produced state blob (from Kernel.SaveState), replacing
// whatever snapshot was stored previously.
func (s *SnapshotStore) Save(blob []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(stateKey, blob); err != nil {
			return err
		}
		return txn.Set(snapshotMetaKey, []byte(time.Now().UTC().Format(time.RFC3339Nano)))
	})
}

// Load returns the most recently saved state blob, suitable for passing to
// Kernel.LoadState. Returns ErrNoSnapshot if nothing has been saved yet.
func (s *SnapshotStore) Load() ([]byte, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey)
		if err == badger.ErrKeyNotFound {
			return ErrNoSnapshot
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			blob = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// LastSnapshotAt returns when Save was last called, or the zero time if
// nothing has been saved.
func (s *SnapshotStore) LastSnapshotAt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(snapshotMetaKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			parsed, perr := time.Parse(time.RFC3339Nano, string(val))
			if perr != nil {
				return perr
			}
			t = parsed
			return nil
		})
	})
	return t, err
}
