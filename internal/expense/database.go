package expense

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.etcd.io/bbolt"
)

const (
	bucketName = "kakeibo"
	stateKey   = "state"
)

// Store is the persistence collaborator: one JSON blob under a fixed key.
type Store interface {
	// LoadState returns the stored blob. A missing or unreadable blob
	// yields a zero State, never an error; only I/O failures propagate.
	LoadState() (State, error)

	// SaveState replaces the stored blob.
	SaveState(state State) error

	// Close closes the underlying database.
	Close() error
}

// BoltStore implements Store on a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore opens (creating if needed) the bbolt file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// LoadState reads the blob. Corruption is absorbed: an unparsable blob logs
// a warning and comes back as a zero State, which the reconcile step then
// turns into a fresh month.
func (b *BoltStore) LoadState() (State, error) {
	var state State
	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(stateKey))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &state); err != nil {
			slog.Warn("Stored state is unreadable, starting fresh", "error", err)
			state = State{}
		}
		return nil
	})
	if err != nil {
		return State{}, fmt.Errorf("loading state: %w", err)
	}
	return state, nil
}

// SaveState writes the blob.
func (b *BoltStore) SaveState(state State) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("marshaling state: %w", err)
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(stateKey), data)
	})
}

// Close closes the database file.
func (b *BoltStore) Close() error {
	return b.db.Close()
}
