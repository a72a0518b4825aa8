// Package store keeps the persistent data of liveui: the application state of
// each design, and a journal of the actions emitted by past sessions.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.liveui.sh/pkg/logutil"
	"src.liveui.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Bucket names.
const (
	bucketState  = "state"
	bucketAction = "action"
)

// Initializers of the database, keyed by description. Each file of the
// package registers the buckets it uses.
var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend of liveui.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new DBStore backed by the bolt database at dbname,
// creating the file if needed.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbname, err)
	}
	return newStoreFromDB(db)
}

func newStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("initialized store")
	return &dbStore{db}, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
