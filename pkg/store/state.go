package store

import (
	bolt "go.etcd.io/bbolt"

	. "src.liveui.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize state table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketState))
		return err
	}
}

// State returns the state saved under the given name.
func (s *dbStore) State(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoState
		}
		// Values are only valid during the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// SetState saves state under the given name, replacing any previous value.
func (s *dbStore) SetState(name string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		return b.Put([]byte(name), data)
	})
}

// DelState deletes the state saved under the given name.
func (s *dbStore) DelState(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketState))
		return b.Delete([]byte(name))
	})
}
