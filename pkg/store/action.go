package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	. "src.liveui.sh/pkg/store/storedefs"
)

func init() {
	initDB["initialize action journal"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketAction))
		return err
	}
}

// NextActionSeq returns the next sequence number of the action journal.
func (s *dbStore) NextActionSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAction))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddAction appends an action to the journal and returns its sequence number.
func (s *dbStore) AddAction(text string) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAction))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), []byte(text))
	})
	return int(seq), err
}

// Action queries the journal entry with the specified sequence number.
func (s *dbStore) Action(seq int) (string, error) {
	var text string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAction))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingAction
		}
		text = string(v)
		return nil
	})
	return text, err
}

// ActionsWithSeq returns all journal entries with sequence numbers in
// [from, upto).
func (s *dbStore) ActionsWithSeq(from, upto int) ([]Action, error) {
	var actions []Action
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAction))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			actions = append(actions, Action{Text: string(v), Seq: int(unmarshalSeq(k))})
		}
		return nil
	})
	return actions, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
