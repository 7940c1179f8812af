package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/repository"
)

// MaxStates is how many snapshots are kept per file.
const MaxStates = 200

// Store persists file modification history in BoltDB, one JSON list per path.
type Store struct {
	db     *bolt.DB
	bucket []byte
	limit  int
}

var _ repository.HistoryRepository = (*Store)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "history"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
		limit:  MaxStates,
	}, nil
}

// Record appends state to the history of path unless it equals the latest
// entry, trimming the oldest entries beyond MaxStates.
func (s *Store) Record(ctx context.Context, path string, state domain.FileState) ([]domain.FileState, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var states []domain.FileState
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var err error
		states, err = decode(b.Get([]byte(path)))
		if err != nil {
			return err
		}
		if n := len(states); n > 0 && states[n-1].Equal(state) {
			return nil
		}
		states = append(states, state)
		if len(states) > s.limit {
			states = append([]domain.FileState(nil), states[len(states)-s.limit:]...)
		}
		payload, err := json.Marshal(states)
		if err != nil {
			return err
		}
		return b.Put([]byte(path), payload)
	})
	return states, err
}

// History returns the stored states of path, oldest first.
func (s *Store) History(ctx context.Context, path string) ([]domain.FileState, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var states []domain.FileState
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		states, err = decode(tx.Bucket(s.bucket).Get([]byte(path)))
		return err
	})
	return states, err
}

// Size returns the number of tracked paths.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func decode(v []byte) ([]domain.FileState, error) {
	if len(v) == 0 {
		return []domain.FileState{}, nil
	}
	var states []domain.FileState
	if err := json.Unmarshal(v, &states); err != nil {
		return nil, err
	}
	return states, nil
}
