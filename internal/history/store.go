package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var runsBucket = []byte("runs")

// Record summarizes one completed monitoring run.
type Record struct {
	GeneratedAt    string `json:"generated_at"`
	TotalCountries int    `json:"total_countries"`
	TotalMentions  int    `json:"total_mentions,omitempty"`
	TopCountry     string `json:"top_country,omitempty"`
	ReportPath     string `json:"report_path"`
}

// Store keeps the run history in a local bbolt database. Keys are the run
// timestamps, so iteration order is chronological.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a completed run keyed by its timestamp.
func (s *Store) Append(rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Put([]byte(rec.GeneratedAt), payload)
	})
}

// Last returns the most recent run record, if any.
func (s *Store) Last() (Record, bool, error) {
	var (
		rec   Record
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		_, v := tx.Bucket(runsBucket).Cursor().Last()
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &rec)
	})
	if err != nil {
		return Record{}, false, fmt.Errorf("read last run: %w", err)
	}
	return rec, found, nil
}

// Count returns how many runs are recorded.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(runsBucket).Stats().KeyN
		return nil
	})
	return n, err
}
