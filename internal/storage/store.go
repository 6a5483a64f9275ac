// Package storage persists evaluated scenarios so past what-if runs can
// be reloaded and compared.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/daniela-hl/queue-sim/internal/queueing"
)

const bucketEvaluations = "evaluations"

// Kinds of stored scenarios.
const (
	KindFinite    = "finite"
	KindUnbounded = "unbounded"
)

// HistoryItem is one evaluated scenario: the parameters that went in and
// the metrics that came out.
type HistoryItem struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`

	Finite    *queueing.FiniteParams    `json:"finite,omitempty"`
	Unbounded *queueing.UnboundedParams `json:"unbounded,omitempty"`

	Metrics queueing.Metrics `json:"metrics"`
}

type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) a history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEvaluations))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the history database under ~/.queue-sim.
func OpenDefault() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(home, ".queue-sim", "history.db"))
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save assigns the item an ID and timestamp and persists it. Keys are
// zero-padded nanosecond timestamps so a reverse cursor walk yields
// newest-first ordering.
func (s *Store) Save(item HistoryItem) (string, error) {
	item.ID = uuid.NewString()
	item.Timestamp = time.Now()

	data, err := json.Marshal(item)
	if err != nil {
		return "", err
	}
	// The ID suffix keeps keys unique even when two saves land on the
	// same clock tick.
	key := []byte(fmt.Sprintf("%020d-%s", item.Timestamp.UnixNano(), item.ID))

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketEvaluations)).Put(key, data)
	})
	if err != nil {
		return "", err
	}
	return item.ID, nil
}

// List returns all stored items, newest first.
func (s *Store) List() []HistoryItem {
	var items []HistoryItem
	s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketEvaluations)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var item HistoryItem
			if err := json.Unmarshal(v, &item); err == nil {
				items = append(items, item)
			}
		}
		return nil
	})
	return items
}

// Get returns the item with the given ID, or an error if absent.
func (s *Store) Get(id string) (*HistoryItem, error) {
	var found *HistoryItem
	s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(bucketEvaluations)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item HistoryItem
			if err := json.Unmarshal(v, &item); err == nil && item.ID == id {
				found = &item
				return nil
			}
		}
		return nil
	})
	if found == nil {
		return nil, fmt.Errorf("storage: item %s not found", id)
	}
	return found, nil
}
