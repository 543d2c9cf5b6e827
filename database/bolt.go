package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"github.com/gurman-mavi/Project-Voyage-AI-sub001/logcolors"
)

const (
	tripsBucket   = "trips"
	createdBucket = "trips_by_created"
)

// BoltStore keeps trips in an embedded BoltDB file, for single-node
// deployments without Postgres.
type BoltStore struct {
	db     *bolt.DB
	dbPath string
}

var _ Store = (*BoltStore)(nil)

func OpenBolt(dbPath string) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trips directory: %v", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open trips database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(tripsBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(createdBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create trips buckets: %v", err)
	}

	log.Infof("%s Embedded trip store initialized at %s", logcolors.LogTrips, dbPath)
	return &BoltStore{db: db, dbPath: dbPath}, nil
}

// createdKey sorts by creation time, ties broken by id.
func createdKey(t *Trip) []byte {
	return []byte(fmt.Sprintf("%020d|%s", t.CreatedAt.UnixNano(), t.ID))
}

func (s *BoltStore) SaveTrip(_ context.Context, t *Trip) error {
	assignIdentity(t, time.Now())
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode trip: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		trips := tx.Bucket([]byte(tripsBucket))
		index := tx.Bucket([]byte(createdBucket))

		if prev := trips.Get([]byte(t.ID)); prev != nil {
			var old Trip
			if err := json.Unmarshal(prev, &old); err == nil {
				if err := index.Delete(createdKey(&old)); err != nil {
					return err
				}
			}
		}
		if err := trips.Put([]byte(t.ID), doc); err != nil {
			return err
		}
		return index.Put(createdKey(t), []byte(t.ID))
	})
}

func (s *BoltStore) GetTrip(_ context.Context, id string) (*Trip, error) {
	var t *Trip
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(tripsBucket)).Get([]byte(id))
		if v == nil {
			return ErrTripNotFound
		}
		t = &Trip{}
		return json.Unmarshal(v, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTrips returns trips newest first.
func (s *BoltStore) ListTrips(_ context.Context, limit int) ([]Trip, error) {
	limit = listLimit(limit)
	trips := []Trip{}

	err := s.db.View(func(tx *bolt.Tx) error {
		docs := tx.Bucket([]byte(tripsBucket))
		c := tx.Bucket([]byte(createdBucket)).Cursor()
		for k, id := c.Last(); k != nil && len(trips) < limit; k, id = c.Prev() {
			v := docs.Get(id)
			if v == nil {
				continue
			}
			var t Trip
			if err := json.Unmarshal(v, &t); err != nil {
				log.Warnf("%s Skipping undecodable trip %s: %v", logcolors.LogTrips, id, err)
				continue
			}
			trips = append(trips, t)
		}
		return nil
	})
	return trips, err
}

func (s *BoltStore) DeleteTrip(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		trips := tx.Bucket([]byte(tripsBucket))
		v := trips.Get([]byte(id))
		if v == nil {
			return ErrTripNotFound
		}
		var t Trip
		if err := json.Unmarshal(v, &t); err == nil {
			if err := tx.Bucket([]byte(createdBucket)).Delete(createdKey(&t)); err != nil {
				return err
			}
		}
		return trips.Delete([]byte(id))
	})
}

func (s *BoltStore) Ping(_ context.Context) error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(tripsBucket)) == nil {
			return fmt.Errorf("trips bucket missing")
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
