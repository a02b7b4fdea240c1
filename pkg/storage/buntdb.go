package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

// FigureCache memoizes rendered figure payloads keyed by selection.
// Recompute functions are pure, so a cached payload for a key is always
// equal to a fresh computation for the lifetime of the loaded dataset.
type FigureCache struct {
	db  *buntdb.DB
	ttl time.Duration
}

// NewFigureCache opens an in-memory cache. A zero ttl keeps entries forever.
func NewFigureCache(ttl time.Duration) (*FigureCache, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	return &FigureCache{
		db:  db,
		ttl: ttl,
	}, nil
}

// Get returns the cached payload for key
func (c *FigureCache) Get(key string) ([]byte, bool) {
	var value string

	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		value, err = tx.Get(key)
		return err
	})
	if err != nil {
		return nil, false
	}

	return []byte(value), true
}

// Set stores payload under key
func (c *FigureCache) Set(key string, payload []byte) error {
	var opts *buntdb.SetOptions
	if c.ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: c.ttl}
	}

	return c.db.Update(func(tx *buntdb.Tx) error {
		if _, _, err := tx.Set(key, string(payload), opts); err != nil {
			return fmt.Errorf("failed to cache figure: %w", err)
		}
		return nil
	})
}

// Len returns the number of live entries
func (c *FigureCache) Len() int {
	var n int
	err := c.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	if err != nil {
		return 0
	}
	return n
}

// Close closes the cache
func (c *FigureCache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	if errors.Is(err, buntdb.ErrDatabaseClosed) {
		return nil
	}
	return err
}
