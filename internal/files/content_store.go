// Lute-crawl - music metadata ingestion and recommendation engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lute-crawl

package files

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/oklog/ulid"

	"github.com/tomtom215/lute-crawl/internal/models"
)

// ContentStore is a content-addressed blob cache keyed by a file's ULID,
// backed by BadgerDB's single-node ACID key-value engine.
type ContentStore struct {
	db *badger.DB
}

// OpenContentStore opens (creating if absent) a BadgerDB instance at dir.
// An empty dir opens an in-memory store, used by tests.
func OpenContentStore(dir string) (*ContentStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger store: %v", models.ErrStore, err)
	}
	return &ContentStore{db: db}, nil
}

// Close shuts down the underlying BadgerDB instance.
func (c *ContentStore) Close() error {
	return c.db.Close()
}

// Put writes content under the given file id, overwriting any prior value.
func (c *ContentStore) Put(fileID ulid.ULID, content []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(fileID.String()), content)
	})
	if err != nil {
		return fmt.Errorf("%w: put content: %v", models.ErrStore, err)
	}
	return nil
}

// Get reads content by file id. ok is false if no entry exists.
func (c *ContentStore) Get(fileID ulid.ULID) (content []byte, ok bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(fileID.String()))
		if errors.Is(getErr, badger.ErrKeyNotFound) {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			content = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: get content: %v", models.ErrStore, err)
	}
	return content, ok, nil
}

// Delete removes content by file id. Deleting a missing id is a no-op.
func (c *ContentStore) Delete(fileID ulid.ULID) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(fileID.String()))
	})
	if err != nil {
		return fmt.Errorf("%w: delete content: %v", models.ErrStore, err)
	}
	return nil
}
