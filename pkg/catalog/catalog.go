// Package catalog persists metadata about inspected QDA files in a local
// pebble store. Entries are keyed by KSUID, so keys sort roughly by the time
// a file was cataloged.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("catalog: entry not found")

// Entry is one cataloged QDA file: where it lives, how big it is, and the
// decoded table metadata.
type Entry struct {
	ID      string      `json:"id"`
	Path    string      `json:"path"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"mod_time,omitempty"`
	Summary qda.Summary `json:"summary"`
	AddedAt time.Time   `json:"added_at"`
}

// Catalog is a pebble-backed entry store.
type Catalog struct {
	db *pebble.DB
}

// Open opens the catalog at path, creating it if necessary.
func Open(path string) (*Catalog, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying store.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add catalogs an already decoded table and returns the new entry. size is
// the encoded byte length of the source.
func (c *Catalog) Add(table *qda.Table, path string, size int64) (*Entry, error) {
	entry := &Entry{
		Path:    path,
		Size:    size,
		Summary: table.Summary(),
		AddedAt: time.Now().UTC(),
	}
	if err := c.Put(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AddFile decodes the QDA file at path and catalogs it.
func (c *Catalog) AddFile(path string) (*Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	table, err := qda.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entry := &Entry{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime().UTC(),
		Summary: table.Summary(),
		AddedAt: time.Now().UTC(),
	}
	if err := c.Put(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Put stores an entry, assigning a fresh id when it has none.
func (c *Catalog) Put(entry *Entry) error {
	if entry.ID == "" {
		entry.ID = ksuid.New().String()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("catalog: serialize entry: %w", err)
	}
	if err := c.db.Set([]byte(entry.ID), data, pebble.NoSync); err != nil {
		return fmt.Errorf("catalog: store entry: %w", err)
	}
	return nil
}

// Get returns the entry with the given id, or ErrNotFound.
func (c *Catalog) Get(id string) (*Entry, error) {
	data, closer, err := c.db.Get([]byte(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("catalog: get %s: %w", id, err)
	}
	defer closer.Close()

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("catalog: decode entry %s: %w", id, err)
	}
	return &entry, nil
}

// List returns every entry in key order.
func (c *Catalog) List() ([]*Entry, error) {
	iter, err := c.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: iterate: %w", err)
	}
	defer iter.Close()

	var entries []*Entry
	for iter.First(); iter.Valid(); iter.Next() {
		var entry Entry
		if err := json.Unmarshal(iter.Value(), &entry); err != nil {
			return nil, fmt.Errorf("catalog: decode entry %s: %w", iter.Key(), err)
		}
		entries = append(entries, &entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("catalog: iterate: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry with the given id, or returns ErrNotFound.
func (c *Catalog) Remove(id string) error {
	if _, err := c.Get(id); err != nil {
		return err
	}
	if err := c.db.Delete([]byte(id), pebble.NoSync); err != nil {
		return fmt.Errorf("catalog: delete %s: %w", id, err)
	}
	return nil
}

// ScanError records a file a scan could not catalog.
type ScanError struct {
	Path string
	Err  error
}

// ScanResult reports what a directory scan changed.
type ScanResult struct {
	Added   []*Entry
	Updated []*Entry
	Failed  []ScanError
}

// Scan walks dir for .qda files and catalogs each one. Files already
// cataloged under the same path are updated in place, keeping their id and
// added-at time. Files that fail to decode are reported in the result
// without aborting the walk.
func (c *Catalog) Scan(dir string) (*ScanResult, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}

	existing, err := c.List()
	if err != nil {
		return nil, err
	}
	byPath := make(map[string]*Entry, len(existing))
	for _, entry := range existing {
		byPath[entry.Path] = entry
	}

	result := &ScanResult{}
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".qda") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			result.Failed = append(result.Failed, ScanError{Path: path, Err: err})
			return nil
		}
		table, err := qda.ReadFile(path)
		if err != nil {
			result.Failed = append(result.Failed, ScanError{Path: path, Err: err})
			return nil
		}

		entry := &Entry{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime().UTC(),
			Summary: table.Summary(),
			AddedAt: time.Now().UTC(),
		}
		if prev, ok := byPath[path]; ok {
			entry.ID = prev.ID
			entry.AddedAt = prev.AddedAt
		}
		updated := entry.ID != ""

		if err := c.Put(entry); err != nil {
			result.Failed = append(result.Failed, ScanError{Path: path, Err: err})
			return nil
		}
		if updated {
			result.Updated = append(result.Updated, entry)
		} else {
			result.Added = append(result.Added, entry)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}
	return result, nil
}
