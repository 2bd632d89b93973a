package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaleidalab/qdakit/pkg/qda"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "qdakit_catalog_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	c, err := Open(filepath.Join(tmpDir, "catalog"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func sampleTable(t *testing.T) *qda.Table {
	t.Helper()
	table, err := qda.NewTable([][]float64{{1, 2}, {3, 4}}, qda.TableOptions{
		Name:    "sample.qda",
		Headers: []string{"X", "Y"},
	})
	require.NoError(t, err)
	return table
}

func TestCatalogAddGet(t *testing.T) {
	c := openTestCatalog(t)

	entry, err := c.Add(sampleTable(t), "/data/sample.qda", 1234)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "/data/sample.qda", entry.Path)
	assert.Equal(t, int64(1234), entry.Size)
	assert.False(t, entry.AddedAt.IsZero())

	got, err := c.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, got.ID)
	assert.Equal(t, entry.Path, got.Path)
	assert.Equal(t, 2, got.Summary.Columns)
	assert.Equal(t, []string{"X", "Y"}, got.Summary.Headers)
}

func TestCatalogGetMissing(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Get("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogList(t *testing.T) {
	c := openTestCatalog(t)

	first, err := c.Add(sampleTable(t), "/data/a.qda", 10)
	require.NoError(t, err)
	second, err := c.Add(sampleTable(t), "/data/b.qda", 20)
	require.NoError(t, err)

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := map[string]bool{}
	for _, e := range entries {
		ids[e.ID] = true
	}
	assert.True(t, ids[first.ID])
	assert.True(t, ids[second.ID])
}

func TestCatalogListEmpty(t *testing.T) {
	c := openTestCatalog(t)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCatalogRemove(t *testing.T) {
	c := openTestCatalog(t)

	entry, err := c.Add(sampleTable(t), "/data/sample.qda", 512)
	require.NoError(t, err)

	require.NoError(t, c.Remove(entry.ID))

	_, err = c.Get(entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, c.Remove(entry.ID), ErrNotFound)
}

func TestCatalogAddFile(t *testing.T) {
	c := openTestCatalog(t)

	tmpDir, err := os.MkdirTemp("", "qdakit_catalog_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "disk.qda")
	require.NoError(t, qda.WriteFile(path, sampleTable(t)))

	entry, err := c.AddFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, entry.Path)
	assert.Equal(t, path, entry.Summary.Name)
	assert.Greater(t, entry.Size, int64(0))
	assert.False(t, entry.ModTime.IsZero())

	_, err = c.AddFile(filepath.Join(tmpDir, "missing.qda"))
	assert.Error(t, err)
}

func TestCatalogPut(t *testing.T) {
	c := openTestCatalog(t)

	entry := &Entry{Path: "/data/manual.qda", Size: 77}
	require.NoError(t, c.Put(entry))
	assert.NotEmpty(t, entry.ID)

	got, err := c.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "/data/manual.qda", got.Path)

	// Same id, so the second put overwrites rather than duplicating.
	entry.Size = 99
	require.NoError(t, c.Put(entry))

	got, err = c.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got.Size)

	entries, err := c.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCatalogScan(t *testing.T) {
	c := openTestCatalog(t)

	tmpDir, err := os.MkdirTemp("", "qdakit_catalog_scan")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	require.NoError(t, qda.WriteFile(filepath.Join(tmpDir, "a.qda"), sampleTable(t)))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0o750))
	require.NoError(t, qda.WriteFile(filepath.Join(tmpDir, "sub", "b.QDA"), sampleTable(t)))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "broken.qda"), []byte("junk"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("not a table"), 0o600))

	result, err := c.Scan(tmpDir)
	require.NoError(t, err)
	assert.Len(t, result.Added, 2)
	assert.Empty(t, result.Updated)
	require.Len(t, result.Failed, 1)
	assert.Contains(t, result.Failed[0].Path, "broken.qda")

	for _, entry := range result.Added {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.ModTime.IsZero())
	}

	entries, err := c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := map[string]bool{}
	for _, e := range entries {
		ids[e.ID] = true
	}

	// Rescanning updates in place instead of duplicating.
	again, err := c.Scan(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, again.Added)
	assert.Len(t, again.Updated, 2)

	entries, err = c.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, ids[e.ID], "rescan should keep entry ids stable")
	}
}

func TestCatalogScanMissingDir(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Scan("/no/such/directory")
	assert.Error(t, err)
}
