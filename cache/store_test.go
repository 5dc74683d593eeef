package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "labels.json"), opts...)
}

func TestStorePutGetRoundTrip(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.Put("doc-1", "case_study"))

	var label string
	ok, err := s.Get("doc-1", &label)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "case_study", label)
}

func TestStoreGetAbsent(t *testing.T) {
	s := testStore(t)
	var label string
	ok, err := s.Get("missing", &label)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")

	s := NewStore(path)
	require.NoError(t, s.Put("doc-1", "report"))
	require.NoError(t, s.Flush())

	reopened := NewStore(path)
	var label string
	ok, err := reopened.Get("doc-1", &label)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "report", label)
}

func TestStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	var label string
	ok, err := s.Get("doc-1", &label)
	require.NoError(t, err)
	assert.False(t, ok)

	// The store stays usable after discarding the corrupt file.
	require.NoError(t, s.Put("doc-1", "guide"))
	require.NoError(t, s.Flush())

	ok, err = NewStore(path).Get("doc-1", &label)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorePeriodicFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	s := NewStore(path, WithFlushEvery(5))

	for i := 0; i < 4; i++ {
		require.NoError(t, s.Put(fmt.Sprintf("doc-%d", i), "other"))
	}
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no flush before the cadence is reached")

	require.NoError(t, s.Put("doc-4", "other"))
	_, err = os.Stat(path)
	assert.NoError(t, err, "fifth distinct entry must flush")
}

func TestStoreAtomicPersistLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.json")
	s := NewStore(path)

	require.NoError(t, s.Put("doc-1", "lecture"))
	require.NoError(t, s.Flush())

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be renamed away")

	// The persisted file is a valid flat JSON mapping.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "doc-1")
}

func TestStoreConcurrentWritersLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.json")
	s := NewStore(path)

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				key := fmt.Sprintf("w%d-doc%d", w, i)
				assert.NoError(t, s.Put(key, "transcript"))
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, s.Flush())

	assert.Equal(t, writers*perWriter, s.Len())

	reopened := NewStore(path)
	assert.Equal(t, writers*perWriter, reopened.Len())
}

func TestStoreStructuredValues(t *testing.T) {
	s := testStore(t)

	type meta struct {
		Summary string   `json:"summary"`
		Tags    []string `json:"tags"`
	}
	in := meta{Summary: "a summary", Tags: []string{"one", "two"}}
	require.NoError(t, s.Put("doc-1", in))

	var out meta
	ok, err := s.Get("doc-1", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)
}
