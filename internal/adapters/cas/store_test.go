package cas_test

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/cas"
	"go.trai.ch/qworld/internal/core/domain"
)

const fp = domain.Fingerprint("0123456789abcdef")

func TestStore_LookupStore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "static", "img")
	store := cas.NewStore(dir, "/", "img/qworld-diagrams")

	t.Run("miss before store", func(t *testing.T) {
		_, ok := store.Lookup(fp)
		assert.False(t, ok)
	})

	t.Run("store creates the directory", func(t *testing.T) {
		entry, err := store.Store(fp, []byte("<svg/>"))
		require.NoError(t, err)

		assert.Equal(t, fp, entry.Fingerprint)
		assert.Equal(t, filepath.Join(dir, "0123456789abcdef.svg"), entry.Path)
		assert.Equal(t, "/img/qworld-diagrams/0123456789abcdef.svg", entry.PublicPath)

		data, err := os.ReadFile(entry.Path)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))

		info, err := os.Stat(entry.Path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
	})

	t.Run("hit after store", func(t *testing.T) {
		entry, ok := store.Lookup(fp)
		require.True(t, ok)
		assert.Equal(t, "/img/qworld-diagrams/0123456789abcdef.svg", entry.PublicPath)
	})

	t.Run("store is idempotent", func(t *testing.T) {
		_, err := store.Store(fp, []byte("<svg>other</svg>"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, fp.FileName()))
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(data))
	})

	t.Run("no temp files remain", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, fp.FileName(), entries[0].Name())
	})
}

func TestStore_LookupIgnoresDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, fp.FileName()), 0o750))

	_, ok := cas.NewStore(dir, "/", "img").Lookup(fp)
	assert.False(t, ok)
}

func TestStore_ConcurrentStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := cas.NewStore(dir, "/", "img")

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_, err := store.Store(fp, []byte("<svg/>"))
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStore_PublicPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		baseURL  string
		assetDir string
		want     string
	}{
		{"root", "/", "img/qworld-diagrams", "/img/qworld-diagrams/0123456789abcdef.svg"},
		{"empty base", "", "img", "/img/0123456789abcdef.svg"},
		{"prefixed site", "/docs/", "img/qworld-diagrams", "/docs/img/qworld-diagrams/0123456789abcdef.svg"},
		{"relative base", "site", "img", "site/img/0123456789abcdef.svg"},
		{"trailing slash asset dir", "/", "img/", "/img/0123456789abcdef.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := cas.NewStore(t.TempDir(), tt.baseURL, tt.assetDir)
			assert.Equal(t, tt.want, store.PublicPath(fp))
		})
	}
}

func TestStore_EntriesAndPrune(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := cas.NewStore(dir, "/", "img")

	for _, f := range []domain.Fingerprint{"aaaa", "bbbb", "cccc"} {
		_, err := store.Store(f, []byte(f))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dddd-123.tmp"), []byte("partial"), 0o600))

	var fps []domain.Fingerprint
	for e := range store.Entries() {
		fps = append(fps, e.Fingerprint)
	}
	assert.Equal(t, []domain.Fingerprint{"aaaa", "bbbb", "cccc"}, fps)

	removed, err := store.Prune(map[domain.Fingerprint]struct{}{"bbbb": {}})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	remaining := slices.Collect(func(yield func(string) bool) {
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if !yield(e.Name()) {
				return
			}
		}
	})
	assert.ElementsMatch(t, []string{".dddd-123.tmp", "bbbb.svg", "notes.txt"}, remaining)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	store, err := cas.Open(&domain.Config{OutputDir: dir, BaseURL: "/", AssetDir: "img"})
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
