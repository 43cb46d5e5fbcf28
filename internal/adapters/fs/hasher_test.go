package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/fs"
	"go.trai.ch/qworld/internal/core/domain"
)

func TestHasher_Fingerprint(t *testing.T) {
	hasher := fs.NewHasher(fs.NewWalker())

	t.Run("Pure", func(t *testing.T) {
		a := hasher.Fingerprint("v1", domain.KindBlock, `\q{a}`)
		b := hasher.Fingerprint("v1", domain.KindBlock, `\q{a}`)
		assert.Equal(t, a, b)
		assert.Len(t, a.String(), 16)
	})

	t.Run("Kind Sensitive", func(t *testing.T) {
		src := `\q{x}`
		block := hasher.Fingerprint("v1", domain.KindBlock, src)
		inline := hasher.Fingerprint("v1", domain.KindInline, src)
		display := hasher.Fingerprint("v1", domain.KindDisplay, src)
		assert.NotEqual(t, block, inline)
		assert.NotEqual(t, inline, display)
		assert.NotEqual(t, block, display)
	})

	t.Run("Version Sensitive", func(t *testing.T) {
		assert.NotEqual(t,
			hasher.Fingerprint("v1", domain.KindBlock, "x"),
			hasher.Fingerprint("v2", domain.KindBlock, "x"))
	})

	t.Run("Separator Prevents Ambiguity", func(t *testing.T) {
		assert.NotEqual(t,
			hasher.Fingerprint("ab", domain.KindBlock, "c"),
			hasher.Fingerprint("a", domain.KindBlock, "bc"))
	})
}

func TestHasher_ComputeTemplateVersion(t *testing.T) {
	t.Run("Resource Change", func(t *testing.T) {
		dir := t.TempDir()
		sty := filepath.Join(dir, "qworld.sty")
		writeFile(t, sty, "v1")

		hasher := fs.NewHasher(fs.NewWalker())
		v1, err := hasher.ComputeTemplateVersion(domain.DefaultTemplate, dir, "")
		require.NoError(t, err)

		writeFile(t, sty, "v2")
		v2, err := hasher.ComputeTemplateVersion(domain.DefaultTemplate, dir, "")
		require.NoError(t, err)

		assert.NotEqual(t, v1, v2)
	})

	t.Run("Template And Label", func(t *testing.T) {
		hasher := fs.NewHasher(fs.NewWalker())

		base, err := hasher.ComputeTemplateVersion("T", "", "")
		require.NoError(t, err)
		otherTemplate, err := hasher.ComputeTemplateVersion("U", "", "")
		require.NoError(t, err)
		labelled, err := hasher.ComputeTemplateVersion("T", "", "2024-01")
		require.NoError(t, err)

		assert.NotEqual(t, base, otherTemplate)
		assert.NotEqual(t, base, labelled)
	})

	t.Run("Missing Resource Dir", func(t *testing.T) {
		hasher := fs.NewHasher(fs.NewWalker())
		_, err := hasher.ComputeTemplateVersion("T", filepath.Join(t.TempDir(), "missing"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrMacroResourceMissing.Error())
	})
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "hello.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello world"), domain.FilePerm))

	hasher := fs.NewHasher(fs.NewWalker())

	sum, err := hasher.ComputeFileHash(file)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x45ab6734b21e6968), sum)

	_, err = hasher.ComputeFileHash(filepath.Join(tmpDir, "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
