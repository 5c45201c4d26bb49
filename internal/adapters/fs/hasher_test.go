package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
)

func TestHasher_Changed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "root.layer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o600))

	h := fs.NewHasher()
	assert.True(t, h.Changed(path), "first sighting counts as a change")
	assert.False(t, h.Changed(path))

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o600))
	assert.True(t, h.Changed(path))

	require.NoError(t, os.Remove(path))
	assert.True(t, h.Changed(path))
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	t.Parallel()

	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open file")
}
