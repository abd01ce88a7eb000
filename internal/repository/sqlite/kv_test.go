package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*KVRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.db")
	repo, err := Open(path)
	require.NoError(t, err)
	return repo, path
}

func TestKVRepo_GetMissing(t *testing.T) {
	repo, _ := openTemp(t)
	defer repo.Close()

	value, ok, err := repo.Get("word-sheet-data")

	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", value)
}

func TestKVRepo_PutOverwrites(t *testing.T) {
	repo, _ := openTemp(t)
	defer repo.Close()

	require.NoError(t, repo.Put("k", "first"))
	require.NoError(t, repo.Put("k", `[{"id":"a","word":"경험"}]`))

	value, ok, err := repo.Get("k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a","word":"경험"}]`, value)
}

func TestKVRepo_SurvivesReopen(t *testing.T) {
	repo, path := openTemp(t)
	require.NoError(t, repo.Put("k", "v"))
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
