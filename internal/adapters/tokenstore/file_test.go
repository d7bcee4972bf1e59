package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findly/findly-go/internal/core/domain"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := NewFile(path)

	pair, err := store.Pair()
	require.NoError(t, err)
	assert.True(t, pair.Empty(), "missing file reads as logged out")

	want := domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, store.SetPair(want))

	got, err := store.Pair()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileSetAccessTokenKeepsRefreshToken(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "tokens.json"))

	require.NoError(t, store.SetPair(domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}))
	require.NoError(t, store.SetAccessToken("access-2"))

	pair, err := store.Pair()
	require.NoError(t, err)
	assert.Equal(t, "access-2", pair.AccessToken)
	assert.Equal(t, "refresh-1", pair.RefreshToken)
}

func TestFileSetAccessTokenWithoutPairFails(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "tokens.json"))

	err := store.SetAccessToken("access-2")
	require.ErrorIs(t, err, ErrNoStoredPair)
}

func TestFileClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFile(path)

	require.NoError(t, store.SetPair(domain.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is fine")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	pair, err := store.Pair()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestFileCorruptFileReadsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	pair, err := NewFile(path).Pair()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}
