package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anurag-Zel/User-Registration/internal/account"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "session.json"))
}

func TestStoreLoadMissing(t *testing.T) {
	store := testStore(t)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestStoreSaveLoad(t *testing.T) {
	store := testStore(t)

	sess := &Session{
		Token: "some-token",
		User:  &account.Account{Email: "a@x.com"},
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "some-token", loaded.Token)
	require.Equal(t, "a@x.com", loaded.User.Email)
}

func TestStoreFilePermissions(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Save(&Session{Token: "t"}))

	info, err := os.Stat(store.path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStoreClear(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Save(&Session{Token: "t"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine
	require.NoError(t, store.Clear())
}

func TestStoreLoadEmptyToken(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Save(&Session{Token: ""}))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}
