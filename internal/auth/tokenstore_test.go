package auth_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pream14/FinanceFrontend/internal/auth"
	"github.com/pream14/FinanceFrontend/internal/gateway"
)

func TestTokenStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	ts := auth.NewTokenStoreAt(path)

	_, err := ts.Load()
	require.ErrorIs(t, err, auth.ErrNoCredentials)

	creds := gateway.Credentials{AccessToken: "tok1", Role: "worker", Username: "Wekesa"}
	require.NoError(t, ts.Save(creds))

	got, err := ts.Load()
	require.NoError(t, err)
	assert.Equal(t, creds, got)

	require.NoError(t, ts.Clear())

	_, err = ts.Load()
	assert.ErrorIs(t, err, auth.ErrNoCredentials)

	// Clearing twice is fine.
	assert.NoError(t, ts.Clear())
}

func TestTokenStore_EmptyTokenTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	ts := auth.NewTokenStoreAt(path)

	require.NoError(t, ts.Save(gateway.Credentials{Username: "Wekesa"}))

	_, err := ts.Load()
	assert.ErrorIs(t, err, auth.ErrNoCredentials)
}
