package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ideapad/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ideapad/internal/config"
	"github.com/custodia-labs/ideapad/internal/core/domain"
)

func TestLogin(t *testing.T) {
	f := newFixture(t, "")

	out, err := execute(t, "", "login", " alice ")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as alice.")
	id, _ := f.identity.Load()
	assert.Equal(t, "alice", id.UserID)
}

func TestLogin_Blank(t *testing.T) {
	newFixture(t, "")

	_, err := execute(t, "", "login", "  ")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_Token(t *testing.T) {
	newFixture(t, "")
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	SetConfig(nil, store)
	t.Cleanup(func() { SetConfig(nil, nil) })

	out, err := execute(t, "s3cret\n", "login", "--token", "alice")

	require.NoError(t, err)
	assert.Contains(t, out, "Backend token: ")
	assert.Equal(t, "s3cret", store.GetString(config.KeyBackendToken))
}

func TestLogin_TokenWithoutStore(t *testing.T) {
	newFixture(t, "")
	SetConfig(nil, nil)

	_, err := execute(t, "x\n", "login", "--token", "alice")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestWhoami(t *testing.T) {
	newFixture(t, "")

	out, err := execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, domain.NoSessionMessage)

	_, err = execute(t, "", "login", "bob")
	require.NoError(t, err)

	out, err = execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as bob.")
}

func TestLogout(t *testing.T) {
	f := newFixture(t, "alice")

	out, err := execute(t, "", "logout")

	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")
	id, _ := f.identity.Load()
	assert.True(t, id.IsZero())
}

func TestSession_NotConfigured(t *testing.T) {
	SetServices(Services{})

	for _, args := range [][]string{{"login", "a"}, {"logout"}, {"whoami"}} {
		_, err := execute(t, "", args...)
		require.Error(t, err, args)
		assert.Contains(t, err.Error(), "not configured")
	}
}
