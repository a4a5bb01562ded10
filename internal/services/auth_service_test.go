package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/request-board/internal/constants"
	"github.com/yukikurage/request-board/internal/models"
	"github.com/yukikurage/request-board/internal/repository"
)

func TestAuthService_Login(t *testing.T) {
	env := setupBoard(t, BoardOptions{})
	signup := env.board.Session(repository.NewMemoryKVRepository())
	carol, err := signup.Users.Register(models.User{Name: "Carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)

	session := env.board.Session(repository.NewMemoryKVRepository())

	t.Run("by email with remember me", func(t *testing.T) {
		user, err := session.Auth.Login(LoginInput{Input: "CAROL@example.com", Password: "pw", RememberMe: true})
		require.NoError(t, err)
		assert.Equal(t, carol.ID, user.ID)

		current, ok := session.Users.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, carol.ID, current.ID)

		data, ok, err := env.durable.Get(constants.StorageKeyUser)
		require.NoError(t, err)
		require.True(t, ok)
		var last models.User
		require.NoError(t, json.Unmarshal(data, &last))
		assert.Equal(t, carol.ID, last.ID)

		remembered, ok := session.Auth.RememberedLogin()
		require.True(t, ok)
		assert.Equal(t, models.RememberedLogin{Input: "CAROL@example.com", Password: "pw"}, remembered)
	})

	t.Run("by name without remember me clears it", func(t *testing.T) {
		_, err := session.Auth.Login(LoginInput{Input: "carol", Password: "pw"})
		require.NoError(t, err)

		_, ok := session.Auth.RememberedLogin()
		assert.False(t, ok)
	})

	t.Run("wrong password", func(t *testing.T) {
		other := env.board.Session(repository.NewMemoryKVRepository())
		_, err := other.Auth.Login(LoginInput{Input: "carol", Password: "nope"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, ok := other.Users.CurrentUser()
		assert.False(t, ok)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := session.Auth.Login(LoginInput{Input: "dave", Password: "pw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := session.Auth.Login(LoginInput{Input: "carol"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestAuthService_Logout(t *testing.T) {
	env := setupBoard(t, BoardOptions{})
	session := env.board.Session(repository.NewMemoryKVRepository())

	_, err := session.Users.Register(models.User{Name: "Carol", Email: "carol@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = session.Auth.Login(LoginInput{Input: "carol", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, session.Admin.SubmitPassword("admin123"))

	require.NoError(t, session.Auth.Logout())

	_, ok := session.Users.CurrentUser()
	assert.False(t, ok)
	assert.False(t, session.Admin.IsAdmin())
	_, ok, err = env.durable.Get(constants.StorageKeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}
