package auth_test

import (
	"context"
	"testing"

	"taskboard/db"
	"taskboard/internal/auth"
	"taskboard/tests/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthService(t *testing.T) (*auth.Service, func()) {
	factory, cleanup := testutils.SetupTestRepositoryFactory(t)
	dbManager := db.NewDBManager()

	tokens := auth.NewTokenService(testutils.GetTestConfig().JwtKey)
	service := auth.NewService(factory.NewUserRepository(), tokens, dbManager)

	return service, func() {
		dbManager.Stop()
		cleanup()
	}
}

func TestService_Register(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("MissingFields", func(t *testing.T) {
		_, err := service.Register(ctx, "", "secret")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)

		_, err = service.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrMissingCredentials)
	})

	t.Run("Success", func(t *testing.T) {
		id, err := service.Register(ctx, "alice", "secret")
		require.NoError(t, err)
		assert.NotZero(t, id)
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := service.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, auth.ErrUserExists)
	})

	t.Run("UsernamesAreCaseSensitive", func(t *testing.T) {
		_, err := service.Register(ctx, "Alice", "secret")
		assert.NoError(t, err)
	})
}

func TestService_Login(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	ctx := context.Background()
	_, err := service.Register(ctx, "bob", "hunter2")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, err := service.Login(ctx, "bob", "hunter2")
		require.NoError(t, err)

		claims, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "bob", claims.Username)
		assert.NotZero(t, claims.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := service.Login(ctx, "bob", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := service.Login(ctx, "nobody", "hunter2")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
