package services

import (
	"context"
	"errors"
	"testing"

	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(database.NewMemoryStore(nil))
	svc.cost = bcrypt.MinCost

	t.Run("Create Hashes Password", func(t *testing.T) {
		u, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: " admin ", Password: "rahasia123"})
		require.NoError(t, err)
		assert.Equal(t, "admin", u.Username)
		assert.NotEqual(t, "rahasia123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia123")))
	})

	t.Run("Duplicate", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: "admin", Password: "another-pass"})
		assert.ErrorIs(t, err, database.ErrDuplicateUsername)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, models.CreateUserRequest{Username: "x", Password: "short"})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "password", verr.Field)
	})

	t.Run("Check Password", func(t *testing.T) {
		u, err := svc.CheckPassword(ctx, "admin", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, "admin", u.Username)

		_, err = svc.CheckPassword(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.CheckPassword(ctx, "ghost", "rahasia123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
