package repository

import (
	"context"
	"testing"

	"cakeshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewAccountRepository(pool, logger)

	ctx := context.Background()

	created, err := repo.Create(ctx, model.AccountCreate{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "$2a$12$hashedhashedhashedhashed",
		FullName: "Shop Admin",
		Role:     model.RoleAdmin,
		Status:   "active",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.RoleAdmin, created.Role)

	t.Run("GetByUsername finds the account", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("GetByEmail finds the account", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("Missing account returns nil without error", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Duplicate username is a conflict", func(t *testing.T) {
		_, err := repo.Create(ctx, model.AccountCreate{
			Username: "admin",
			Email:    "other@example.com",
			Password: "hash",
			FullName: "Other",
			Role:     model.RoleStaff,
			Status:   "active",
		})
		require.Error(t, err)
		assert.True(t, model.IsConflict(err))
	})

	t.Run("List returns all accounts", func(t *testing.T) {
		accounts, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, accounts, 1)
	})
}
