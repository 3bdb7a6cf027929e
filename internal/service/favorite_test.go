package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/testhelpers"
	"github.com/savorly/recipebook-backend/internal/types"
)

func TestAddFavorite_Idempotent(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	viewer := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)

	require.NoError(t, svc.AddFavorite(ctx, recipe.ID, viewer.ID))
	require.NoError(t, svc.AddFavorite(ctx, recipe.ID, viewer.ID))

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).
		Where("recipe_id = ? AND user_id = ?", recipe.ID, viewer.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	view, err := svc.GetRecipe(ctx, recipe.ID, &viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.FavoritesCount)
	assert.True(t, view.IsFavorite)
}

func TestRemoveFavorite(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	viewer := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)

	// Removing an absent favorite is a no-op.
	require.NoError(t, svc.RemoveFavorite(ctx, recipe.ID, viewer.ID))

	require.NoError(t, svc.AddFavorite(ctx, recipe.ID, viewer.ID))
	require.NoError(t, svc.RemoveFavorite(ctx, recipe.ID, viewer.ID))

	favored, err := svc.IsFavorite(ctx, recipe.ID, viewer.ID)
	require.NoError(t, err)
	assert.False(t, favored)
}

func TestFavorite_MissingRecipe(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	viewer := testhelpers.CreateTestUser(t, db)
	missing := uuid.New()

	assert.ErrorIs(t, svc.AddFavorite(ctx, missing, viewer.ID), ErrRecipeNotFound)
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, missing, viewer.ID), ErrRecipeNotFound)
	_, err := svc.IsFavorite(ctx, missing, viewer.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestListFavorites(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	viewer := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)

	first := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) { r.Title = "First" })
	second := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) { r.Title = "Second" })
	testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) { r.Title = "Unfavorited" })

	require.NoError(t, svc.AddFavorite(ctx, first.ID, viewer.ID))
	require.NoError(t, svc.AddFavorite(ctx, second.ID, viewer.ID))
	require.NoError(t, svc.AddFavorite(ctx, second.ID, other.ID))

	views, err := svc.ListFavorites(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	ids := []uuid.UUID{views[0].ID, views[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
	for _, v := range views {
		assert.True(t, v.IsFavorite)
	}

	// The flag is per viewer, not global.
	listed, err := svc.ListRecipes(ctx, types.RecipeFilters{}, &other.ID)
	require.NoError(t, err)
	for _, v := range listed {
		if v.ID == second.ID {
			assert.True(t, v.IsFavorite)
			assert.Equal(t, int64(2), v.FavoritesCount)
		}
		if v.ID == first.ID {
			assert.False(t, v.IsFavorite)
			assert.Equal(t, int64(1), v.FavoritesCount)
		}
	}
}
