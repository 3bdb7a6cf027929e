package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

// AddFavorite records a favorite for (viewer, recipe). Favoriting an
// already-favorited recipe is a no-op success: the conflict on the
// composite key is swallowed at the store.
func (s *CatalogService) AddFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	favorite := models.Favorite{
		RecipeID: recipeID,
		UserID:   viewer,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoNothing: true,
		}).
		Create(&favorite).Error
}

// RemoveFavorite deletes the (viewer, recipe) favorite if present.
// Removing an absent favorite is a no-op success.
func (s *CatalogService) RemoveFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, viewer).
		Delete(&models.Favorite{}).Error
}

// IsFavorite reports whether the viewer has favorited the recipe.
func (s *CatalogService) IsFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (bool, error) {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return false, err
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, viewer).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFavorites returns the viewer's favorited recipes, decorated.
func (s *CatalogService) ListFavorites(ctx context.Context, viewer uuid.UUID) ([]types.RecipeView, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Categories").
		Where("EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = recipes.id AND f.user_id = ?)", viewer).
		Order("recipes.created_at DESC, recipes.id").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, recipes, &viewer)
}
