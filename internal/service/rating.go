package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

// RateRecipe upserts the viewer's rating of a recipe. A repeated call
// with the same value is idempotent; a changed value overwrites the prior
// one without creating a second row. The range check happens before any
// store write.
func (s *CatalogService) RateRecipe(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID, value int) (*types.RatingView, error) {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	if value < 1 || value > 5 {
		ve := NewValidationError()
		ve.Add("rating", "The rating must be between 1 and 5.")
		return nil, ve
	}

	rating := models.RecipeRating{
		RecipeID: recipeID,
		UserID:   viewer,
		Rating:   value,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"rating":     value,
				"updated_at": time.Now(),
			}),
		}).
		Create(&rating).Error
	if err != nil {
		return nil, err
	}

	// Reload so the view carries the surviving row's id and timestamps,
	// not the ones from a conflicting insert attempt.
	var stored models.RecipeRating
	err = s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, viewer).
		First(&stored).Error
	if err != nil {
		return nil, err
	}

	view := newRatingView(stored)
	return &view, nil
}

// GetMyRating returns the viewer's rating of a recipe, or nil when they
// have not rated it.
func (s *CatalogService) GetMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (*int, error) {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	var stored models.RecipeRating
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, viewer).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stored.Rating, nil
}

// DeleteMyRating removes the viewer's rating of a recipe. Deleting a
// rating that does not exist is a no-op success.
func (s *CatalogService) DeleteMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, viewer).
		Delete(&models.RecipeRating{}).Error
}

func newRatingView(r models.RecipeRating) types.RatingView {
	return types.RatingView{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
