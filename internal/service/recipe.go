package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

// CatalogService answers recipe queries and guards recipe mutations. It
// holds no state beyond its store and image collaborator.
type CatalogService struct {
	db     *gorm.DB
	images ImageStore
}

// NewCatalogService creates a new CatalogService instance. images may be
// nil when no image storage is configured.
func NewCatalogService(db *gorm.DB, images ImageStore) *CatalogService {
	return &CatalogService{
		db:     db,
		images: images,
	}
}

// search matches a case-insensitive substring of title or description.
func (s *CatalogService) search(term string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if term == "" {
			return q
		}
		like := "%" + strings.ToLower(term) + "%"
		return q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
}

func (s *CatalogService) byCategory(categoryID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if categoryID == nil {
			return q
		}
		return q.Where(
			"EXISTS (SELECT 1 FROM category_recipe cr WHERE cr.recipe_id = recipes.id AND cr.category_id = ?)",
			*categoryID,
		)
	}
}

func (s *CatalogService) byDifficulty(difficulty string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if difficulty == "" {
			return q
		}
		return q.Where("difficulty = ?", difficulty)
	}
}

func (s *CatalogService) byCuisine(cuisine string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if cuisine == "" {
			return q
		}
		return q.Where("cuisine = ?", cuisine)
	}
}

func (s *CatalogService) byMaxCookingTime(maxTime int) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if maxTime <= 0 {
			return q
		}
		return q.Where("cooking_time <= ?", maxTime)
	}
}

// byDietTags keeps recipes whose tag set contains every requested tag.
func (s *CatalogService) byDietTags(tags []string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if len(tags) == 0 {
			return q
		}
		if s.db.Dialector.Name() == "postgres" {
			encoded, err := json.Marshal(tags)
			if err != nil {
				return q
			}
			return q.Where("diet_tags @> ?::jsonb", string(encoded))
		}
		// Fallback for databases without JSON containment: match each
		// tag as a quoted element of the serialized array.
		for _, tag := range tags {
			q = q.Where("diet_tags LIKE ?", `%"`+tag+`"%`)
		}
		return q
	}
}

// ListRecipes returns the catalog narrowed by filters, decorated from the
// viewer's perspective. Absent filters never exclude results.
func (s *CatalogService) ListRecipes(ctx context.Context, filters types.RecipeFilters, viewer *uuid.UUID) ([]types.RecipeView, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Preload("Categories").
		Scopes(
			s.search(filters.Search),
			s.byCategory(filters.CategoryID),
			s.byDifficulty(filters.Difficulty),
			s.byCuisine(filters.Cuisine),
			s.byMaxCookingTime(filters.MaxCookingTime),
			s.byDietTags(filters.DietTags),
		).
		Order("recipes.created_at DESC, recipes.id").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, recipes, viewer)
}

// GetRecipe retrieves one decorated recipe by ID.
func (s *CatalogService) GetRecipe(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*types.RecipeView, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Categories").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	views, err := s.decorate(ctx, []models.Recipe{recipe}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateRecipe validates the draft and stores it with owner as the
// recipe's user id, regardless of anything the draft carries.
func (s *CatalogService) CreateRecipe(ctx context.Context, draft *types.RecipeDraft, owner uuid.UUID) (*types.RecipeView, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       draft.Title,
		Description: draft.Description,
		Ingredients: models.JSONBIngredients(draft.Ingredients),
		Steps:       models.JSONBSteps(draft.Steps),
		Cuisine:     draft.Cuisine,
		Difficulty:  draft.Difficulty,
		DietTags:    models.JSONBStringArray(draft.DietTags),
		CookingTime: draft.CookingTime,
		Image:       draft.Image,
		UserID:      owner,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := s.resolveCategories(tx, draft.Categories)
		if err != nil {
			return err
		}
		if err := tx.Omit("Categories").Create(&recipe).Error; err != nil {
			return err
		}
		return tx.Model(&recipe).Association("Categories").Append(&categories)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID, &owner)
}

// UpdateRecipe applies a partial patch. Existence is checked before
// ownership, ownership before validation, so a non-owner never learns
// whether their patch would have been valid.
func (s *CatalogService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *types.RecipePatch, requester uuid.UUID) (*types.RecipeView, error) {
	var replaced string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.lockRecipe(tx, id)
		if err != nil {
			return err
		}
		if recipe.UserID != requester {
			return ErrForbidden
		}
		if err := validatePatch(patch); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if patch.Title != nil {
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Ingredients != nil {
			updates["ingredients"] = models.JSONBIngredients(*patch.Ingredients)
		}
		if patch.Steps != nil {
			updates["steps"] = models.JSONBSteps(*patch.Steps)
		}
		if patch.Cuisine != nil {
			updates["cuisine"] = *patch.Cuisine
		}
		if patch.Difficulty != nil {
			updates["difficulty"] = *patch.Difficulty
		}
		if patch.DietTags != nil {
			updates["diet_tags"] = models.JSONBStringArray(*patch.DietTags)
		}
		if patch.CookingTime != nil {
			updates["cooking_time"] = *patch.CookingTime
		}
		if patch.Image != nil {
			if recipe.Image != "" && recipe.Image != *patch.Image {
				replaced = recipe.Image
			}
			updates["image"] = *patch.Image
		}
		if len(updates) > 0 {
			if err := tx.Model(recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Categories != nil {
			categories, err := s.resolveCategories(tx, *patch.Categories)
			if err != nil {
				return err
			}
			if err := tx.Model(recipe).Association("Categories").Replace(&categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The old image is released only after the transaction commits.
	if replaced != "" {
		s.releaseImage(ctx, replaced)
	}

	return s.GetRecipe(ctx, id, &requester)
}

// DeleteRecipe removes a recipe and cascades its favorite, rating and
// comment links. Same existence/ownership precedence as UpdateRecipe.
func (s *CatalogService) DeleteRecipe(ctx context.Context, id uuid.UUID, requester uuid.UUID) error {
	var stored string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := s.lockRecipe(tx, id)
		if err != nil {
			return err
		}
		if recipe.UserID != requester {
			return ErrForbidden
		}
		stored = recipe.Image

		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeRating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		return err
	}

	if stored != "" {
		s.releaseImage(ctx, stored)
	}
	return nil
}

// AttachImage stores an uploaded image for a recipe and releases the one
// it replaces. Only the owner may attach an image.
func (s *CatalogService) AttachImage(ctx context.Context, id uuid.UUID, requester uuid.UUID, data []byte, contentType string) (*types.RecipeView, error) {
	if s.images == nil {
		return nil, errors.New("image storage is not configured")
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID != requester {
		return nil, ErrForbidden
	}

	url, err := s.images.Store(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	if err := s.db.WithContext(ctx).Model(&recipe).Update("image", url).Error; err != nil {
		return nil, err
	}
	if previous != "" && previous != url {
		s.releaseImage(ctx, previous)
	}

	return s.GetRecipe(ctx, id, &requester)
}

// lockRecipe loads a recipe for mutation. On PostgreSQL the row is locked
// so a concurrent delete cannot interleave with the ownership check.
func (s *CatalogService) lockRecipe(tx *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var recipe models.Recipe
	if err := q.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// resolveCategories loads the referenced categories and rejects the set
// if any id is unknown.
func (s *CatalogService) resolveCategories(tx *gorm.DB, ids []uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if len(ids) == 0 {
		return categories, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		found[c.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			ve := NewValidationError()
			ve.Add("categories", "One or more selected categories do not exist.")
			return nil, ve
		}
	}
	return categories, nil
}

// ensureRecipe checks existence without loading associations.
func (s *CatalogService) ensureRecipe(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// releaseImage deletes a stored image. Failures are logged, not
// propagated: the recipe mutation has already committed.
func (s *CatalogService) releaseImage(ctx context.Context, url string) {
	if s.images == nil || url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		log.Printf("failed to release image %s: %v", url, err)
	}
}
