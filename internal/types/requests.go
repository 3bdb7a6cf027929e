package types

import (
	"github.com/google/uuid"
	"github.com/savorly/recipebook-backend/internal/models"
)

// RecipeDraft is a full recipe submission. Everything except difficulty,
// diet_tags and image is required; the owner is never part of the draft.
type RecipeDraft struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Steps       []models.Step       `json:"steps"`
	Cuisine     string              `json:"cuisine"`
	Difficulty  string              `json:"difficulty"`
	DietTags    []string            `json:"diet_tags"`
	CookingTime int                 `json:"cooking_time"`
	Image       string              `json:"image"`
	Categories  []uuid.UUID         `json:"categories"`
}

// RecipePatch is a partial update. Nil fields leave the stored value
// untouched; a non-nil Categories replaces the full association set.
type RecipePatch struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Ingredients *[]models.Ingredient `json:"ingredients"`
	Steps       *[]models.Step       `json:"steps"`
	Cuisine     *string              `json:"cuisine"`
	Difficulty  *string              `json:"difficulty"`
	DietTags    *[]string            `json:"diet_tags"`
	CookingTime *int                 `json:"cooking_time"`
	Image       *string              `json:"image"`
	Categories  *[]uuid.UUID         `json:"categories"`
}

// RecipeFilters narrows a recipe listing. Zero values are no-ops, so an
// empty RecipeFilters returns the whole catalog.
type RecipeFilters struct {
	Search         string
	CategoryID     *uuid.UUID
	Difficulty     string
	Cuisine        string
	MaxCookingTime int
	DietTags       []string
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CategoryRequest is the payload for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// RatingRequest is the payload for rating a recipe.
type RatingRequest struct {
	Rating int `json:"rating"`
}
