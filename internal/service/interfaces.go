package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

// ICatalogService defines the recipe catalog operations. Every operation
// takes its viewer explicitly; there is no ambient identity.
type ICatalogService interface {
	ListRecipes(ctx context.Context, filters types.RecipeFilters, viewer *uuid.UUID) ([]types.RecipeView, error)
	GetRecipe(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*types.RecipeView, error)
	CreateRecipe(ctx context.Context, draft *types.RecipeDraft, owner uuid.UUID) (*types.RecipeView, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, patch *types.RecipePatch, requester uuid.UUID) (*types.RecipeView, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID, requester uuid.UUID) error
	AttachImage(ctx context.Context, id uuid.UUID, requester uuid.UUID, data []byte, contentType string) (*types.RecipeView, error)

	ListFavorites(ctx context.Context, viewer uuid.UUID) ([]types.RecipeView, error)
	AddFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error
	RemoveFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error
	IsFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (bool, error)

	RateRecipe(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID, value int) (*types.RatingView, error)
	GetMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (*int, error)
	DeleteMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error
}

// ICategoryService defines the category directory operations.
type ICategoryService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// ImageStore persists recipe images outside the entity store.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
