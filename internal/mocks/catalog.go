package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/savorly/recipebook-backend/internal/types"
)

// MockCatalogService is a mock implementation of the catalog service
type MockCatalogService struct {
	mock.Mock
}

// ListRecipes mocks the ListRecipes method
func (m *MockCatalogService) ListRecipes(ctx context.Context, filters types.RecipeFilters, viewer *uuid.UUID) ([]types.RecipeView, error) {
	args := m.Called(ctx, filters, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeView), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockCatalogService) GetRecipe(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*types.RecipeView, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// CreateRecipe mocks the CreateRecipe method
func (m *MockCatalogService) CreateRecipe(ctx context.Context, draft *types.RecipeDraft, owner uuid.UUID) (*types.RecipeView, error) {
	args := m.Called(ctx, draft, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// UpdateRecipe mocks the UpdateRecipe method
func (m *MockCatalogService) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *types.RecipePatch, requester uuid.UUID) (*types.RecipeView, error) {
	args := m.Called(ctx, id, patch, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockCatalogService) DeleteRecipe(ctx context.Context, id uuid.UUID, requester uuid.UUID) error {
	args := m.Called(ctx, id, requester)
	return args.Error(0)
}

// AttachImage mocks the AttachImage method
func (m *MockCatalogService) AttachImage(ctx context.Context, id uuid.UUID, requester uuid.UUID, data []byte, contentType string) (*types.RecipeView, error) {
	args := m.Called(ctx, id, requester, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeView), args.Error(1)
}

// ListFavorites mocks the ListFavorites method
func (m *MockCatalogService) ListFavorites(ctx context.Context, viewer uuid.UUID) ([]types.RecipeView, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecipeView), args.Error(1)
}

// AddFavorite mocks the AddFavorite method
func (m *MockCatalogService) AddFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	args := m.Called(ctx, recipeID, viewer)
	return args.Error(0)
}

// RemoveFavorite mocks the RemoveFavorite method
func (m *MockCatalogService) RemoveFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	args := m.Called(ctx, recipeID, viewer)
	return args.Error(0)
}

// IsFavorite mocks the IsFavorite method
func (m *MockCatalogService) IsFavorite(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (bool, error) {
	args := m.Called(ctx, recipeID, viewer)
	return args.Bool(0), args.Error(1)
}

// RateRecipe mocks the RateRecipe method
func (m *MockCatalogService) RateRecipe(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID, value int) (*types.RatingView, error) {
	args := m.Called(ctx, recipeID, viewer, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RatingView), args.Error(1)
}

// GetMyRating mocks the GetMyRating method
func (m *MockCatalogService) GetMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) (*int, error) {
	args := m.Called(ctx, recipeID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int), args.Error(1)
}

// DeleteMyRating mocks the DeleteMyRating method
func (m *MockCatalogService) DeleteMyRating(ctx context.Context, recipeID uuid.UUID, viewer uuid.UUID) error {
	args := m.Called(ctx, recipeID, viewer)
	return args.Error(0)
}
