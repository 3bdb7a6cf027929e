package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/savorly/recipebook-backend/internal/models"
)

// CategoryView is the category shape embedded in recipe responses.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// RecipeView is a recipe decorated with its derived metrics and, when a
// viewer is known, that viewer's favorite flag. It is assembled per
// response and never persisted.
type RecipeView struct {
	ID             uuid.UUID           `json:"id"`
	UserID         uuid.UUID           `json:"user_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Ingredients    []models.Ingredient `json:"ingredients"`
	Steps          []models.Step       `json:"steps"`
	Cuisine        string              `json:"cuisine"`
	Difficulty     string              `json:"difficulty,omitempty"`
	DietTags       []string            `json:"diet_tags"`
	CookingTime    int                 `json:"cooking_time"`
	Image          *string             `json:"image"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	IsFavorite     bool                `json:"is_favorite"`
	AverageRating  float64             `json:"average_rating"`
	RatingsCount   int64               `json:"ratings_count"`
	FavoritesCount int64               `json:"favorites_count"`
	CommentsCount  int64               `json:"comments_count"`
	Categories     []CategoryView      `json:"categories"`
}

// RatingView is the response shape for a stored rating.
type RatingView struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
