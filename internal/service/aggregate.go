package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/types"
)

type ratingAggregate struct {
	RecipeID uuid.UUID
	Count    int64
	Avg      float64
}

type countRow struct {
	RecipeID uuid.UUID
	Count    int64
}

// decorate attaches derived metrics to a batch of recipes: favorite,
// rating and comment cardinalities, the mean rating (0 when unrated) and
// the viewer's favorite flag. It reads only; one grouped query per metric
// regardless of batch size.
func (s *CatalogService) decorate(ctx context.Context, recipes []models.Recipe, viewer *uuid.UUID) ([]types.RecipeView, error) {
	views := make([]types.RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	ids := make([]uuid.UUID, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}

	var ratingRows []ratingAggregate
	err := s.db.WithContext(ctx).
		Model(&models.RecipeRating{}).
		Select("recipe_id, COUNT(*) AS count, AVG(rating) AS avg").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&ratingRows).Error
	if err != nil {
		return nil, err
	}
	ratings := make(map[uuid.UUID]ratingAggregate, len(ratingRows))
	for _, row := range ratingRows {
		ratings[row.RecipeID] = row
	}

	favorites, err := s.countByRecipe(ctx, &models.Favorite{}, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.countByRecipe(ctx, &models.Comment{}, ids)
	if err != nil {
		return nil, err
	}

	viewerFavorites := make(map[uuid.UUID]bool)
	if viewer != nil {
		var favored []uuid.UUID
		err := s.db.WithContext(ctx).
			Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id IN ?", *viewer, ids).
			Pluck("recipe_id", &favored).Error
		if err != nil {
			return nil, err
		}
		for _, id := range favored {
			viewerFavorites[id] = true
		}
	}

	for _, r := range recipes {
		view := newRecipeView(r)
		if agg, ok := ratings[r.ID]; ok {
			view.AverageRating = agg.Avg
			view.RatingsCount = agg.Count
		}
		view.FavoritesCount = favorites[r.ID]
		view.CommentsCount = comments[r.ID]
		view.IsFavorite = viewerFavorites[r.ID]
		views = append(views, view)
	}
	return views, nil
}

func (s *CatalogService) countByRecipe(ctx context.Context, model interface{}, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []countRow
	err := s.db.WithContext(ctx).
		Model(model).
		Select("recipe_id, COUNT(*) AS count").
		Where("recipe_id IN ?", ids).
		Group("recipe_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.RecipeID] = row.Count
	}
	return counts, nil
}

func newRecipeView(r models.Recipe) types.RecipeView {
	categories := make([]types.CategoryView, 0, len(r.Categories))
	for _, c := range r.Categories {
		categories = append(categories, types.CategoryView{
			ID:   c.ID,
			Name: c.Name,
			Slug: c.Slug,
		})
	}
	// Preload order is not guaranteed.
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	var image *string
	if r.Image != "" {
		image = &r.Image
	}

	return types.RecipeView{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Ingredients: []models.Ingredient(r.Ingredients),
		Steps:       []models.Step(r.Steps),
		Cuisine:     r.Cuisine,
		Difficulty:  r.Difficulty,
		DietTags:    []string(r.DietTags),
		CookingTime: r.CookingTime,
		Image:       image,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Categories:  categories,
	}
}
