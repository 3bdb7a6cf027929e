package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/testhelpers"
	"github.com/savorly/recipebook-backend/internal/types"
)

type fakeImageStore struct {
	stored  int
	deleted []string
	url     string
}

func (f *fakeImageStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	f.stored++
	if f.url != "" {
		return f.url, nil
	}
	return fmt.Sprintf("https://images.test/%d", f.stored), nil
}

func (f *fakeImageStore) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestCatalog(t *testing.T) (*CatalogService, *gorm.DB, *fakeImageStore) {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	images := &fakeImageStore{}
	return NewCatalogService(db, images), db, images
}

func validDraft(categories ...uuid.UUID) *types.RecipeDraft {
	return &types.RecipeDraft{
		Title:       "Spaghetti Carbonara",
		Description: "A classic Roman pasta dish.",
		Ingredients: []models.Ingredient{
			{Name: "spaghetti", Amount: 400, Unit: "g"},
			{Name: "guanciale", Amount: 150, Unit: "g"},
		},
		Steps: []models.Step{
			{Step: 1, Instruction: "Boil the pasta."},
			{Step: 2, Instruction: "Fry the guanciale."},
		},
		Cuisine:     "Italian",
		Difficulty:  "medium",
		DietTags:    []string{},
		CookingTime: 25,
		Categories:  categories,
	}
}

func TestCreateRecipe_RoundTrip(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	dinner := testhelpers.CreateTestCategory(t, db, "Dinner")
	italian := testhelpers.CreateTestCategory(t, db, "Italian")

	draft := validDraft(italian.ID, dinner.ID)
	draft.DietTags = []string{"gluten-free"}

	created, err := svc.CreateRecipe(ctx, draft, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner.ID, created.UserID)
	assert.Equal(t, "Spaghetti Carbonara", created.Title)
	assert.Equal(t, "medium", created.Difficulty)
	assert.Equal(t, []string{"gluten-free"}, created.DietTags)
	assert.Equal(t, 25, created.CookingTime)
	assert.Len(t, created.Ingredients, 2)
	assert.Len(t, created.Steps, 2)

	// Categories come back sorted by name regardless of submission order.
	require.Len(t, created.Categories, 2)
	assert.Equal(t, "Dinner", created.Categories[0].Name)
	assert.Equal(t, "Italian", created.Categories[1].Name)

	// A fresh recipe has no derived metrics.
	assert.Equal(t, float64(0), created.AverageRating)
	assert.Equal(t, int64(0), created.RatingsCount)
	assert.Equal(t, int64(0), created.FavoritesCount)
	assert.Equal(t, int64(0), created.CommentsCount)
	assert.False(t, created.IsFavorite)
	assert.Nil(t, created.Image)

	got, err := svc.GetRecipe(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Ingredients, got.Ingredients)
	assert.Equal(t, created.Steps, got.Steps)
}

func TestCreateRecipe_Validation(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)

	t.Run("empty draft", func(t *testing.T) {
		_, err := svc.CreateRecipe(ctx, &types.RecipeDraft{}, owner.ID)
		require.Error(t, err)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		for _, field := range []string{"title", "description", "ingredients", "steps", "cuisine", "cooking_time", "categories"} {
			assert.Contains(t, ve.Fields, field)
		}
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		category := testhelpers.CreateTestCategory(t, db, "Breakfast")
		draft := validDraft(category.ID)
		draft.Difficulty = "impossible"
		_, err := svc.CreateRecipe(ctx, draft, owner.ID)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "difficulty")
	})

	t.Run("nested ingredient and step errors", func(t *testing.T) {
		category := testhelpers.CreateTestCategory(t, db, "Lunch")
		draft := validDraft(category.ID)
		draft.Ingredients = []models.Ingredient{{Name: "", Amount: -1, Unit: ""}}
		draft.Steps = []models.Step{{Step: 0, Instruction: ""}}
		_, err := svc.CreateRecipe(ctx, draft, owner.ID)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "ingredients.0.name")
		assert.Contains(t, ve.Fields, "ingredients.0.amount")
		assert.Contains(t, ve.Fields, "ingredients.0.unit")
		assert.Contains(t, ve.Fields, "steps.0.step")
		assert.Contains(t, ve.Fields, "steps.0.instruction")
	})

	t.Run("unknown category", func(t *testing.T) {
		draft := validDraft(uuid.New())
		_, err := svc.CreateRecipe(ctx, draft, owner.ID)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "categories")

		// Nothing was stored.
		var count int64
		require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestListRecipes_Filters(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	dinner := testhelpers.CreateTestCategory(t, db, "Dinner")

	quickVegan := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Quick Vegan Stir Fry"
		r.Description = "Weeknight vegetables over rice."
		r.Cuisine = "Thai"
		r.Difficulty = "easy"
		r.DietTags = models.JSONBStringArray{"vegan", "gluten-free"}
		r.CookingTime = 20
	})
	slowVegan := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Slow Vegan Chili"
		r.Description = "Beans simmered for hours."
		r.Cuisine = "Mexican"
		r.Difficulty = "medium"
		r.DietTags = models.JSONBStringArray{"vegan"}
		r.CookingTime = 120
	})
	quickMeat := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Quick Chicken Skewers"
		r.Description = "Grilled in minutes."
		r.Cuisine = "Thai"
		r.Difficulty = "easy"
		r.CookingTime = 15
	})
	require.NoError(t, db.Model(&quickVegan).Association("Categories").Append(&dinner))

	list := func(filters types.RecipeFilters) []uuid.UUID {
		views, err := svc.ListRecipes(ctx, filters, nil)
		require.NoError(t, err)
		ids := make([]uuid.UUID, len(views))
		for i, v := range views {
			ids[i] = v.ID
		}
		return ids
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, list(types.RecipeFilters{}), 3)
	})

	t.Run("search matches title and description", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID, quickMeat.ID}, list(types.RecipeFilters{Search: "quick"}))
		assert.ElementsMatch(t, []uuid.UUID{slowVegan.ID}, list(types.RecipeFilters{Search: "simmered"}))
	})

	t.Run("difficulty", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID, quickMeat.ID}, list(types.RecipeFilters{Difficulty: "easy"}))
	})

	t.Run("cuisine", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{slowVegan.ID}, list(types.RecipeFilters{Cuisine: "Mexican"}))
	})

	t.Run("max cooking time", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID, quickMeat.ID}, list(types.RecipeFilters{MaxCookingTime: 30}))
	})

	t.Run("diet tags require every requested tag", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID, slowVegan.ID}, list(types.RecipeFilters{DietTags: []string{"vegan"}}))
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID}, list(types.RecipeFilters{DietTags: []string{"vegan", "gluten-free"}}))
	})

	t.Run("category", func(t *testing.T) {
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID}, list(types.RecipeFilters{CategoryID: &dinner.ID}))
	})

	t.Run("filters compose by intersection", func(t *testing.T) {
		got := list(types.RecipeFilters{
			MaxCookingTime: 30,
			DietTags:       []string{"vegan"},
		})
		assert.ElementsMatch(t, []uuid.UUID{quickVegan.ID}, got)

		// Adding a filter never widens the result.
		narrower := list(types.RecipeFilters{
			MaxCookingTime: 30,
			DietTags:       []string{"vegan"},
			Cuisine:        "Mexican",
		})
		assert.Empty(t, narrower)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		got, err := svc.ListRecipes(ctx, types.RecipeFilters{Search: "no such recipe"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestListRecipes_Ordering(t *testing.T) {
	svc, db, _ := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	oldest := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Oldest"
		r.CreatedAt = base
	})
	middle := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Middle"
		r.CreatedAt = base.Add(time.Minute)
	})
	newest := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
		r.Title = "Newest"
		r.CreatedAt = base.Add(2 * time.Minute)
	})

	views, err := svc.ListRecipes(ctx, types.RecipeFilters{}, nil)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, newest.ID, views[0].ID)
	assert.Equal(t, middle.ID, views[1].ID)
	assert.Equal(t, oldest.ID, views[2].ID)
}

func TestUpdateRecipe(t *testing.T) {
	svc, db, images := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)

	t.Run("partial patch leaves other fields intact", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		title := "Renamed Recipe"
		cookingTime := 45
		updated, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{
			Title:       &title,
			CookingTime: &cookingTime,
		}, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Recipe", updated.Title)
		assert.Equal(t, 45, updated.CookingTime)
		assert.Equal(t, recipe.Description, updated.Description)
		assert.Equal(t, recipe.Cuisine, updated.Cuisine)
		assert.Len(t, updated.Ingredients, len(recipe.Ingredients))
	})

	t.Run("missing recipe", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdateRecipe(ctx, uuid.New(), &types.RecipePatch{Title: &title}, owner.ID)
		assert.ErrorIs(t, err, ErrRecipeNotFound)
	})

	t.Run("non-owner is refused before validation", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		empty := ""
		_, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{Title: &empty}, other.ID)
		// The invalid patch must not leak through the ownership refusal.
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner with invalid patch gets validation error", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		empty := ""
		_, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{Title: &empty}, owner.ID)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "title")
	})

	t.Run("categories are replaced as a set", func(t *testing.T) {
		dinner := testhelpers.CreateTestCategory(t, db, "Replace Dinner")
		dessert := testhelpers.CreateTestCategory(t, db, "Replace Dessert")
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		require.NoError(t, db.Model(&recipe).Association("Categories").Append(&dinner))

		categories := []uuid.UUID{dessert.ID}
		updated, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{Categories: &categories}, owner.ID)
		require.NoError(t, err)
		require.Len(t, updated.Categories, 1)
		assert.Equal(t, dessert.ID, updated.Categories[0].ID)
	})

	t.Run("unknown category rejects the whole patch", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		title := "Should Not Stick"
		categories := []uuid.UUID{uuid.New()}
		_, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{
			Title:      &title,
			Categories: &categories,
		}, owner.ID)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "categories")

		got, err := svc.GetRecipe(ctx, recipe.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, recipe.Title, got.Title)
	})

	t.Run("replaced image is released", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
			r.Image = "https://images.test/old"
		})
		next := "https://images.test/new"
		updated, err := svc.UpdateRecipe(ctx, recipe.ID, &types.RecipePatch{Image: &next}, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, updated.Image)
		assert.Equal(t, next, *updated.Image)
		assert.Contains(t, images.deleted, "https://images.test/old")
	})
}

func TestDeleteRecipe(t *testing.T) {
	svc, db, images := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)

	t.Run("missing recipe", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteRecipe(ctx, uuid.New(), owner.ID), ErrRecipeNotFound)
	})

	t.Run("non-owner is refused", func(t *testing.T) {
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)
		assert.ErrorIs(t, svc.DeleteRecipe(ctx, recipe.ID, other.ID), ErrForbidden)

		_, err := svc.GetRecipe(ctx, recipe.ID, nil)
		assert.NoError(t, err)
	})

	t.Run("delete cascades links and releases the image", func(t *testing.T) {
		category := testhelpers.CreateTestCategory(t, db, "Delete Cascade")
		recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, func(r *models.Recipe) {
			r.Image = "https://images.test/gone"
		})
		require.NoError(t, db.Model(&recipe).Association("Categories").Append(&category))
		require.NoError(t, svc.AddFavorite(ctx, recipe.ID, other.ID))
		_, err := svc.RateRecipe(ctx, recipe.ID, other.ID, 4)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID, owner.ID))

		_, err = svc.GetRecipe(ctx, recipe.ID, nil)
		assert.ErrorIs(t, err, ErrRecipeNotFound)

		var favorites, ratings, links int64
		require.NoError(t, db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&favorites).Error)
		require.NoError(t, db.Model(&models.RecipeRating{}).Where("recipe_id = ?", recipe.ID).Count(&ratings).Error)
		require.NoError(t, db.Table("category_recipe").Where("recipe_id = ?", recipe.ID).Count(&links).Error)
		assert.Zero(t, favorites)
		assert.Zero(t, ratings)
		assert.Zero(t, links)
		assert.Contains(t, images.deleted, "https://images.test/gone")

		// The category itself survives.
		var categories int64
		require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&categories).Error)
		assert.Equal(t, int64(1), categories)
	})
}

func TestAttachImage(t *testing.T) {
	svc, db, images := newTestCatalog(t)
	ctx := context.Background()
	owner := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, nil)

	_, err := svc.AttachImage(ctx, recipe.ID, other.ID, []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrForbidden)

	images.url = "https://images.test/first"
	view, err := svc.AttachImage(ctx, recipe.ID, owner.ID, []byte("img"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, view.Image)
	assert.Equal(t, "https://images.test/first", *view.Image)

	images.url = "https://images.test/second"
	view, err = svc.AttachImage(ctx, recipe.ID, owner.ID, []byte("img"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, view.Image)
	assert.Equal(t, "https://images.test/second", *view.Image)
	assert.Contains(t, images.deleted, "https://images.test/first")
}
