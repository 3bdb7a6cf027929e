package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/testhelpers"
)

func TestRecipePersistence(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db)

	recipe := models.Recipe{
		Title:       "Shakshuka",
		Description: "Eggs poached in tomato sauce.",
		Ingredients: models.JSONBIngredients{
			{Name: "eggs", Amount: 4, Unit: "pcs"},
			{Name: "tomatoes", Amount: 800, Unit: "g"},
		},
		Steps: models.JSONBSteps{
			{Step: 1, Instruction: "Simmer the sauce."},
			{Step: 2, Instruction: "Crack in the eggs."},
		},
		Cuisine:     "Middle Eastern",
		DietTags:    models.JSONBStringArray{"vegetarian", "gluten-free"},
		CookingTime: 35,
		UserID:      user.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)

	// The create hook assigns the id.
	assert.NotEqual(t, uuid.Nil, recipe.ID)

	var loaded models.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, loaded.Ingredients)
	assert.Equal(t, recipe.Steps, loaded.Steps)
	assert.Equal(t, recipe.DietTags, loaded.DietTags)
	assert.Equal(t, user.ID, loaded.UserID)
}

func TestRecipe_KeepsExplicitID(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db)
	id := uuid.New()

	recipe := models.Recipe{
		ID:          id,
		Title:       "Fixed ID",
		Description: "ID chosen by the caller.",
		Cuisine:     "None",
		CookingTime: 1,
		UserID:      user.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)
	assert.Equal(t, id, recipe.ID)
}

func TestJSONBStringArray_ScanNil(t *testing.T) {
	var tags models.JSONBStringArray
	require.NoError(t, tags.Scan(nil))
	assert.Empty(t, tags)

	require.NoError(t, tags.Scan([]byte(`["vegan"]`)))
	assert.Equal(t, models.JSONBStringArray{"vegan"}, tags)

	require.NoError(t, tags.Scan(`["keto","paleo"]`))
	assert.Equal(t, models.JSONBStringArray{"keto", "paleo"}, tags)
}

func TestFavoriteUniqueIndex(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, nil)

	first := models.Favorite{RecipeID: recipe.ID, UserID: user.ID}
	require.NoError(t, db.Create(&first).Error)

	second := models.Favorite{RecipeID: recipe.ID, UserID: user.ID}
	assert.Error(t, db.Create(&second).Error)
}
