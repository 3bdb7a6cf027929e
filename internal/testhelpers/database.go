package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/savorly/recipebook-backend/internal/database"
	"github.com/savorly/recipebook-backend/internal/models"
)

// SetupTestDB opens an isolated in-memory database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return db
}

// CreateTestUser inserts a user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateTestCategory inserts a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()

	category := models.Category{
		Name: name,
		Slug: slugForTest(name),
	}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func slugForTest(name string) string {
	slug := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			slug = append(slug, r)
		default:
			slug = append(slug, '-')
		}
	}
	return string(slug)
}

// CreateTestRecipe inserts a recipe owned by userID. mutate may adjust
// the record before it is stored.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, mutate func(*models.Recipe)) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:       "Test Recipe",
		Description: "A recipe for testing",
		Ingredients: models.JSONBIngredients{
			{Name: "flour", Amount: 500, Unit: "g"},
			{Name: "water", Amount: 300, Unit: "ml"},
		},
		Steps: models.JSONBSteps{
			{Step: 1, Instruction: "Mix everything."},
			{Step: 2, Instruction: "Bake it."},
		},
		Cuisine:     "Test Cuisine",
		DietTags:    models.JSONBStringArray{},
		CookingTime: 30,
		UserID:      userID,
	}
	if mutate != nil {
		mutate(&recipe)
	}
	require.NoError(t, db.Create(&recipe).Error)
	return recipe
}
