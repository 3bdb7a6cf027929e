package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/savorly/recipebook-backend/config"
	"github.com/savorly/recipebook-backend/internal/database"
	"github.com/savorly/recipebook-backend/internal/models"
	"github.com/savorly/recipebook-backend/internal/service"
	"github.com/savorly/recipebook-backend/internal/types"
)

var categoryNames = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Appetizer",
	"Soup",
	"Salad",
	"Beverage",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.JWTSecret)
	categoryService := service.NewCategoryService(db)
	catalogService := service.NewCatalogService(db, nil)

	user, err := authService.Register(ctx, "Seed Chef", "chef@recipebook.dev", "seed-password-1")
	if err != nil {
		log.Fatalf("Failed to create seed user: %v", err)
	}

	var dinner, dessert *models.Category
	for _, name := range categoryNames {
		category, err := categoryService.CreateCategory(ctx, name)
		if err != nil {
			log.Fatalf("Failed to create category %s: %v", name, err)
		}
		switch name {
		case "Dinner":
			dinner = category
		case "Dessert":
			dessert = category
		}
	}

	drafts := []types.RecipeDraft{
		{
			Title:       "Spaghetti Carbonara",
			Description: "Classic Italian pasta with eggs, cheese and pancetta.",
			Ingredients: []models.Ingredient{
				{Name: "spaghetti", Amount: 400, Unit: "g"},
				{Name: "pancetta", Amount: 150, Unit: "g"},
				{Name: "eggs", Amount: 4, Unit: "pcs"},
				{Name: "pecorino", Amount: 100, Unit: "g"},
			},
			Steps: []models.Step{
				{Step: 1, Instruction: "Boil the spaghetti in salted water."},
				{Step: 2, Instruction: "Fry the pancetta until crisp."},
				{Step: 3, Instruction: "Toss pasta with egg and cheese off the heat."},
			},
			Cuisine:     "Italian",
			Difficulty:  "medium",
			DietTags:    []string{},
			CookingTime: 30,
			Categories:  []uuid.UUID{dinner.ID},
		},
		{
			Title:       "Vegan Chocolate Mousse",
			Description: "Silky mousse made from aquafaba and dark chocolate.",
			Ingredients: []models.Ingredient{
				{Name: "dark chocolate", Amount: 200, Unit: "g"},
				{Name: "aquafaba", Amount: 150, Unit: "ml"},
				{Name: "sugar", Amount: 30, Unit: "g"},
			},
			Steps: []models.Step{
				{Step: 1, Instruction: "Melt the chocolate and let it cool slightly."},
				{Step: 2, Instruction: "Whip aquafaba with sugar to stiff peaks."},
				{Step: 3, Instruction: "Fold chocolate into the foam and chill."},
			},
			Cuisine:     "French",
			Difficulty:  "easy",
			DietTags:    []string{"vegan", "gluten-free"},
			CookingTime: 20,
			Categories:  []uuid.UUID{dessert.ID},
		},
	}

	for _, draft := range drafts {
		if _, err := catalogService.CreateRecipe(ctx, &draft, user.ID); err != nil {
			log.Fatalf("Failed to seed recipe %s: %v", draft.Title, err)
		}
		log.Printf("Seeded recipe: %s", draft.Title)
	}

	log.Println("Seeding complete.")
}
