package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/savorly/recipebook-backend/internal/api"
	"github.com/savorly/recipebook-backend/internal/middleware"
)

// SetupRouter configures the application routes. redisClient may be nil,
// in which case mutating routes run without rate limiting.
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	categoryHandler *api.CategoryHandler,
	favoriteHandler *api.FavoriteHandler,
	ratingHandler *api.RatingHandler,
	validator middleware.TokenValidator,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://frontend:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	var creationLimit, modificationLimit gin.HandlerFunc
	if redisClient != nil {
		creationLimit = middleware.NewRecipeCreationRateLimiter(redisClient).RateLimitMiddleware()
		modificationLimit = middleware.NewRecipeModificationRateLimiter(redisClient).RateLimitMiddleware()
	} else {
		noop := func(c *gin.Context) { c.Next() }
		creationLimit = noop
		modificationLimit = noop
	}

	v1 := router.Group("/api/v1")

	// Auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public reads carry an optional viewer for personalization.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(validator))
	{
		public.GET("/recipes", recipeHandler.ListRecipes)
		public.GET("/recipes/:id", recipeHandler.GetRecipe)
		public.GET("/categories", categoryHandler.ListCategories)
		public.GET("/categories/:id", categoryHandler.GetCategory)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		recipes := protected.Group("/recipes")
		{
			recipes.POST("", creationLimit, recipeHandler.CreateRecipe)
			recipes.PUT("/:id", modificationLimit, recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
			recipes.POST("/:id/image", modificationLimit, recipeHandler.UploadImage)

			recipes.POST("/:id/favorite", favoriteHandler.AddFavorite)
			recipes.DELETE("/:id/favorite", favoriteHandler.RemoveFavorite)
			recipes.GET("/:id/favorite", favoriteHandler.CheckFavorite)

			recipes.POST("/:id/rating", ratingHandler.RateRecipe)
			recipes.GET("/:id/rating", ratingHandler.GetMyRating)
			recipes.DELETE("/:id/rating", ratingHandler.DeleteMyRating)
		}

		protected.GET("/favorites", favoriteHandler.ListFavorites)

		categories := protected.Group("/categories")
		{
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	return router
}
