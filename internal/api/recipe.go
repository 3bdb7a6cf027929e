package api

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/savorly/recipebook-backend/internal/service"
	"github.com/savorly/recipebook-backend/internal/types"
)

// maxImageSize caps recipe image uploads at 2MB.
const maxImageSize = 2 << 20

type RecipeHandler struct {
	catalog service.ICatalogService
}

func NewRecipeHandler(catalog service.ICatalogService) *RecipeHandler {
	return &RecipeHandler{catalog: catalog}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := types.RecipeFilters{
		Search:     c.Query("search"),
		Difficulty: c.Query("difficulty"),
		Cuisine:    c.Query("cuisine"),
	}

	if v := c.Query("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		filters.CategoryID = &id
	}
	if v := c.Query("max_cooking_time"); v != "" {
		maxTime, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_cooking_time"})
			return
		}
		filters.MaxCookingTime = maxTime
	}
	if v := c.Query("diet_tags"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.DietTags = append(filters.DietTags, tag)
			}
		}
	}

	recipes, err := h.catalog.ListRecipes(c.Request.Context(), filters, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	recipe, err := h.catalog.GetRecipe(c.Request.Context(), id, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	owner, ok := requireUser(c)
	if !ok {
		return
	}
	var draft types.RecipeDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.catalog.CreateRecipe(c.Request.Context(), &draft, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	requester, ok := requireUser(c)
	if !ok {
		return
	}
	var patch types.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.catalog.UpdateRecipe(c.Request.Context(), id, &patch, requester)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe updated successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	requester, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteRecipe(c.Request.Context(), id, requester); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
	})
}

// UploadImage replaces the recipe's stored image from a multipart form
// field named "image".
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	requester, ok := requireUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The image size must not exceed 2MB."})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The file must be an image."})
		return
	}

	recipe, err := h.catalog.AttachImage(c.Request.Context(), id, requester, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe image updated successfully",
		"recipe":  recipe,
	})
}
