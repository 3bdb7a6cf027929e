package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savorly/recipebook-backend/internal/service"
	"github.com/savorly/recipebook-backend/internal/types"
)

type RatingHandler struct {
	catalog service.ICatalogService
}

func NewRatingHandler(catalog service.ICatalogService) *RatingHandler {
	return &RatingHandler{catalog: catalog}
}

func (h *RatingHandler) RateRecipe(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	var req types.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.catalog.RateRecipe(c.Request.Context(), id, viewer, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe rated successfully",
		"rating":  rating,
	})
}

func (h *RatingHandler) GetMyRating(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	rating, err := h.catalog.GetMyRating(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rating": rating,
	})
}

func (h *RatingHandler) DeleteMyRating(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteMyRating(c.Request.Context(), id, viewer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe rating deleted successfully",
	})
}
