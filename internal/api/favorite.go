package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/savorly/recipebook-backend/internal/service"
)

type FavoriteHandler struct {
	catalog service.ICatalogService
}

func NewFavoriteHandler(catalog service.ICatalogService) *FavoriteHandler {
	return &FavoriteHandler{catalog: catalog}
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	favorites, err := h.catalog.ListFavorites(c.Request.Context(), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.catalog.AddFavorite(c.Request.Context(), id, viewer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe added to favorites",
	})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.catalog.RemoveFavorite(c.Request.Context(), id, viewer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed from favorites",
	})
}

func (h *FavoriteHandler) CheckFavorite(c *gin.Context) {
	id, ok := recipeParam(c)
	if !ok {
		return
	}
	viewer, ok := requireUser(c)
	if !ok {
		return
	}
	isFavorite, err := h.catalog.IsFavorite(c.Request.Context(), id, viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"is_favorite": isFavorite,
	})
}
