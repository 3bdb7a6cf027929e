package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/savorly/recipebook-backend/internal/service"
	"github.com/savorly/recipebook-backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

func echoUser(c *gin.Context) {
	id, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"user_id": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": id.(uuid.UUID).String()})
}

func performGet(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	newRouter := func(v TokenValidator) *gin.Engine {
		router := gin.New()
		router.GET("/", AuthMiddleware(v), echoUser)
		return router
	}

	t.Run("missing header", func(t *testing.T) {
		w := performGet(newRouter(&stubValidator{}), "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := performGet(newRouter(&stubValidator{}), "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := performGet(newRouter(&stubValidator{err: service.ErrInvalidToken}), "Bearer bad")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		v := &stubValidator{claims: &types.TokenClaims{UserID: userID, Name: "Alice"}}
		w := performGet(newRouter(v), "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	newRouter := func(v TokenValidator) *gin.Engine {
		router := gin.New()
		router.GET("/", OptionalAuthMiddleware(v), echoUser)
		return router
	}

	t.Run("anonymous requests pass", func(t *testing.T) {
		w := performGet(newRouter(&stubValidator{}), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		w := performGet(newRouter(&stubValidator{err: service.ErrInvalidToken}), "Bearer bad")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "null")
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		v := &stubValidator{claims: &types.TokenClaims{UserID: userID, Name: "Alice"}}
		w := performGet(newRouter(v), "Bearer good")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), userID.String())
	})
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A client pointed at a closed port cannot count requests; traffic
	// must still flow.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	limiter := NewRecipeCreationRateLimiter(client)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Next()
	})
	router.POST("/", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
