package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/backend/internal/service"
)

type CreateIngredientRequest struct {
	Name string `json:"name" binding:"required"`
}

// IngredientHandler serves the per-user ingredient store.
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// RegisterRoutes expects a group that already runs the auth middleware.
func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.POST("", h.CreateIngredient)
	}
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ingredients, err := h.ingredientService.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("list ingredients failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch ingredients"})
		return
	}

	items := make([]IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, newIngredientResponse(&ingredients[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.ingredientService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrIngredientExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("create ingredient failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, newIngredientResponse(ingredient))
}
