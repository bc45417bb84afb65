package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/backend/internal/service"
)

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// ProfileHandler serves the authenticated self-profile resource.
type ProfileHandler struct {
	authService *service.AuthService
}

func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// RegisterRoutes expects a group that already runs the auth middleware.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	me := router.Group("/users/me")
	{
		me.GET("", h.Me)
		me.PATCH("", h.UpdateMe)
		// POST is not a supported verb on this resource
		me.POST("", h.MethodNotAllowed)
	}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(user))
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(updated))
}

func (h *ProfileHandler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
