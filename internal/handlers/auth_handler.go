package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/up2ustore/bundles-backend/internal/models"
	"github.com/up2ustore/bundles-backend/internal/services"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	token, err := h.authService.Login(c, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Register handles POST /api/admin/register (requires an authenticated admin)
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.authService.Register(c, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "An admin user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating admin user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}
