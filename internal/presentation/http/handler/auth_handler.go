package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/scaleworks/ddt-api/internal/application/service"
	"github.com/scaleworks/ddt-api/internal/presentation/http/dto/request"
	"github.com/scaleworks/ddt-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"name":  result.User.Name,
			"email": result.User.Email,
			"role":  result.User.Role,
		},
		"access_token": result.Token,
		"token_type":   "Bearer",
	})
}

// Logout handles operator logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWT is stateless, the client discards the token
	response.OK(c, "Logged out successfully", nil)
}
