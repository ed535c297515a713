package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"taskify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
	authService     services.AuthService
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService, authService services.AuthService) *RegisterHandler {
	return &RegisterHandler{db: db, registerService: registerService, authService: authService}
}

// Registration creates the account and logs it straight in, returning the
// same token payload as login.
func (h *RegisterHandler) Registration(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.registerService.RegisterUser(h.db, req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Registration failed",
				"details": "An account with this email already exists",
			})
			return
		}
		log.Printf("registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Registration failed",
			"details": "An unexpected error occurred. Please try again later.",
		})
		return
	}

	accessToken, refreshToken, err := h.authService.GenerateToken(h.db, user.ID)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "token_generation_failed",
		})
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}
