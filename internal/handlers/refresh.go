package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token is required"})
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshToken(h.db, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_refresh_token",
			"message": "Refresh token is invalid or expired",
		})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}
