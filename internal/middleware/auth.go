package middleware

import (
	"net/http"

	"taskify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenHeader carries the access token on every authenticated request.
const TokenHeader = "x-auth-token"

// AuthMiddleware validates the access token and puts user_id into the
// request context. The secret is injected rather than read from the
// environment so tests and main control it explicitly.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader(TokenHeader)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "x-auth-token header is required",
			})
			return
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Token validation failed",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_claims",
				"message": "Token claims are invalid",
			})
			return
		}

		if iss, _ := claims["iss"].(string); iss != services.TokenIssuer {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_issuer",
				"message": "Token issuer is invalid",
			})
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_claims",
				"message": "Token claims are invalid",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
