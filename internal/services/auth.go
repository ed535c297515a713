package services

import (
	"errors"
	"time"

	"taskify/backend/internal/config"
	"taskify/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer is embedded in every access token and checked by the
// auth middleware.
const TokenIssuer = "taskify-backend"

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(db *gorm.DB, userID uuid.UUID) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, error)
	PurgeExpiredTokens(db *gorm.DB) (int64, error)
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GenerateToken issues an access token and stores a fresh refresh token.
func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, userID uuid.UUID) (string, string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iss":     TokenIssuer,
		"exp":     time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
	}
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshTokenUUID, err := uuid.NewV4()
	if err != nil {
		return "", "", err
	}

	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       userID,
		RefreshToken: refreshTokenUUID,
		ExpiresAt:    time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenUUID.String(), nil
}

// RefreshToken rotates a refresh token: the old one is deleted and a new
// access/refresh pair is issued.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, error) {
	var token models.Token
	err := db.Where("refresh_token = ? AND expires_at > ?", refreshToken, time.Now()).First(&token).Error
	if err != nil {
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, token.UserID)
	if err != nil {
		return "", "", err
	}

	db.Delete(&token)

	return accessToken, newRefreshToken, nil
}

// PurgeExpiredTokens removes stale refresh tokens. Run from the background
// worker, not the request path.
func (s *AuthServiceImpl) PurgeExpiredTokens(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at <= ?", time.Now()).Delete(&models.Token{})
	return result.RowsAffected, result.Error
}
