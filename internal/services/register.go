package services

import (
	"errors"
	"time"

	"taskify/backend/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already exists")

type RegistrationRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error)
}

type RegisterServiceImpl struct {
	bcryptCost int
}

func NewRegisterService(bcryptCost int) *RegisterServiceImpl {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegisterServiceImpl{bcryptCost: bcryptCost}
}

func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
