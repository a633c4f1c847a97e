package services

import (
	"errors"
	"fmt"
	"time"

	"life-os-api/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBadCredentials = errors.New("incorrect username or password")

type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), TokenTTL: tokenTTL}
}

// Register creates a user with a bcrypt-hashed password. Username and email
// must both be unused.
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrInvalidOperation
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Level:        1,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("username", username).Msg("user registered")
	return &user, nil
}

// Login verifies credentials and issues a signed access token.
func (s *AuthService) Login(username, password string) (string, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return s.IssueToken(user.Username)
}

// IssueToken signs a short-lived HS256 token with the username as subject.
func (s *AuthService) IssueToken(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
