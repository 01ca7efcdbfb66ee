package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wawe-app/wawe/backend/internal/models"
	"github.com/wawe-app/wawe/backend/internal/types"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates a user and their profile, and returns a session token.
func (s *AuthService) Register(ctx context.Context, email, password, username string) (string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return "", ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}

	profile := models.UserProfile{
		UserID:   user.ID,
		Username: username,
		Role:     models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return "", err
	}

	return s.generateToken(user.ID, profile.Role)
}

// Login checks credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	role := models.RoleUser
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		role = profile.Role
	}

	return s.generateToken(user.ID, role)
}

// GetProfile returns the caller's profile, creating it on first access.
// The default username is derived from the account email.
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	username := user.Email
	if at := strings.Index(username, "@"); at > 0 {
		username = username[:at]
	}
	profile = models.UserProfile{
		UserID:   userID,
		Username: username,
		Role:     models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the caller's username and avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, avatarURL string) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if username != "" {
		updates["username"] = username
	}
	if avatarURL != "" {
		updates["avatar_url"] = avatarURL
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *AuthService) generateToken(userID uuid.UUID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a session token. It needs no database
// access, so the image proxy can validate tokens with the secret alone.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return &types.TokenClaims{
		UserID: userID,
		Role:   role,
	}, nil
}
