package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gigflow/api/internal/auth"
	"github.com/gigflow/api/internal/model"
	"github.com/gigflow/api/internal/store"
)

// AuthService handles registration, login and token issuing.
type AuthService struct {
	users      *store.UserStore
	jwtSecret  string
	expiration time.Duration
}

func NewAuthService(users *store.UserStore, jwtSecret string, expirationHours int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		expiration: time.Duration(expirationHours) * time.Hour,
	}
}

func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.respondWithToken(user)
}

func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken(user)
}

// GetMe returns the profile of the authenticated user.
func (s *AuthService) GetMe(ctx context.Context, userID string) (*model.UserSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *AuthService) respondWithToken(user *model.User) (*model.AuthResponse, error) {
	token, err := auth.GenerateToken(s.jwtSecret, s.expiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: user.Summary()}, nil
}
