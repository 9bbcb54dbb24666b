package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/emilythestrangee/readit/backend/internal/auth"
	"github.com/emilythestrangee/readit/backend/internal/models"
)

type AccountService struct {
	db     *gorm.DB
	tokens *auth.Issuer
}

func NewAccountService(db *gorm.DB, tokens *auth.Issuer) *AccountService {
	return &AccountService{db: db, tokens: tokens}
}

// Register creates a user and returns it with a fresh token.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Email == "" || len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: username, email and a 6 character password are required", ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		ID:       models.NewID(models.TagUser),
		Username: username,
		Email:    strings.ToLower(req.Email),
		Password: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrInvalidArgument)
		}
		return nil, err
	}

	return s.respond(&user)
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(&user)
}

func (s *AccountService) User(ctx context.Context, ref string) (*models.User, error) {
	return findUser(s.db.WithContext(ctx), ref)
}

func (s *AccountService) respond(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *user}, nil
}
