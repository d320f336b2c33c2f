package services

import (
	"context"
	"strings"

	apperrors "learnhub-backend/common/errors"
	"learnhub-backend/common/logger"
	"learnhub-backend/models"
	"learnhub-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult is returned on successful signup or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// AuthService defines signup and login business logic.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*AuthResult, *apperrors.Error)
	Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.Error)
}

type authServiceImpl struct {
	users  repository.UserRepo
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepo, tokens *TokenService) AuthService {
	return &authServiceImpl{users: users, tokens: tokens}
}

func (s *authServiceImpl) Signup(ctx context.Context, email, password, name string) (*AuthResult, *apperrors.Error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if len(password) < 6 {
		return nil, apperrors.Validation("Password must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != mongo.ErrNoDocuments {
		logger.Error(ctx, "Signup lookup failed", err)
		return nil, apperrors.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error(ctx, "Signup hash failed", err)
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique email index catches signups that raced past the lookup.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrEmailTaken
		}
		logger.Error(ctx, "Signup insert failed", err)
		return nil, apperrors.Internal(err)
	}

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.Error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error(ctx, "Login lookup failed", err)
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

func (s *authServiceImpl) issueToken(ctx context.Context, user *models.User) (*AuthResult, *apperrors.Error) {
	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Name)
	if err != nil {
		logger.Error(ctx, "Token generation failed", err)
		return nil, apperrors.Internal(err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
