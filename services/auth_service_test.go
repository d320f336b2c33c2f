package services

import (
	"context"
	"testing"

	"learnhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// --- Mocks for Dependencies ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Tests ---

func TestSignup(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenService("test-secret")

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, mongo.ErrNoDocuments)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil)

		svc := NewAuthService(mockRepo, tokens)
		result, appErr := svc.Signup(ctx, "New@Example.com", "strongpassword", "Newbie")

		assert.Nil(t, appErr)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "new@example.com", result.User.Email)
		assert.Equal(t, "Newbie", result.User.Name)

		claims, err := tokens.Validate(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", claims["email"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmailFailsWithConflict", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		existing := &models.User{ID: uuid.New(), Email: "taken@example.com"}
		mockRepo.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil)

		svc := NewAuthService(mockRepo, tokens)
		_, appErr := svc.Signup(ctx, "taken@example.com", "strongpassword", "Dup")

		assert.NotNil(t, appErr)
		assert.Equal(t, 409, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("ShortPasswordFailsValidation", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewAuthService(mockRepo, tokens)

		_, appErr := svc.Signup(ctx, "new@example.com", "abc", "Short")

		assert.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
		mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})

	t.Run("PasswordIsStoredHashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", ctx, "hash@example.com").Return(nil, mongo.ErrNoDocuments)

		var created *models.User
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.User)
		}).Return(nil)

		svc := NewAuthService(mockRepo, tokens)
		_, appErr := svc.Signup(ctx, "hash@example.com", "strongpassword", "Hasher")

		assert.Nil(t, appErr)
		assert.NotEqual(t, "strongpassword", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("strongpassword")))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenService("test-secret")

	password := "strongpassword123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	testUser := &models.User{
		ID:       uuid.New(),
		Email:    "test@example.com",
		Name:     "Tester",
		Password: string(hashedPassword),
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", ctx, "test@example.com").Return(testUser, nil)

		svc := NewAuthService(mockRepo, tokens)
		result, appErr := svc.Login(ctx, "test@example.com", password)

		assert.Nil(t, appErr)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, testUser.ID, result.User.ID)

		claims, err := tokens.Validate(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, testUser.ID.String(), claims["sub"])
	})

	t.Run("WrongPasswordFailsWithUnauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", ctx, "test@example.com").Return(testUser, nil)

		svc := NewAuthService(mockRepo, tokens)
		_, appErr := svc.Login(ctx, "test@example.com", "wrongpassword")

		assert.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
	})

	t.Run("UnknownEmailFailsWithUnauthorized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)

		svc := NewAuthService(mockRepo, tokens)
		_, appErr := svc.Login(ctx, "nobody@example.com", password)

		assert.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
	})
}
