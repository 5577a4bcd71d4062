package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"job_portal_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(id uint) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(_ context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user)
	}
	return nil // Default: success
}

// FindByEmail is the mock implementation of the FindByEmail method.
func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, ErrUserNotFound
}

// FindByID is the mock implementation of the FindByID method.
func (m *mockUserRepository) FindByID(_ context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(userID uint, role string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockJWTGenerator) GenerateToken(userID uint, role string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, role)
	}
	return "mock-jwt-token", nil
}

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Asha Rao",
		Email:    "Asha@Example.com ",
		Password: "password123",
		Role:     "employer",
		Company:  "Acme",
	}
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		var saved *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error {
				saved = user
				user.ID = 1
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})
		user, err := uc.Register(context.Background(), validInput())

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "asha@example.com", saved.Email)
		assert.Equal(t, "employer", saved.Role)
		assert.Equal(t, "Acme", saved.Company)
		assert.NotEqual(t, "password123", saved.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("password123")))
	})

	tests := []struct {
		name   string
		mutate func(in *RegisterInput)
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "  " }},
		{"invalid email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
		{"unknown role", func(in *RegisterInput) { in.Role = "admin" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				CreateFunc: func(user *entity.User) error {
					t.Fatal("Create must not be called for invalid input")
					return nil
				},
			}
			in := validInput()
			tt.mutate(&in)

			_, err := NewAuthUsecase(mockRepo, &mockJWTGenerator{}).Register(context.Background(), in)

			assert.ErrorIs(t, err, ErrInvalidRegistration)
		})
	}

	t.Run("duplicate email is surfaced", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error { return ErrEmailAlreadyExists },
		}

		_, err := NewAuthUsecase(mockRepo, &mockJWTGenerator{}).Register(context.Background(), validInput())

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mockRepo := &mockUserRepository{
			CreateFunc: func(user *entity.User) error { return expectedErr },
		}

		_, err := NewAuthUsecase(mockRepo, &mockJWTGenerator{}).Register(context.Background(), validInput())

		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	testUser := &entity.User{
		ID:       1,
		Name:     "Asha Rao",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     "employer",
		Company:  "Acme",
	}

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, role string) (string, error) {
				assert.Equal(t, testUser.ID, userID)
				assert.Equal(t, "employer", role)
				return "mock-jwt-token", nil
			},
		}

		uc := NewAuthUsecase(mockRepo, mockJWT)
		token, profile, err := uc.Login(context.Background(), " TEST@example.com", password)

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, entity.Profile{ID: 1, Name: "Asha Rao", Email: "test@example.com", Role: "employer", Company: "Acme"}, *profile)
	})

	// 未登録メールとパスワード誤りで同じエラーになること
	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(mockRepo, &mockJWTGenerator{})

		_, _, unknownErr := uc.Login(context.Background(), "wrong@example.com", password)
		_, _, wrongPwErr := uc.Login(context.Background(), testUser.Email, "wrong-password")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongPwErr.Error())
	})

	t.Run("JWT generation failure", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(email string) (*entity.User, error) { return testUser, nil },
		}
		mockJWT := &mockJWTGenerator{
			GenerateTokenFunc: func(userID uint, role string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		_, _, err := NewAuthUsecase(mockRepo, mockJWT).Login(context.Background(), testUser.Email, password)

		require.Error(t, err)
		assert.Equal(t, "failed to generate token: failed to sign token", err.Error())
	})
}
