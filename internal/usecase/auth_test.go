package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/vantora/leadhub/internal/entity"
)

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// fakeTokenIssuer avoids signing real tokens in use case tests.
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID, username string) (string, error) {
	return "token-for-" + username, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		// Stored hash must verify against the plaintext but never equal it.
		return u.PasswordHash != "password1" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")) == nil
	})).Return(nil)

	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	output, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "password1"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
	assert.Equal(t, "token-for-alice", output.Token)
	repo.AssertExpectations(t)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	_, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "12345"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	uc := NewAuthUseCase(new(MockUserRepository), fakeTokenIssuer{})

	_, err := uc.Register(context.Background(), RegisterInput{})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(entity.ErrUsernameTaken)

	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	_, err := uc.Register(context.Background(), RegisterInput{Username: "alice", Password: "password1"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeConflict, domainErr.Code)
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	user := &entity.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	output, err := uc.Login(context.Background(), LoginInput{Username: "alice", Password: "password1"})

	assert.NoError(t, err)
	assert.Equal(t, "alice", output.Username)
	assert.NotEmpty(t, output.Token)
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	user := &entity.User{ID: "user-1", Username: "alice", PasswordHash: string(hash)}

	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	_, err := uc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeAuth, domainErr.Code)
	assert.Equal(t, "invalid username or password", domainErr.Message)
}

func TestLoginUnknownUserSameMessageAsWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, entity.ErrUserNotFound)

	uc := NewAuthUseCase(repo, fakeTokenIssuer{})

	_, err := uc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeAuth, domainErr.Code)
	assert.Equal(t, "invalid username or password", domainErr.Message)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	uc := NewAuthUseCase(new(MockUserRepository), fakeTokenIssuer{})

	_, err := uc.Login(context.Background(), LoginInput{Username: "alice"})

	assert.Error(t, err)
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, CodeValidation, domainErr.Code)
}
