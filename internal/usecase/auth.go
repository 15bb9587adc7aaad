package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantora/leadhub/internal/entity"
)

// AuthUseCase handles registration and login. Passwords are stored as bcrypt
// hashes and never leave this layer in plaintext.
type AuthUseCase struct {
	Users  entity.UserRepositoryInterface
	Tokens TokenIssuer
}

func NewAuthUseCase(users entity.UserRepositoryInterface, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{Users: users, Tokens: tokens}
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, NewValidationError(validationMessage(errs))
	}

	username := strings.TrimSpace(input.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewStoreError("failed to hash password", err)
	}

	user := entity.NewUser(username, string(hash))

	if err := uc.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrUsernameTaken) {
			return nil, NewConflictError(entity.ErrUsernameTaken.Error())
		}
		return nil, NewStoreError("failed to register user", err)
	}

	token, err := uc.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, NewStoreError("failed to issue token", err)
	}

	return &AuthOutput{Token: token, Username: user.Username}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	if errs := ValidateLoginInput(input); len(errs) > 0 {
		return nil, NewValidationError(validationMessage(errs))
	}

	username := strings.TrimSpace(input.Username)

	user, err := uc.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			// Same message as a bad password so usernames can't be enumerated.
			return nil, NewAuthError(entity.ErrInvalidCredentials.Error())
		}
		return nil, NewStoreError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, NewAuthError(entity.ErrInvalidCredentials.Error())
	}

	token, err := uc.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, NewStoreError("failed to issue token", err)
	}

	return &AuthOutput{Token: token, Username: user.Username}, nil
}
