package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
	RememberMe    bool
}

// RegisterUserOutput is a signed-in session for the new account. The user
// has no cycle baseline until onboarding.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

type RegisterUserUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
	clock     adapter.Clock
}

func NewRegisterUserUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
	clock adapter.Clock,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users, passwords: passwords, tokens: tokens, clock: clock}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if err := validateRegistration(email, name, input); err != nil {
		return nil, err
	}
	if err := uc.passwords.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, "password must be at least 8 characters", domainerror.ErrWeakPassword)
	}

	exists, err := uc.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "email already exists", domainerror.ErrEmailAlreadyExists)
	}

	hash, err := uc.passwords.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := entity.NewUser(email, name, hash, uc.clock.Now().UTC())
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := issueSession(ctx, uc.tokens, user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, err
	}
	return &RegisterUserOutput{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken, User: user}, nil
}
