package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/application/adapter/fake"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

type authFixture struct {
	users    *fake.UserRepository
	logs     *fake.LogEntryRepository
	queue    *fake.EmailQueueRepository
	tokens   *fake.TokenService
	cache    *fake.PredictionCache
	clock    *fake.Clock
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
	remove   *DeleteAccountUseCase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  fake.NewUserRepository(),
		logs:   fake.NewLogEntryRepository(),
		queue:  fake.NewEmailQueueRepository(),
		tokens: fake.NewTokenService(),
		cache:  fake.NewPredictionCache(),
		clock:  fake.NewClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)),
	}
	passwords := fake.PasswordService{}
	f.register = NewRegisterUserUseCase(f.users, passwords, f.tokens, f.clock)
	f.login = NewLoginUserUseCase(f.users, passwords, f.tokens)
	f.refresh = NewRefreshTokenUseCase(f.tokens)
	f.logout = NewLogoutUserUseCase(f.tokens)
	f.remove = NewDeleteAccountUseCase(f.users, f.logs, f.queue, passwords, f.tokens, f.cache)
	return f
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr.Code
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()

	out, err := f.register.Execute(ctx, RegisterUserInput{
		Email:         "  Ana@Example.com ",
		Name:          "Ana",
		Password:      "supersecret",
		TermsAccepted: true,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, f.clock.Now(), out.User.TermsAcceptedAt)
	assert.False(t, out.User.HasBaseline())
	assert.Equal(t, 1, f.users.Len())
}

func TestRegisterUser_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterUserInput
		code  domainerror.AuthErrorCode
	}{
		{
			name:  "missing email",
			input: RegisterUserInput{Password: "supersecret", TermsAccepted: true},
			code:  domainerror.ErrCodeMissingFields,
		},
		{
			name:  "terms not accepted",
			input: RegisterUserInput{Email: "ana@example.com", Password: "supersecret"},
			code:  domainerror.ErrCodeTermsNotAccepted,
		},
		{
			name:  "invalid email",
			input: RegisterUserInput{Email: "ana@", Password: "supersecret", TermsAccepted: true},
			code:  domainerror.ErrCodeInvalidEmail,
		},
		{
			name:  "weak password",
			input: RegisterUserInput{Email: "ana@example.com", Password: "short", TermsAccepted: true},
			code:  domainerror.ErrCodeWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			_, err := f.register.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, authCode(t, err))
			assert.Zero(t, f.users.Len())
		})
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	input := RegisterUserInput{Email: "ana@example.com", Password: "supersecret", TermsAccepted: true}

	_, err := f.register.Execute(ctx, input)
	require.NoError(t, err)

	input.Email = "ANA@example.com"
	_, err = f.register.Execute(ctx, input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrEmailAlreadyExists))
	assert.Equal(t, domainerror.ErrCodeEmailExists, authCode(t, err))
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Password: "supersecret", TermsAccepted: true})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		out, err := f.login.Execute(ctx, LoginUserInput{Email: "Ana@example.com", Password: "supersecret", RememberMe: true})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", out.User.Email)

		claims, err := f.tokens.ValidateRefreshToken(ctx, out.RefreshToken)
		require.NoError(t, err)
		assert.True(t, claims.RememberMe)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.login.Execute(ctx, LoginUserInput{Email: "ana@example.com", Password: "wrongpassword"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("unknown email gets the same error", func(t *testing.T) {
		_, err := f.login.Execute(ctx, LoginUserInput{Email: "nobody@example.com", Password: "supersecret"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("repository failure is not masked", func(t *testing.T) {
		f.users.Err = errors.New("connection reset")
		defer func() { f.users.Err = nil }()

		_, err := f.login.Execute(ctx, LoginUserInput{Email: "ana@example.com", Password: "supersecret"})
		require.Error(t, err)
		var authErr *domainerror.AuthError
		assert.False(t, errors.As(err, &authErr))
	})
}

func TestRefreshToken_Rotates(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Password: "supersecret", TermsAccepted: true})
	require.NoError(t, err)

	out, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, out.RefreshToken)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: reg.RefreshToken})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{})
	assert.Equal(t, domainerror.ErrCodeMissingToken, authCode(t, err))
}

func TestLogoutUser(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Password: "supersecret", TermsAccepted: true})
	require.NoError(t, err)

	out, err := f.logout.Execute(ctx, LogoutUserInput{RefreshToken: reg.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Message)

	valid, err := f.tokens.IsRefreshTokenValid(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = f.logout.Execute(ctx, LogoutUserInput{RefreshToken: "unknown"})
	assert.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	reg, err := f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Password: "supersecret", TermsAccepted: true})
	require.NoError(t, err)
	userID := reg.User.ID

	require.NoError(t, f.logs.Upsert(ctx, entity.NewLogEntry(userID, f.clock.Today())))
	require.NoError(t, f.queue.Create(ctx, entity.NewEmailJob(userID, entity.TemplatePeriodReminder, "ana@example.com", "", "s", nil)))
	require.NoError(t, f.cache.SetDashboard(ctx, userID, f.clock.Today(), map[string]int{"x": 1}))

	t.Run("wrong confirmation", func(t *testing.T) {
		_, err := f.remove.Execute(ctx, DeleteAccountInput{UserID: userID, Password: "supersecret", Confirmation: "delete"})
		assert.Equal(t, domainerror.ErrCodeInvalidConfirmation, authCode(t, err))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.remove.Execute(ctx, DeleteAccountInput{UserID: userID, Password: "nope"})
		assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))
	})

	t.Run("deletes user data", func(t *testing.T) {
		out, err := f.remove.Execute(ctx, DeleteAccountInput{UserID: userID, Password: "supersecret", Confirmation: DeleteAccountConfirmation})
		require.NoError(t, err)
		assert.True(t, out.Success)

		assert.Zero(t, f.users.Len())
		logs, err := f.logs.ListByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, logs)
		assert.Empty(t, f.queue.Jobs())
		assert.Zero(t, f.cache.Len())

		valid, err := f.tokens.IsRefreshTokenValid(ctx, reg.RefreshToken)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.remove.Execute(ctx, DeleteAccountInput{UserID: userID, Password: "supersecret"})
		assert.Equal(t, domainerror.ErrCodeUserNotFound, authCode(t, err))
	})
}
