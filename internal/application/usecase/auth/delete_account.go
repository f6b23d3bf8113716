package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

// DeleteAccountConfirmation must be typed verbatim to delete an account.
const DeleteAccountConfirmation = "DELETE"

type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase erases a user and everything recorded for them: log
// entries, queued reminders, sessions and cached predictions.
type DeleteAccountUseCase struct {
	users     adapter.UserRepository
	logs      adapter.LogEntryRepository
	queue     adapter.EmailQueueRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
	cache     adapter.PredictionCache
}

func NewDeleteAccountUseCase(
	users adapter.UserRepository,
	logs adapter.LogEntryRepository,
	queue adapter.EmailQueueRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
	cache adapter.PredictionCache,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{users: users, logs: logs, queue: queue, passwords: passwords, tokens: tokens, cache: cache}
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != "" && input.Confirmation != DeleteAccountConfirmation {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidConfirmation, "confirmation must be exactly 'DELETE'", domainerror.ErrInvalidConfirmation)
	}

	user, err := uc.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}
	if err := uc.passwords.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "invalid password", domainerror.ErrInvalidCredentials)
	}

	// Dependent rows are removed before the user row.
	purge := []struct {
		what string
		run  func(context.Context, uuid.UUID) error
	}{
		{"log entries", uc.logs.DeleteByUserID},
		{"queued emails", uc.queue.DeleteByUserID},
		{"sessions", uc.tokens.InvalidateAllUserTokens},
		{"user", uc.users.Delete},
	}
	for _, step := range purge {
		if err := step.run(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("delete %s: %w", step.what, err)
		}
	}

	if err := uc.cache.InvalidateUser(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "prediction cache not cleared after account deletion", "user_id", user.ID, "error", err)
	}
	return &DeleteAccountOutput{Success: true}, nil
}
