package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
	"github.com/caresync/backend/internal/integration/entrypoint/middleware"
)

// respondError writes the HTTP response for a use case error. Typed domain
// errors keep their code; anything else is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	var (
		authErr     *domainerror.AuthError
		cycleErr    *domainerror.CycleError
		logErr      *domainerror.LogEntryError
		settingsErr *domainerror.SettingsError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, authStatus(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &cycleErr):
		writeError(ctx, cycleStatus(cycleErr.Code), cycleErr.Message, string(cycleErr.Code))
	case errors.As(err, &logErr):
		writeError(ctx, logEntryStatus(logErr.Code), logErr.Message, string(logErr.Code))
	case errors.As(err, &settingsErr):
		writeError(ctx, http.StatusBadRequest, settingsErr.Message, string(settingsErr.Code))
	case errors.Is(err, domainerror.ErrUserNotFound):
		writeError(ctx, http.StatusNotFound, "User not found", string(domainerror.ErrCodeUserNotFound))
	case errors.Is(err, domainerror.ErrLogEntryNotFound):
		writeError(ctx, http.StatusNotFound, "Log entry not found", string(domainerror.ErrCodeLogEntryNotFound))
	case errors.Is(err, domainerror.ErrOnboardingIncomplete):
		writeError(ctx, http.StatusConflict, "Onboarding has not been completed", string(domainerror.ErrCodeOnboardingIncomplete))
	default:
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

// badRequest reports an unparseable request body or parameter.
func badRequest(ctx *gin.Context, code, details string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    code,
		Details: details,
	})
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func cycleStatus(code domainerror.CycleErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCycleParameters,
		domainerror.ErrCodeInvalidQueryDate,
		domainerror.ErrCodeFutureLastPeriod:
		return http.StatusBadRequest
	case domainerror.ErrCodeOnboardingIncomplete:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func logEntryStatus(code domainerror.LogEntryErrorCode) int {
	if code == domainerror.ErrCodeLogEntryNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// currentUser returns the authenticated user's ID, writing a 401 when absent.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return id, false
	}
	return id, true
}
