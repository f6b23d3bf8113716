package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/application/usecase/auth"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

// UserController serves the signed-in user's account.
type UserController struct {
	deleteAccount *auth.DeleteAccountUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(deleteAccount *auth.DeleteAccountUseCase) *UserController {
	return &UserController{deleteAccount: deleteAccount}
}

// DeleteAccount handles DELETE /users/me. The account, its logs, queued
// reminders and sessions are removed; the response has no body.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.DeleteAccountRequest
	if !bindBody(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	if _, err := c.deleteAccount.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
