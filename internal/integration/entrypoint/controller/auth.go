// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/application/usecase/auth"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

const loggedOutMessage = "Successfully logged out"

// AuthController serves account creation and the session lifecycle.
type AuthController struct {
	register *auth.RegisterUserUseCase
	login    *auth.LoginUserUseCase
	refresh  *auth.RefreshTokenUseCase
	logout   *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	register *auth.RegisterUserUseCase,
	login *auth.LoginUserUseCase,
	refresh *auth.RefreshTokenUseCase,
	logout *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		register: register,
		login:    login,
		refresh:  refresh,
		logout:   logout,
	}
}

// Register handles POST /auth/register. New accounts start without a cycle
// baseline; the client continues with onboarding.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindBody(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	out, err := c.register.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
		RememberMe:    req.RememberMe,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sessionResponse(out.AccessToken, out.RefreshToken, out.User))
}

// Login handles POST /auth/login.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindBody(ctx, &req, string(domainerror.ErrCodeMissingFields)) {
		return
	}

	out, err := c.login.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse(out.AccessToken, out.RefreshToken, out.User))
}

// RefreshToken handles POST /auth/refresh. The presented refresh token is
// spent and a new pair is returned.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindBody(ctx, &req, string(domainerror.ErrCodeMissingToken)) {
		return
	}

	out, err := c.refresh.Execute(ctx.Request.Context(), auth.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
	})
}

// Logout handles POST /auth/logout. Unknown or missing tokens still log out.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err == nil {
		if out, err := c.logout.Execute(ctx.Request.Context(), auth.LogoutUserInput{RefreshToken: req.RefreshToken}); err == nil && out.Message != "" {
			ctx.JSON(http.StatusOK, dto.MessageResponse{Message: out.Message})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: loggedOutMessage})
}

func sessionResponse(accessToken, refreshToken string, user *entity.User) dto.AuthResponse {
	return dto.AuthResponse{
		TokenResponse: dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken},
		User:          dto.ToUserResponse(user),
	}
}

// bindBody decodes the JSON body into req, answering 400 with code when the
// body is malformed or misses required fields.
func bindBody(ctx *gin.Context, req any, code string) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", code)
		return false
	}
	return true
}
