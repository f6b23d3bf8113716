package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/application/usecase/settings"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

// SettingsController handles onboarding and settings endpoints.
type SettingsController struct {
	completeOnboardingUseCase *settings.CompleteOnboardingUseCase
	getSettingsUseCase        *settings.GetSettingsUseCase
	updateSettingsUseCase     *settings.UpdateSettingsUseCase
}

// NewSettingsController creates a new settings controller instance.
func NewSettingsController(
	completeOnboardingUseCase *settings.CompleteOnboardingUseCase,
	getSettingsUseCase *settings.GetSettingsUseCase,
	updateSettingsUseCase *settings.UpdateSettingsUseCase,
) *SettingsController {
	return &SettingsController{
		completeOnboardingUseCase: completeOnboardingUseCase,
		getSettingsUseCase:        getSettingsUseCase,
		updateSettingsUseCase:     updateSettingsUseCase,
	}
}

// CompleteOnboarding handles POST /onboarding requests.
func (c *SettingsController) CompleteOnboarding(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.OnboardingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidCycleParameters), err.Error())
		return
	}

	lastStart, err := valueobject.ParseDate(req.LastPeriodStart)
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidQueryDate), "last_period_start must be YYYY-MM-DD")
		return
	}

	output, err := c.completeOnboardingUseCase.Execute(ctx.Request.Context(), settings.CompleteOnboardingInput{
		UserID:            userID,
		CycleLength:       req.CycleLength,
		PeriodDuration:    req.PeriodDuration,
		LutealPhaseLength: req.LutealPhaseLength,
		LastPeriodStart:   lastStart,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.User))
}

// GetSettings handles GET /settings requests.
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getSettingsUseCase.Execute(ctx.Request.Context(), settings.GetSettingsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.User))
}

// UpdateSettings handles PATCH /settings requests.
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidCycleParameters), err.Error())
		return
	}

	var lastStart *time.Time
	if req.LastPeriodStart != nil {
		parsed, err := valueobject.ParseDate(*req.LastPeriodStart)
		if err != nil {
			badRequest(ctx, string(domainerror.ErrCodeInvalidQueryDate), "last_period_start must be YYYY-MM-DD")
			return
		}
		lastStart = &parsed
	}

	output, err := c.updateSettingsUseCase.Execute(ctx.Request.Context(), settings.UpdateSettingsInput{
		UserID:                 userID,
		Name:                   req.Name,
		CycleLength:            req.CycleLength,
		PeriodDuration:         req.PeriodDuration,
		LutealPhaseLength:      req.LutealPhaseLength,
		LastPeriodStart:        lastStart,
		FirstDayOfWeek:         req.FirstDayOfWeek,
		EmailNotifications:     req.EmailNotifications,
		PeriodReminders:        req.PeriodReminders,
		FertileWindowReminders: req.FertileWindowReminders,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(output.User))
}
