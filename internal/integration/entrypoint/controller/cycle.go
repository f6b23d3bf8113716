package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/application/usecase/cycle"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

const monthLayout = "2006-01"

// CycleController handles the dashboard, calendar, phase and history views.
type CycleController struct {
	dashboardUseCase *cycle.GetDashboardUseCase
	calendarUseCase  *cycle.GetCalendarUseCase
	phaseUseCase     *cycle.GetPhaseUseCase
	historyUseCase   *cycle.GetHistoryUseCase
	clock            adapter.Clock
}

// NewCycleController creates a new cycle controller instance.
func NewCycleController(
	dashboardUseCase *cycle.GetDashboardUseCase,
	calendarUseCase *cycle.GetCalendarUseCase,
	phaseUseCase *cycle.GetPhaseUseCase,
	historyUseCase *cycle.GetHistoryUseCase,
	clock adapter.Clock,
) *CycleController {
	return &CycleController{
		dashboardUseCase: dashboardUseCase,
		calendarUseCase:  calendarUseCase,
		phaseUseCase:     phaseUseCase,
		historyUseCase:   historyUseCase,
		clock:            clock,
	}
}

// Dashboard handles GET /dashboard requests.
func (c *CycleController) Dashboard(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	today, ok := optionalDateQuery(ctx, "today")
	if !ok {
		return
	}

	output, err := c.dashboardUseCase.Execute(ctx.Request.Context(), cycle.GetDashboardInput{
		UserID: userID,
		Today:  today,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// Calendar handles GET /calendar?month=YYYY-MM requests. The month defaults to
// the one containing today.
func (c *CycleController) Calendar(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	today, ok := optionalDateQuery(ctx, "today")
	if !ok {
		return
	}

	var month time.Time
	if raw := ctx.Query("month"); raw != "" {
		parsed, err := time.Parse(monthLayout, raw)
		if err != nil {
			badRequest(ctx, string(domainerror.ErrCodeInvalidQueryDate), "month must be YYYY-MM")
			return
		}
		month = parsed
	}

	output, err := c.calendarUseCase.Execute(ctx.Request.Context(), cycle.GetCalendarInput{
		UserID: userID,
		Month:  month,
		Today:  today,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCalendarResponse(output))
}

// Phase handles GET /cycle/phase?date= requests. The date defaults to today.
func (c *CycleController) Phase(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	date, ok := optionalDateQuery(ctx, "date")
	if !ok {
		return
	}
	day := c.clock.Today()
	if date != nil {
		day = *date
	}

	output, err := c.phaseUseCase.Execute(ctx.Request.Context(), cycle.GetPhaseInput{
		UserID: userID,
		Date:   day,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPhaseResponse(output))
}

// History handles GET /cycle/history requests.
func (c *CycleController) History(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.historyUseCase.Execute(ctx.Request.Context(), cycle.GetHistoryInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output))
}

// optionalDateQuery parses a YYYY-MM-DD query parameter. A missing parameter
// yields nil; a malformed one writes a 400.
func optionalDateQuery(ctx *gin.Context, name string) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := valueobject.ParseDate(raw)
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidQueryDate), name+" must be YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
