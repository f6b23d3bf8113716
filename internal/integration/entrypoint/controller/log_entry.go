package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caresync/backend/internal/application/usecase/logentry"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
	"github.com/caresync/backend/internal/integration/entrypoint/dto"
)

// LogEntryController handles daily log endpoints.
type LogEntryController struct {
	saveUseCase   *logentry.SaveLogEntryUseCase
	listUseCase   *logentry.ListLogEntriesUseCase
	getUseCase    *logentry.GetLogEntryUseCase
	deleteUseCase *logentry.DeleteLogEntryUseCase
}

// NewLogEntryController creates a new log entry controller instance.
func NewLogEntryController(
	saveUseCase *logentry.SaveLogEntryUseCase,
	listUseCase *logentry.ListLogEntriesUseCase,
	getUseCase *logentry.GetLogEntryUseCase,
	deleteUseCase *logentry.DeleteLogEntryUseCase,
) *LogEntryController {
	return &LogEntryController{
		saveUseCase:   saveUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Save handles PUT /logs/:date requests. It returns 201 when the entry is new.
func (c *LogEntryController) Save(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	date, ok := logDateParam(ctx)
	if !ok {
		return
	}

	var req dto.SaveLogEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeMissingLogFields), err.Error())
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), logentry.SaveLogEntryInput{
		UserID:        userID,
		Date:          date,
		FlowIntensity: req.FlowIntensity,
		IsPeriodStart: req.IsPeriodStart,
		Symptoms:      req.Symptoms,
		Mood:          req.Mood,
		Temperature:   req.Temperature,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToLogEntryResponse(output.Entry))
}

// List handles GET /logs?start=&end= requests.
func (c *LogEntryController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	start, err := valueobject.ParseDate(ctx.Query("start"))
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidDateRange), "start must be YYYY-MM-DD")
		return
	}
	end, err := valueobject.ParseDate(ctx.Query("end"))
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidDateRange), "end must be YYYY-MM-DD")
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), logentry.ListLogEntriesInput{
		UserID: userID,
		Start:  start,
		End:    end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLogEntryListResponse(output.Start, output.End, output.Entries))
}

// Get handles GET /logs/:date requests.
func (c *LogEntryController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	date, ok := logDateParam(ctx)
	if !ok {
		return
	}

	entry, err := c.getUseCase.Execute(ctx.Request.Context(), logentry.GetLogEntryInput{UserID: userID, Date: date})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLogEntryResponse(entry))
}

// Delete handles DELETE /logs/:date requests.
func (c *LogEntryController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	date, ok := logDateParam(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), logentry.DeleteLogEntryInput{UserID: userID, Date: date}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func logDateParam(ctx *gin.Context) (time.Time, bool) {
	date, err := valueobject.ParseDate(ctx.Param("date"))
	if err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidLogDate), "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
