package cycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	domaincycle "github.com/caresync/backend/internal/domain/cycle"
)

// GetPhaseInput represents the input for classifying one date.
type GetPhaseInput struct {
	UserID uuid.UUID
	Date   time.Time
}

// GetPhaseOutput is the classification of one date.
type GetPhaseOutput struct {
	Day     domaincycle.DayInfo
	Windows []domaincycle.PhaseWindow
	Profile ProfileSummary
}

// GetPhaseUseCase classifies an arbitrary date against the effective profile.
type GetPhaseUseCase struct {
	resolver *ProfileResolver
}

// NewGetPhaseUseCase creates a new GetPhaseUseCase instance.
func NewGetPhaseUseCase(resolver *ProfileResolver) *GetPhaseUseCase {
	return &GetPhaseUseCase{resolver: resolver}
}

// Execute classifies the date.
func (uc *GetPhaseUseCase) Execute(ctx context.Context, input GetPhaseInput) (*GetPhaseOutput, error) {
	resolved, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetPhaseOutput{
		Day:     domaincycle.Describe(resolved.Profile, input.Date),
		Windows: domaincycle.PhaseWindows(resolved.Profile),
		Profile: resolved.Summary(),
	}, nil
}
