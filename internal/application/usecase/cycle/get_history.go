package cycle

import (
	"context"

	"github.com/google/uuid"

	domaincycle "github.com/caresync/backend/internal/domain/cycle"
)

// GetHistoryInput represents the input for the history view.
type GetHistoryInput struct {
	UserID uuid.UUID
}

// GetHistoryOutput summarizes observed cycles and symptoms.
type GetHistoryOutput struct {
	Cycles                []domaincycle.CycleSummary
	AverageCycleLength    int
	AveragePeriodDuration int
	RegularityScore       float64
	SampleSize            int
	IrregularCycle        bool
	InsufficientHistory   bool
	LoggedDays            int
	Symptoms              []domaincycle.SymptomFrequency
}

// GetHistoryUseCase builds the history view.
type GetHistoryUseCase struct {
	resolver *ProfileResolver
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(resolver *ProfileResolver) *GetHistoryUseCase {
	return &GetHistoryUseCase{resolver: resolver}
}

// Execute builds the history.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) (*GetHistoryOutput, error) {
	resolved, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	logged := 0
	for _, e := range resolved.Entries {
		if e.HasData() {
			logged++
		}
	}

	return &GetHistoryOutput{
		Cycles:                domaincycle.SummarizeCycles(resolved.Entries),
		AverageCycleLength:    resolved.Profile.AverageCycleLength(),
		AveragePeriodDuration: resolved.Profile.PeriodDuration(),
		RegularityScore:       resolved.History.RegularityScore,
		SampleSize:            resolved.History.SampleSize,
		IrregularCycle:        resolved.History.IrregularCycle,
		InsufficientHistory:   resolved.InsufficientHistory,
		LoggedDays:            logged,
		Symptoms:              domaincycle.SymptomFrequencies(resolved.Entries),
	}, nil
}
