package cycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := valueobject.ParseDate(s)
	require.NoError(t, err)
	return d
}

func mustProfile(t *testing.T, length, period, luteal int, lastStart string) valueobject.CycleProfile {
	t.Helper()
	p, err := valueobject.NewCycleProfile(valueobject.CycleParams{
		AverageCycleLength: length,
		PeriodDuration:     period,
		LutealPhaseLength:  luteal,
		LastPeriodStart:    date(t, lastStart),
	})
	require.NoError(t, err)
	return p
}

// flowEntries returns one medium-flow entry per day starting at start.
func flowEntries(t *testing.T, userID uuid.UUID, start string, days int) []*entity.LogEntry {
	t.Helper()
	first := date(t, start)
	entries := make([]*entity.LogEntry, 0, days)
	for i := 0; i < days; i++ {
		e := entity.NewLogEntry(userID, first.AddDate(0, 0, i))
		e.FlowIntensity = entity.FlowMedium
		entries = append(entries, e)
	}
	return entries
}
