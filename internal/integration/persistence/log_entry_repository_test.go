package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

func TestLogEntryRepository_UpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewLogEntryRepository(openTestDB(t))
	userID := uuid.New()

	mood := 4
	temperature := decimal.RequireFromString("36.55")
	entry := entity.NewLogEntry(userID, date(2024, 3, 1))
	entry.FlowIntensity = entity.FlowHeavy
	entry.IsPeriodStart = true
	entry.Symptoms = []string{"bloating", "cramps"}
	entry.Mood = &mood
	entry.Temperature = &temperature
	entry.Notes = "first day"
	require.NoError(t, repo.Upsert(ctx, entry))

	found, err := repo.FindByDate(ctx, userID, date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)
	assert.Equal(t, date(2024, 3, 1), found.Date)
	assert.Equal(t, entity.FlowHeavy, found.FlowIntensity)
	assert.True(t, found.IsPeriodStart)
	assert.Equal(t, []string{"bloating", "cramps"}, found.Symptoms)
	require.NotNil(t, found.Mood)
	assert.Equal(t, 4, *found.Mood)
	require.NotNil(t, found.Temperature)
	assert.True(t, temperature.Equal(*found.Temperature))
	assert.Equal(t, "first day", found.Notes)

	t.Run("upsert replaces the entry for the same date", func(t *testing.T) {
		found.FlowIntensity = entity.FlowLight
		found.Symptoms = nil
		found.Mood = nil
		found.Temperature = nil
		require.NoError(t, repo.Upsert(ctx, found))

		again, err := repo.FindByDate(ctx, userID, date(2024, 3, 1))
		require.NoError(t, err)
		assert.Equal(t, entry.ID, again.ID)
		assert.Equal(t, entity.FlowLight, again.FlowIntensity)
		assert.Empty(t, again.Symptoms)
		assert.Nil(t, again.Mood)
		assert.Nil(t, again.Temperature)

		all, err := repo.ListByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestLogEntryRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewLogEntryRepository(openTestDB(t))
	userID := uuid.New()
	otherID := uuid.New()

	for _, d := range []int{5, 1, 3, 9} {
		e := entity.NewLogEntry(userID, date(2024, 4, d))
		e.FlowIntensity = entity.FlowMedium
		require.NoError(t, repo.Upsert(ctx, e))
	}
	other := entity.NewLogEntry(otherID, date(2024, 4, 3))
	other.Notes = "someone else"
	require.NoError(t, repo.Upsert(ctx, other))

	entries, err := repo.ListByRange(ctx, userID, date(2024, 4, 1), date(2024, 4, 5))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, date(2024, 4, 1), entries[0].Date)
	assert.Equal(t, date(2024, 4, 3), entries[1].Date)
	assert.Equal(t, date(2024, 4, 5), entries[2].Date)

	require.NoError(t, repo.DeleteByDate(ctx, userID, date(2024, 4, 3)))
	assert.ErrorIs(t, repo.DeleteByDate(ctx, userID, date(2024, 4, 3)), domainerror.ErrLogEntryNotFound)
	_, err = repo.FindByDate(ctx, userID, date(2024, 4, 3))
	assert.ErrorIs(t, err, domainerror.ErrLogEntryNotFound)

	require.NoError(t, repo.DeleteByUserID(ctx, userID))
	remaining, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := repo.ListByUser(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
