package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

func newReminderJob(userID uuid.UUID, key string) *entity.EmailJob {
	return entity.NewEmailJob(userID, entity.TemplatePeriodReminder, "ana@example.com", "Ana",
		"Your period is coming", map[string]interface{}{"days_until": 2}).WithDedupKey(key)
}

func TestEmailQueueRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewEmailQueueRepository(openTestDB(t))
	userID := uuid.New()

	job := newReminderJob(userID, "period_reminder:x:2024-02-12")
	job.ScheduledAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, job))

	later := newReminderJob(userID, "period_reminder:x:2024-03-11")
	later.ScheduledAt = time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, later))

	pending, err := repo.GetPendingJobs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, job.ID, pending[0].ID)
	assert.Equal(t, userID, pending[0].UserID)
	assert.EqualValues(t, 2, pending[0].TemplateData["days_until"])

	exists, err := repo.ExistsByDedupKey(ctx, "period_reminder:x:2024-02-12")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByDedupKey(ctx, "")
	require.NoError(t, err)
	assert.False(t, exists)

	processed := time.Now().UTC().AddDate(0, 0, -40)
	pending[0].Status = entity.EmailStatusSent
	pending[0].ProcessedAt = &processed
	require.NoError(t, repo.Update(ctx, pending[0]))

	stored, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EmailStatusSent, stored.Status)
	require.NotNil(t, stored.ProcessedAt)

	deleted, err := repo.DeleteOldSentJobs(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, domainerror.ErrEmailJobNotFound)

	byRecipient, err := repo.GetByRecipient(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, byRecipient, 1)

	require.NoError(t, repo.DeleteByUserID(ctx, userID))
	byRecipient, err = repo.GetByRecipient(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, byRecipient)
}
