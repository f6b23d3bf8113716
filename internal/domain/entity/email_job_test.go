package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob() *EmailJob {
	return NewEmailJob(uuid.New(), TemplatePeriodReminder, "ana@example.com", "Ana", "Your period is coming", map[string]interface{}{"days": 2})
}

func TestEmailJob_MarkFailedRetries(t *testing.T) {
	job := newTestJob()
	before := time.Now().UTC()

	job.MarkFailed(errors.New("timeout"), false)

	assert.Equal(t, EmailStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.Equal(t, "timeout", job.LastError)
	assert.True(t, job.CanRetry())
	assert.False(t, job.ScheduledAt.Before(before.Add(time.Minute)))
	assert.Nil(t, job.ProcessedAt)
}

func TestEmailJob_MarkFailedExhaustsAttempts(t *testing.T) {
	job := newTestJob()

	for i := 0; i < DefaultMaxEmailAttempts; i++ {
		job.MarkFailed(errors.New("timeout"), false)
	}

	assert.Equal(t, EmailStatusFailed, job.Status)
	assert.False(t, job.CanRetry())
	require.NotNil(t, job.ProcessedAt)
}

func TestEmailJob_MarkFailedPermanent(t *testing.T) {
	job := newTestJob()

	job.MarkFailed(errors.New("invalid recipient"), true)

	assert.Equal(t, EmailStatusFailed, job.Status)
	assert.Equal(t, 1, job.Attempts)
}

func TestEmailJob_MarkSent(t *testing.T) {
	job := newTestJob()
	job.MarkProcessing()
	assert.Equal(t, EmailStatusProcessing, job.Status)

	job.MarkSent("re_123")

	assert.Equal(t, EmailStatusSent, job.Status)
	assert.Equal(t, "re_123", job.ResendID)
	require.NotNil(t, job.ProcessedAt)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), RetryDelay(0))
	assert.Equal(t, time.Minute, RetryDelay(1))
	assert.Equal(t, 5*time.Minute, RetryDelay(2))
	assert.Equal(t, 5*time.Minute, RetryDelay(9))
	assert.Equal(t, time.Duration(0), RetryDelay(-1))
}

func TestEmailTemplateType_IsValid(t *testing.T) {
	assert.True(t, TemplatePeriodReminder.IsValid())
	assert.True(t, TemplateFertileWindowReminder.IsValid())
	assert.False(t, EmailTemplateType("password_reset").IsValid())
}
