package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
	"github.com/caresync/backend/internal/integration/persistence/model"
)

// logEntryRepository implements the adapter.LogEntryRepository interface.
type logEntryRepository struct {
	db *gorm.DB
}

// NewLogEntryRepository creates a new log entry repository instance.
func NewLogEntryRepository(db *gorm.DB) adapter.LogEntryRepository {
	return &logEntryRepository{
		db: db,
	}
}

// Upsert inserts the entry, or overwrites the tracked fields of the existing
// entry for the same user and date.
func (r *logEntryRepository) Upsert(ctx context.Context, entry *entity.LogEntry) error {
	entryModel := model.LogEntryModelFromEntity(entry)
	entryModel.Date = valueobject.DateOf(entry.Date)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"flow_intensity", "is_period_start", "symptoms", "mood",
				"temperature", "notes", "updated_at",
			}),
		}).
		Create(entryModel)
	return result.Error
}

// FindByDate retrieves the entry for a user and date.
func (r *logEntryRepository) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.LogEntry, error) {
	var entryModel model.LogEntryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, valueobject.DateOf(date)).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLogEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// ListByRange retrieves entries with dates in [start, end], ordered by date.
func (r *logEntryRepository) ListByRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.LogEntry, error) {
	return r.list(ctx, r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", valueobject.DateOf(start), valueobject.DateOf(end)))
}

// ListByUser retrieves every entry for a user, ordered by date.
func (r *logEntryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.LogEntry, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *logEntryRepository) list(_ context.Context, query *gorm.DB) ([]*entity.LogEntry, error) {
	var models []model.LogEntryModel
	if err := query.Order("date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.LogEntry, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}

// DeleteByDate removes the entry for a user and date.
func (r *logEntryRepository) DeleteByDate(ctx context.Context, userID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, valueobject.DateOf(date)).
		Delete(&model.LogEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLogEntryNotFound
	}
	return nil
}

// DeleteByUserID removes every entry for a user.
func (r *logEntryRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.LogEntryModel{}).Error
}
