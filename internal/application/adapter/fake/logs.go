package fake

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

type logKey struct {
	userID uuid.UUID
	date   time.Time
}

// LogEntryRepository is an in-memory adapter.LogEntryRepository.
type LogEntryRepository struct {
	mu      sync.Mutex
	entries map[logKey]*entity.LogEntry
	Err     error
}

// NewLogEntryRepository creates a repository holding entries.
func NewLogEntryRepository(entries ...*entity.LogEntry) *LogEntryRepository {
	r := &LogEntryRepository{entries: make(map[logKey]*entity.LogEntry)}
	for _, e := range entries {
		r.entries[logKey{e.UserID, valueobject.DateOf(e.Date)}] = e
	}
	return r
}

func (r *LogEntryRepository) Upsert(_ context.Context, entry *entity.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	copied := *entry
	r.entries[logKey{entry.UserID, valueobject.DateOf(entry.Date)}] = &copied
	return nil
}

func (r *LogEntryRepository) FindByDate(_ context.Context, userID uuid.UUID, date time.Time) (*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	e, ok := r.entries[logKey{userID, valueobject.DateOf(date)}]
	if !ok {
		return nil, domainerror.ErrLogEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *LogEntryRepository) ListByRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.collect(func(e *entity.LogEntry) bool {
		return e.UserID == userID && valueobject.BetweenInclusive(e.Date, start, end)
	}), nil
}

func (r *LogEntryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	return r.collect(func(e *entity.LogEntry) bool { return e.UserID == userID }), nil
}

func (r *LogEntryRepository) DeleteByDate(_ context.Context, userID uuid.UUID, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	key := logKey{userID, valueobject.DateOf(date)}
	if _, ok := r.entries[key]; !ok {
		return domainerror.ErrLogEntryNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *LogEntryRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for k := range r.entries {
		if k.userID == userID {
			delete(r.entries, k)
		}
	}
	return nil
}

func (r *LogEntryRepository) collect(keep func(*entity.LogEntry) bool) []*entity.LogEntry {
	result := make([]*entity.LogEntry, 0)
	for _, e := range r.entries {
		if keep(e) {
			copied := *e
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result
}
