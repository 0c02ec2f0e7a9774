package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/internal/infrastructure/activity"
	"github.com/taskgrid/backend/usecase"
)

// ActivityLog adapts the BoltDB activity store to the recorder port used by
// the task use case. Writes are synchronous and never retried.
type ActivityLog struct {
	store  *activity.Store
	logger *zap.Logger
}

func NewActivityLog(store *activity.Store, logger *zap.Logger) *ActivityLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityLog{store: store, logger: logger}
}

// Record appends one activity entry.
func (l *ActivityLog) Record(_ context.Context, record domain.ActivityRecord) error {
	if l == nil || l.store == nil {
		return nil
	}
	return l.store.Append(record)
}

// Recent returns the newest entries, most recent first.
func (l *ActivityLog) Recent(limit int) ([]domain.ActivityRecord, error) {
	if l == nil || l.store == nil {
		return nil, nil
	}
	return l.store.Recent(limit)
}

// Size reports how many entries are currently stored.
func (l *ActivityLog) Size() int {
	if l == nil || l.store == nil {
		return 0
	}
	size, err := l.store.Size()
	if err != nil {
		return 0
	}
	return size
}

var _ usecase.ActivityRecorder = (*ActivityLog)(nil)
