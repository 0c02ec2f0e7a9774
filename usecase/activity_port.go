package usecase

import (
	"context"

	"github.com/taskgrid/backend/domain"
)

// ActivityRecorder abstracts the audit trail so use cases stay storage-agnostic.
type ActivityRecorder interface {
	Record(ctx context.Context, record domain.ActivityRecord) error
}
