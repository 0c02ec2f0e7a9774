package repository

import (
	"context"
	"time"

	"github.com/taskgrid/backend/domain"
)

// TaskFilter narrows task reads. AssignedTo scopes to one assignee (empty
// means unscoped), Status is an equality filter (empty means any).
type TaskFilter struct {
	AssignedTo string
	Status     domain.Status
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// Aggregation reads used by the query service and the dashboard.
	Count(ctx context.Context, filter TaskFilter) (int64, error)
	CountOverdue(ctx context.Context, assignedTo string, before time.Time) (int64, error)
	CountByStatus(ctx context.Context, assignedTo string) (map[domain.Status]int64, error)
	CountByPriority(ctx context.Context, assignedTo string) (map[domain.Priority]int64, error)
	Recent(ctx context.Context, assignedTo string, limit int) ([]domain.RecentTask, error)
}
