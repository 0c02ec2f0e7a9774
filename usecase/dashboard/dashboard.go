package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

const recentTaskLimit = 10

// UseCase computes dashboard statistics. Everything is recomputed from the
// store on every call; reads are not isolated from concurrent writes.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{tasks: tasks, logger: logger}
}

// Overview aggregates counters, distributions and recent tasks for the
// actor's scope: global for admins, assigned-only for regular users.
func (uc *UseCase) Overview(ctx context.Context, actor domain.Actor) (*domain.DashboardData, error) {
	scope := domain.TaskScope(actor)
	now := time.Now()

	total, err := uc.tasks.Count(ctx, repository.TaskFilter{AssignedTo: scope})
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.tasks.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	overdue, err := uc.tasks.CountOverdue(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	byPriority, err := uc.tasks.CountByPriority(ctx, scope)
	if err != nil {
		return nil, err
	}

	recent, err := uc.tasks.Recent(ctx, scope, recentTaskLimit)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardData{
		Statistics: domain.DashboardStats{
			TotalTasks:     total,
			TodoTasks:      byStatus[domain.StatusTodo],
			CompletedTasks: byStatus[domain.StatusCompleted],
			OverdueTasks:   overdue,
		},
		Charts: domain.DashboardCharts{
			TaskDistribution:   domain.FillStatusDistribution(byStatus, total),
			TaskPriorityLevels: domain.FillPriorityDistribution(byPriority),
		},
		RecentTasks: recent,
	}, nil
}
