package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tasks:  tasks,
		logger: logger,
	}
}

// Overview is a member account annotated with its assigned-task counts.
type Overview struct {
	domain.User
	TodoTasks       int64 `json:"todoTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
}

// List returns every regular-user account with per-status task counts.
// Admin only.
func (uc *UseCase) List(ctx context.Context, actor domain.Actor) ([]Overview, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	users, err := uc.users.List(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	overviews := make([]Overview, 0, len(users))
	for _, account := range users {
		byStatus, err := uc.tasks.CountByStatus(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, Overview{
			User:            account,
			TodoTasks:       byStatus[domain.StatusTodo],
			InProgressTasks: byStatus[domain.StatusInProgress],
			CompletedTasks:  byStatus[domain.StatusCompleted],
		})
	}
	return overviews, nil
}

// Get returns a single account by id.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}
