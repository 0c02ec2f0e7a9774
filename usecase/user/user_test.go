package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

type memUserRepo struct {
	users []domain.User
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) Update(_ context.Context, _ *domain.User) error { return nil }

func (r *memUserRepo) List(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if role == "" || user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *memUserRepo) Summaries(_ context.Context, ids []string) ([]domain.UserSummary, error) {
	var out []domain.UserSummary
	for _, id := range ids {
		for _, user := range r.users {
			if user.ID == id {
				out = append(out, user.Summary())
			}
		}
	}
	return out, nil
}

type memTaskRepo struct {
	tasks []domain.Task
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	return nil, domain.ErrTaskNotFound
}

func (r *memTaskRepo) List(_ context.Context, _ repository.TaskFilter) ([]domain.Task, error) {
	return r.tasks, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.tasks = append(r.tasks, *task)
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, _ *domain.Task) error { return nil }
func (r *memTaskRepo) Delete(_ context.Context, _ string) error       { return nil }

func (r *memTaskRepo) Count(_ context.Context, _ repository.TaskFilter) (int64, error) {
	return int64(len(r.tasks)), nil
}

func (r *memTaskRepo) CountOverdue(_ context.Context, _ string, _ time.Time) (int64, error) {
	return 0, nil
}

func (r *memTaskRepo) CountByStatus(_ context.Context, assignedTo string) (map[domain.Status]int64, error) {
	out := make(map[domain.Status]int64)
	for _, task := range r.tasks {
		if assignedTo != "" && !task.IsAssigned(assignedTo) {
			continue
		}
		out[task.Status]++
	}
	return out, nil
}

func (r *memTaskRepo) CountByPriority(_ context.Context, _ string) (map[domain.Priority]int64, error) {
	return map[domain.Priority]int64{}, nil
}

func (r *memTaskRepo) Recent(_ context.Context, _ string, _ int) ([]domain.RecentTask, error) {
	return nil, nil
}

func TestListRequiresAdmin(t *testing.T) {
	uc := New(&memUserRepo{}, &memTaskRepo{}, nil)

	_, err := uc.List(context.Background(), domain.Actor{ID: "u1", Role: domain.RoleUser})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestListAnnotatesTaskCounts(t *testing.T) {
	users := &memUserRepo{users: []domain.User{
		{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
		{ID: "admin", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin},
	}}
	tasks := &memTaskRepo{tasks: []domain.Task{
		{ID: "t1", Status: domain.StatusTodo, AssignedTo: []string{"u1"}},
		{ID: "t2", Status: domain.StatusInProgress, AssignedTo: []string{"u1"}},
		{ID: "t3", Status: domain.StatusCompleted, AssignedTo: []string{"u1"}},
		{ID: "t4", Status: domain.StatusTodo, AssignedTo: []string{"someone-else"}},
	}}
	uc := New(users, tasks, nil)

	overviews, err := uc.List(context.Background(), domain.Actor{ID: "admin", Role: domain.RoleAdmin})
	require.NoError(t, err)

	// Admin accounts are excluded from the member listing.
	require.Len(t, overviews, 1)
	assert.Equal(t, "Alice", overviews[0].Name)
	assert.Equal(t, int64(1), overviews[0].TodoTasks)
	assert.Equal(t, int64(1), overviews[0].InProgressTasks)
	assert.Equal(t, int64(1), overviews[0].CompletedTasks)
}

func TestGet(t *testing.T) {
	users := &memUserRepo{users: []domain.User{
		{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
	}}
	uc := New(users, &memTaskRepo{}, nil)

	user, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = uc.Get(context.Background(), "missing")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
