package task

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

type memTaskRepo struct {
	tasks map[string]domain.Task
	seq   int
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *memTaskRepo) matches(task domain.Task, filter repository.TaskFilter) bool {
	if filter.AssignedTo != "" && !task.IsAssigned(filter.AssignedTo) {
		return false
	}
	if filter.Status != "" && task.Status != filter.Status {
		return false
	}
	return true
}

func (r *memTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := task
	return &copied, nil
}

func (r *memTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range r.tasks {
		if r.matches(task, filter) {
			out = append(out, task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.seq++
	if task.ID == "" {
		task.ID = fmt.Sprintf("t%d", r.seq)
	}
	task.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	task.UpdatedAt = task.CreatedAt
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memTaskRepo) Count(_ context.Context, filter repository.TaskFilter) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if r.matches(task, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memTaskRepo) CountOverdue(_ context.Context, assignedTo string, before time.Time) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if r.matches(task, repository.TaskFilter{AssignedTo: assignedTo}) && task.IsOverdue(before) {
			count++
		}
	}
	return count, nil
}

func (r *memTaskRepo) CountByStatus(_ context.Context, assignedTo string) (map[domain.Status]int64, error) {
	counts := make(map[domain.Status]int64)
	for _, task := range r.tasks {
		if r.matches(task, repository.TaskFilter{AssignedTo: assignedTo}) {
			counts[task.Status]++
		}
	}
	return counts, nil
}

func (r *memTaskRepo) CountByPriority(_ context.Context, assignedTo string) (map[domain.Priority]int64, error) {
	counts := make(map[domain.Priority]int64)
	for _, task := range r.tasks {
		if r.matches(task, repository.TaskFilter{AssignedTo: assignedTo}) {
			counts[task.Priority]++
		}
	}
	return counts, nil
}

func (r *memTaskRepo) Recent(_ context.Context, assignedTo string, limit int) ([]domain.RecentTask, error) {
	tasks, _ := r.List(context.Background(), repository.TaskFilter{AssignedTo: assignedTo})
	var recent []domain.RecentTask
	for i, task := range tasks {
		if i >= limit {
			break
		}
		recent = append(recent, domain.RecentTask{
			Title:     task.Title,
			Status:    task.Status,
			Priority:  task.Priority,
			DueDate:   task.DueDate,
			CreatedAt: task.CreatedAt,
		})
	}
	return recent, nil
}

type memUserRepo struct {
	users map[string]domain.User
}

func newMemUserRepo(users ...domain.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.users[user.ID] = *user
	return nil
}

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
		if user, ok := r.users[id]; ok {
			out = append(out, user.Summary())
		}
	}
	return out, nil
}

var (
	admin = domain.Actor{ID: "admin1", Role: domain.RoleAdmin}
	alice = domain.Actor{ID: "u1", Role: domain.RoleUser}
	bob   = domain.Actor{ID: "u2", Role: domain.RoleUser}
)

func newTestUseCase() (*UseCase, *memTaskRepo) {
	tasks := newMemTaskRepo()
	users := newMemUserRepo(
		domain.User{ID: "admin1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
		domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
		domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser},
	)
	return New(tasks, users, nil, nil), tasks
}

func dueTomorrow() time.Time {
	return time.Now().Add(24 * time.Hour)
}

func createTask(t *testing.T, uc *UseCase, assignees []string, mutate ...func(*CreateInput)) *View {
	t.Helper()
	input := CreateInput{
		Title:       "task",
		Description: "desc",
		DueDate:     dueTomorrow(),
		AssignedTo:  assignees,
	}
	for _, fn := range mutate {
		fn(&input)
	}
	view, err := uc.Create(context.Background(), admin, input)
	require.NoError(t, err)
	return view
}

func TestCreateRequiresAdmin(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), alice, CreateInput{
		Title:       "task",
		Description: "desc",
		DueDate:     dueTomorrow(),
		AssignedTo:  []string{"u1"},
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestCreateRejectsMissingAssignees(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Create(context.Background(), admin, CreateInput{
		Title:       "task",
		Description: "desc",
		DueDate:     dueTomorrow(),
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestCreateDefaults(t *testing.T) {
	uc, _ := newTestUseCase()

	view := createTask(t, uc, []string{"u1"}, func(input *CreateInput) {
		input.TodoChecklist = []domain.TodoItem{{Text: "a", Completed: true}}
	})

	assert.Equal(t, domain.PriorityMedium, view.Priority)
	assert.Equal(t, domain.StatusTodo, view.Status)
	// Progress is not derived at creation time; it starts at zero even
	// when the checklist already has completed items.
	assert.Equal(t, 0, view.Progress)
	assert.Equal(t, 1, view.CompletedTodoCount)
}

func TestCreateResolvesAssigneeSummaries(t *testing.T) {
	uc, _ := newTestUseCase()

	view := createTask(t, uc, []string{"u2", "u1"})

	require.Len(t, view.AssignedTo, 2)
	assert.Equal(t, "Bob", view.AssignedTo[0].Name)
	assert.Equal(t, "Alice", view.AssignedTo[1].Name)
}

func TestQueryScopesNonAdminToAssignedTasks(t *testing.T) {
	uc, _ := newTestUseCase()
	createTask(t, uc, []string{"u1"})
	createTask(t, uc, []string{"u2"})

	result, err := uc.Query(context.Background(), alice, "")
	require.NoError(t, err)

	require.Len(t, result.Tasks, 1)
	assert.True(t, result.Tasks[0].IsAssigned("u1"))
	assert.Equal(t, int64(1), result.StatusSummary.All)
}

func TestQuerySummaryAllIgnoresStatusFilter(t *testing.T) {
	uc, _ := newTestUseCase()
	createTask(t, uc, []string{"u1"})
	createTask(t, uc, []string{"u1"})
	done := createTask(t, uc, []string{"u2"})
	_, err := uc.UpdateStatus(context.Background(), bob, done.ID, domain.StatusCompleted)
	require.NoError(t, err)

	result, err := uc.Query(context.Background(), admin, string(domain.StatusTodo))
	require.NoError(t, err)

	assert.Len(t, result.Tasks, 2)
	assert.Equal(t, int64(3), result.StatusSummary.All)
	assert.Equal(t, int64(2), result.StatusSummary.Todo)
	assert.Equal(t, int64(0), result.StatusSummary.InProgress)
	assert.Equal(t, int64(1), result.StatusSummary.Completed)
}

func TestQueryAllSentinelDisablesFilter(t *testing.T) {
	uc, _ := newTestUseCase()
	createTask(t, uc, []string{"u1"})
	done := createTask(t, uc, []string{"u1"})
	_, err := uc.UpdateStatus(context.Background(), alice, done.ID, domain.StatusCompleted)
	require.NoError(t, err)

	result, err := uc.Query(context.Background(), admin, StatusFilterAll)
	require.NoError(t, err)
	assert.Len(t, result.Tasks, 2)
}

func TestQueryAnnotatesCompletedTodoCount(t *testing.T) {
	uc, _ := newTestUseCase()
	createTask(t, uc, []string{"u1"}, func(input *CreateInput) {
		input.TodoChecklist = []domain.TodoItem{
			{Text: "a", Completed: true},
			{Text: "b", Completed: true},
			{Text: "c"},
		}
	})

	result, err := uc.Query(context.Background(), alice, "")
	require.NoError(t, err)
	require.Len(t, result.Tasks, 1)
	assert.Equal(t, 2, result.Tasks[0].CompletedTodoCount)
}

func TestUpdateMergeKeepsExistingOnZeroFields(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"}, func(input *CreateInput) {
		input.Title = "original title"
		input.Priority = domain.PriorityHigh
	})

	updated, err := uc.Update(context.Background(), admin, view.ID, UpdateInput{
		Description: "new description",
	})
	require.NoError(t, err)

	assert.Equal(t, "original title", updated.Title)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.True(t, updated.Task.IsAssigned("u1"))
}

func TestUpdateChecklistViaFullUpdateDoesNotDerive(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	updated, err := uc.Update(context.Background(), admin, view.ID, UpdateInput{
		TodoChecklist: []domain.TodoItem{{Text: "a", Completed: true}},
	})
	require.NoError(t, err)

	// The full-update path swaps the checklist without touching the
	// derived fields; only the dedicated checklist path recomputes them.
	assert.Equal(t, domain.StatusTodo, updated.Status)
	assert.Equal(t, 0, updated.Progress)
}

func TestUpdateRejectsEmptyAssigneeList(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	_, err := uc.Update(context.Background(), admin, view.ID, UpdateInput{AssignedTo: []string{}})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

// Deliberately permissive: the full update enforces no ownership or
// assignment check, so an unrelated non-admin actor can edit task fields.
// Pending product clarification.
func TestUpdateAllowsUnrelatedActor(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	updated, err := uc.Update(context.Background(), bob, view.ID, UpdateInput{Title: "edited by bob"})
	require.NoError(t, err)
	assert.Equal(t, "edited by bob", updated.Title)
}

func TestUpdateNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Update(context.Background(), admin, "missing", UpdateInput{Title: "x"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDeleteAdminOnly(t *testing.T) {
	uc, tasks := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	err := uc.Delete(context.Background(), alice, view.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	require.NoError(t, uc.Delete(context.Background(), admin, view.ID))
	_, err = tasks.GetByID(context.Background(), view.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestUpdateStatusAuthorization(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	_, err := uc.UpdateStatus(context.Background(), bob, view.ID, domain.StatusInProgress)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))

	updated, err := uc.UpdateStatus(context.Background(), alice, view.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, updated.Status)

	// Admin overrides the assignment restriction.
	updated, err = uc.UpdateStatus(context.Background(), admin, view.ID, domain.StatusTodo)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, updated.Status)
}

func TestUpdateStatusCompletedForcesChecklist(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"}, func(input *CreateInput) {
		input.TodoChecklist = []domain.TodoItem{{Text: "a"}, {Text: "b", Completed: true}, {Text: "c"}}
	})

	updated, err := uc.UpdateStatus(context.Background(), alice, view.ID, domain.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	for _, item := range updated.TodoChecklist {
		assert.True(t, item.Completed)
	}
}

func TestUpdateChecklistAuthorization(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	_, err := uc.UpdateChecklist(context.Background(), bob, view.ID, []domain.TodoItem{{Text: "a"}})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeForbidden))
}

func TestUpdateChecklistDerivesProgressAndStatus(t *testing.T) {
	uc, _ := newTestUseCase()
	view := createTask(t, uc, []string{"u1"})

	updated, err := uc.UpdateChecklist(context.Background(), alice, view.ID, []domain.TodoItem{
		{Text: "a", Completed: true},
		{Text: "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Progress)
	assert.Equal(t, domain.StatusInProgress, updated.Status)

	updated, err = uc.UpdateChecklist(context.Background(), alice, view.ID, []domain.TodoItem{})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Progress)
	assert.Equal(t, domain.StatusTodo, updated.Status)
}
