package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
	"github.com/taskgrid/backend/usecase"
)

// StatusFilterAll is the sentinel meaning "no status restriction".
const StatusFilterAll = "All"

type UseCase struct {
	tasks    repository.TaskRepository
	users    repository.UserRepository
	activity usecase.ActivityRecorder
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, activity usecase.ActivityRecorder, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		users:    users,
		activity: activity,
		logger:   logger,
	}
}

// View is a task projection with assignees resolved to user summaries and
// the completed-item count computed freshly per call.
type View struct {
	domain.Task
	AssignedTo         []domain.UserSummary `json:"assignedTo"`
	CompletedTodoCount int                  `json:"completedTodoCount"`
}

// StatusSummary reports per-status counts alongside a task listing. All
// ignores the status filter; the named counts apply the actor scope plus
// their own status.
type StatusSummary struct {
	All        int64 `json:"all"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// QueryResult is the task listing with its status summary.
type QueryResult struct {
	Tasks         []View        `json:"tasks"`
	StatusSummary StatusSummary `json:"statusSummary"`
}

// CreateInput carries the writable fields of a new task.
type CreateInput struct {
	Title         string
	Description   string
	Priority      domain.Priority
	DueDate       time.Time
	AssignedTo    []string
	Attachments   []string
	TodoChecklist []domain.TodoItem
}

// UpdateInput carries a full-update patch. Zero-valued fields keep the
// stored value; nil slices keep the stored value, non-nil slices replace it.
type UpdateInput struct {
	Title         string
	Description   string
	Priority      domain.Priority
	DueDate       time.Time
	AssignedTo    []string
	Attachments   []string
	TodoChecklist []domain.TodoItem
}

// Create stores a new task. Admin only.
func (uc *UseCase) Create(ctx context.Context, actor domain.Actor, input CreateInput) (*View, error) {
	if !domain.CanCreateTask(actor) {
		return nil, domain.ErrForbidden
	}
	if input.Title == "" || input.Description == "" || input.DueDate.IsZero() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title, description and dueDate are required")
	}
	if len(input.AssignedTo) == 0 {
		return nil, domain.ErrAssigneesNotArray
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
	}

	task := &domain.Task{
		Title:         input.Title,
		Description:   input.Description,
		Priority:      priority,
		Status:        domain.StatusTodo,
		DueDate:       input.DueDate,
		CreatedBy:     actor.ID,
		AssignedTo:    input.AssignedTo,
		Attachments:   input.Attachments,
		TodoChecklist: input.TodoChecklist,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.record(ctx, created.ID, actor, domain.ActivityTaskCreated)
	return uc.view(ctx, created)
}

// Get returns a single task with resolved assignees.
func (uc *UseCase) Get(ctx context.Context, id string) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, task)
}

// Update merges the patch over the stored task: zero-valued fields default
// to the existing value. Status and progress are never re-derived here.
// Any authenticated actor may call this.
func (uc *UseCase) Update(ctx context.Context, actor domain.Actor, id string, input UpdateInput) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Description != "" {
		task.Description = input.Description
	}
	if input.Priority != "" {
		if !input.Priority.Valid() {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid priority")
		}
		task.Priority = input.Priority
	}
	if !input.DueDate.IsZero() {
		task.DueDate = input.DueDate
	}
	if input.TodoChecklist != nil {
		task.TodoChecklist = input.TodoChecklist
	}
	if input.Attachments != nil {
		task.Attachments = input.Attachments
	}
	if input.AssignedTo != nil {
		if len(input.AssignedTo) == 0 {
			return nil, domain.ErrAssigneesNotArray
		}
		task.AssignedTo = input.AssignedTo
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, task.ID, actor, domain.ActivityTaskUpdated)
	return uc.view(ctx, task)
}

// Delete removes a task permanently. Admin only.
func (uc *UseCase) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !domain.CanDeleteTask(actor) {
		return domain.ErrForbidden
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.record(ctx, id, actor, domain.ActivityTaskDeleted)
	return nil
}

// Query lists the tasks visible to the actor, optionally filtered by
// status, together with the per-status summary.
func (uc *UseCase) Query(ctx context.Context, actor domain.Actor, statusFilter string) (*QueryResult, error) {
	status := domain.Status(statusFilter)
	if statusFilter == StatusFilterAll {
		status = ""
	}

	scope := domain.TaskScope(actor)

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{AssignedTo: scope, Status: status})
	if err != nil {
		return nil, err
	}

	views, err := uc.views(ctx, tasks)
	if err != nil {
		return nil, err
	}

	summary, err := uc.statusSummary(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &QueryResult{Tasks: views, StatusSummary: summary}, nil
}

// UpdateStatus sets the status directly. Allowed for admins and assignees.
// Completing a task forces the whole checklist to done.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.Status) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpdateProgress(actor, task) {
		return nil, domain.ErrForbidden
	}

	if status == "" {
		status = task.Status
	}
	if !status.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "invalid status")
	}

	task.SetStatus(status)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, task.ID, actor, domain.ActivityStatusChanged)
	return uc.view(ctx, task)
}

// UpdateChecklist replaces the checklist wholesale and re-derives progress
// and status. Allowed for admins and assignees.
func (uc *UseCase) UpdateChecklist(ctx context.Context, actor domain.Actor, id string, items []domain.TodoItem) (*View, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanUpdateProgress(actor, task) {
		return nil, domain.ErrForbidden
	}

	task.ReplaceChecklist(items)

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	uc.record(ctx, task.ID, actor, domain.ActivityChecklistUpdated)
	return uc.view(ctx, task)
}

func (uc *UseCase) statusSummary(ctx context.Context, scope string) (StatusSummary, error) {
	var summary StatusSummary
	var err error

	if summary.All, err = uc.tasks.Count(ctx, repository.TaskFilter{AssignedTo: scope}); err != nil {
		return summary, err
	}
	if summary.Todo, err = uc.tasks.Count(ctx, repository.TaskFilter{AssignedTo: scope, Status: domain.StatusTodo}); err != nil {
		return summary, err
	}
	if summary.InProgress, err = uc.tasks.Count(ctx, repository.TaskFilter{AssignedTo: scope, Status: domain.StatusInProgress}); err != nil {
		return summary, err
	}
	if summary.Completed, err = uc.tasks.Count(ctx, repository.TaskFilter{AssignedTo: scope, Status: domain.StatusCompleted}); err != nil {
		return summary, err
	}
	return summary, nil
}

func (uc *UseCase) view(ctx context.Context, task *domain.Task) (*View, error) {
	assignees, err := uc.users.Summaries(ctx, task.AssignedTo)
	if err != nil {
		return nil, err
	}
	return &View{
		Task:               *task,
		AssignedTo:         assignees,
		CompletedTodoCount: domain.CompletedTodoCount(task.TodoChecklist),
	}, nil
}

func (uc *UseCase) views(ctx context.Context, tasks []domain.Task) ([]View, error) {
	// Resolve every assignee across the page in one round trip.
	seen := make(map[string]struct{})
	var ids []string
	for _, task := range tasks {
		for _, id := range task.AssignedTo {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	summaries, err := uc.users.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.UserSummary, len(summaries))
	for _, summary := range summaries {
		byID[summary.ID] = summary
	}

	views := make([]View, 0, len(tasks))
	for _, task := range tasks {
		assignees := make([]domain.UserSummary, 0, len(task.AssignedTo))
		for _, id := range task.AssignedTo {
			if summary, ok := byID[id]; ok {
				assignees = append(assignees, summary)
			}
		}
		views = append(views, View{
			Task:               task,
			AssignedTo:         assignees,
			CompletedTodoCount: domain.CompletedTodoCount(task.TodoChecklist),
		})
	}
	return views, nil
}

func (uc *UseCase) record(ctx context.Context, taskID string, actor domain.Actor, action domain.ActivityAction) {
	if uc.activity == nil {
		return
	}
	record := domain.ActivityRecord{
		TaskID:    taskID,
		ActorID:   actor.ID,
		Action:    action,
		Timestamp: time.Now(),
	}
	if err := uc.activity.Record(ctx, record); err != nil {
		uc.logger.Warn("failed to record task activity",
			zap.String("task_id", taskID),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
