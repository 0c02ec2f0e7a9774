package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, title, description, priority, status, due_date, created_by, assigned_to, attachments, todo_checklist, progress, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	  AND ($2 = '' OR status = $2)
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, filter.AssignedTo, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, priority, status, due_date, created_by, assigned_to, attachments, todo_checklist, progress)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.DueDate,
		task.CreatedBy,
		textArray(task.AssignedTo),
		textArray(task.Attachments),
		marshalChecklist(task.TodoChecklist),
		task.Progress,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		priority = $4,
		status = $5,
		due_date = $6,
		assigned_to = $7,
		attachments = $8,
		todo_checklist = $9,
		progress = $10,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Priority),
		string(task.Status),
		task.DueDate,
		textArray(task.AssignedTo),
		textArray(task.Attachments),
		marshalChecklist(task.TodoChecklist),
		task.Progress,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Count(ctx context.Context, filter repository.TaskFilter) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	  AND ($2 = '' OR status = $2)
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, filter.AssignedTo, string(filter.Status)).Scan(&count)
	return count, err
}

func (r *taskRepository) CountOverdue(ctx context.Context, assignedTo string, before time.Time) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	  AND status <> $2
	  AND due_date < $3
	`
	var count int64
	err := r.pool.QueryRow(ctx, query, assignedTo, string(domain.StatusCompleted), before).Scan(&count)
	return count, err
}

func (r *taskRepository) CountByStatus(ctx context.Context, assignedTo string) (map[domain.Status]int64, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	GROUP BY status
	`
	rows, err := r.pool.Query(ctx, query, assignedTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Status]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.Status(status)] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) CountByPriority(ctx context.Context, assignedTo string) (map[domain.Priority]int64, error) {
	const query = `
	SELECT priority, COUNT(*)
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	GROUP BY priority
	`
	rows, err := r.pool.Query(ctx, query, assignedTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Priority]int64)
	for rows.Next() {
		var priority string
		var count int64
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[domain.Priority(priority)] = count
	}
	return counts, rows.Err()
}

func (r *taskRepository) Recent(ctx context.Context, assignedTo string, limit int) ([]domain.RecentTask, error) {
	const query = `
	SELECT title, status, priority, due_date, created_at
	FROM tasks
	WHERE ($1 = '' OR $1 = ANY(assigned_to))
	ORDER BY created_at DESC
	LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, assignedTo, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []domain.RecentTask
	for rows.Next() {
		var task domain.RecentTask
		var status, priority string
		if err := rows.Scan(&task.Title, &status, &priority, &task.DueDate, &task.CreatedAt); err != nil {
			return nil, err
		}
		task.Status = domain.Status(status)
		task.Priority = domain.Priority(priority)
		recent = append(recent, task)
	}
	return recent, rows.Err()
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		priority  string
		status    string
		checklist []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&priority,
		&status,
		&task.DueDate,
		&task.CreatedBy,
		&task.AssignedTo,
		&task.Attachments,
		&checklist,
		&task.Progress,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Priority = domain.Priority(priority)
	task.Status = domain.Status(status)
	if len(checklist) > 0 {
		_ = json.Unmarshal(checklist, &task.TodoChecklist)
	}

	return &task, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
