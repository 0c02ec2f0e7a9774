package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/domain"
	"github.com/taskgrid/backend/repository"
)

const (
	taskSheet = "Tasks Report"
	userSheet = "User Task Report"
)

// UseCase builds spreadsheet exports from the task and user stores.
type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		logger: logger,
	}
}

// ExportTasks renders every task as one row of the per-task detail schema.
func (uc *UseCase) ExportTasks(ctx context.Context) (*excelize.File, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	summaries, err := uc.assigneeIndex(ctx, tasks)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", taskSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Task ID", "Title", "Description", "Priority", "Status", "Due Date", "Assigned To"}
	if err := f.SetSheetRow(taskSheet, "A1", &header); err != nil {
		return nil, err
	}
	widths := []float64{20, 30, 50, 15, 20, 20, 50}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(taskSheet, col, col, width)
	}

	for i, task := range tasks {
		assigned := "Unassigned"
		if names := assigneeNames(task.AssignedTo, summaries); len(names) > 0 {
			assigned = strings.Join(names, ", ")
		}
		row := []interface{}{
			task.ID,
			task.Title,
			task.Description,
			string(task.Priority),
			string(task.Status),
			task.DueDate.Format("2006-01-02"),
			assigned,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(taskSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ExportUsers renders the per-user task-count summary schema.
func (uc *UseCase) ExportUsers(ctx context.Context) (*excelize.File, error) {
	users, err := uc.users.List(ctx, "")
	if err != nil {
		return nil, err
	}
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	type userRow struct {
		name       string
		email      string
		total      int64
		todo       int64
		inProgress int64
		completed  int64
	}

	rowsByID := make(map[string]*userRow, len(users))
	order := make([]string, 0, len(users))
	for _, account := range users {
		rowsByID[account.ID] = &userRow{name: account.Name, email: account.Email}
		order = append(order, account.ID)
	}

	for _, task := range tasks {
		for _, id := range task.AssignedTo {
			row, ok := rowsByID[id]
			if !ok {
				continue
			}
			row.total++
			switch task.Status {
			case domain.StatusTodo:
				row.todo++
			case domain.StatusInProgress:
				row.inProgress++
			case domain.StatusCompleted:
				row.completed++
			}
		}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", userSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"User Name", "Email", "Total Assigned Tasks", "Pending Tasks", "In Progress Tasks", "Completed Tasks"}
	if err := f.SetSheetRow(userSheet, "A1", &header); err != nil {
		return nil, err
	}
	widths := []float64{30, 30, 15, 15, 20, 20}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(userSheet, col, col, width)
	}

	for i, id := range order {
		row := rowsByID[id]
		values := []interface{}{row.name, row.email, row.total, row.todo, row.inProgress, row.completed}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(userSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (uc *UseCase) assigneeIndex(ctx context.Context, tasks []domain.Task) (map[string]domain.UserSummary, error) {
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
	index := make(map[string]domain.UserSummary, len(summaries))
	for _, summary := range summaries {
		index[summary.ID] = summary
	}
	return index, nil
}

func assigneeNames(ids []string, index map[string]domain.UserSummary) []string {
	var names []string
	for _, id := range ids {
		if summary, ok := index[id]; ok {
			names = append(names, fmt.Sprintf("%s (%s)", summary.Name, summary.Email))
		}
	}
	return names
}
