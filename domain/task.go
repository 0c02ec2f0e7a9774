package domain

import (
	"math"
	"time"
)

// Status is the lifecycle state of a task. The in-progress wire value
// carries a space; dashboard chart keys strip it (see StatusKey).
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Priority is the urgency bucket of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Statuses and Priorities enumerate every valid value in display order.
// Aggregations zero-fill against these so empty buckets still appear.
var (
	Statuses   = []Status{StatusTodo, StatusInProgress, StatusCompleted}
	Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}
)

func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusCompleted
}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// TodoItem is a single checklist entry within a task.
type TodoItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is the central entity: created by an admin, worked on by assignees.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      Priority   `json:"priority"`
	Status        Status     `json:"status"`
	DueDate       time.Time  `json:"dueDate"`
	CreatedBy     string     `json:"createdBy"`
	AssignedTo    []string   `json:"assignedTo"`
	Attachments   []string   `json:"attachments,omitempty"`
	TodoChecklist []TodoItem `json:"todoCheckList"`
	Progress      int        `json:"progress"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ChecklistProgress returns the completion percentage of a checklist,
// rounded to the nearest integer. An empty checklist is 0.
func ChecklistProgress(items []TodoItem) int {
	if len(items) == 0 {
		return 0
	}
	completed := CompletedTodoCount(items)
	return int(math.Round(float64(completed) / float64(len(items)) * 100))
}

// CompletedTodoCount counts checked items. Computed per call, never stored.
func CompletedTodoCount(items []TodoItem) int {
	count := 0
	for _, item := range items {
		if item.Completed {
			count++
		}
	}
	return count
}

// StatusForProgress derives a status from a progress percentage:
// 100 is Completed, 0 is Todo, anything between is In Progress.
func StatusForProgress(progress int) Status {
	switch {
	case progress == 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusTodo
	}
}

// ReplaceChecklist swaps in a new checklist wholesale and re-derives both
// progress and status. This is the only path that derives status from
// checklist state.
func (t *Task) ReplaceChecklist(items []TodoItem) {
	t.TodoChecklist = items
	t.Progress = ChecklistProgress(items)
	t.Status = StatusForProgress(t.Progress)
}

// SetStatus sets the status directly. Completing a task this way forces
// every checklist item to done and progress to 100; the sync runs in that
// direction only, other statuses leave the checklist untouched.
func (t *Task) SetStatus(status Status) {
	t.Status = status
	if status != StatusCompleted {
		return
	}
	for i := range t.TodoChecklist {
		t.TodoChecklist[i].Completed = true
	}
	t.Progress = 100
}

// IsAssigned reports whether the given user id is one of the assignees.
func (t *Task) IsAssigned(userID string) bool {
	if t == nil {
		return false
	}
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the task is past due and not yet completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t != nil && t.Status != StatusCompleted && t.DueDate.Before(now)
}

// StatusKey is the chart key for a status: the wire value with spaces removed.
func StatusKey(s Status) string {
	key := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			key = append(key, s[i])
		}
	}
	return string(key)
}
