package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChecklistProgress(t *testing.T) {
	tests := []struct {
		name  string
		items []TodoItem
		want  int
	}{
		{"empty checklist", nil, 0},
		{"half done", []TodoItem{{Text: "a", Completed: true}, {Text: "b"}}, 50},
		{"all done", []TodoItem{{Text: "a", Completed: true}, {Text: "b", Completed: true}}, 100},
		{"none done", []TodoItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}, 0},
		{"one of three rounds up", []TodoItem{{Text: "a", Completed: true}, {Text: "b"}, {Text: "c"}}, 33},
		{"two of three rounds up", []TodoItem{{Text: "a", Completed: true}, {Text: "b", Completed: true}, {Text: "c"}}, 67},
		{"five of six", []TodoItem{
			{Completed: true}, {Completed: true}, {Completed: true},
			{Completed: true}, {Completed: true}, {},
		}, 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChecklistProgress(tt.items))
		})
	}
}

func TestStatusForProgress(t *testing.T) {
	assert.Equal(t, StatusTodo, StatusForProgress(0))
	assert.Equal(t, StatusCompleted, StatusForProgress(100))
	for _, p := range []int{1, 33, 50, 99} {
		assert.Equal(t, StatusInProgress, StatusForProgress(p), "progress %d", p)
	}
}

func TestReplaceChecklistDerivesBothFields(t *testing.T) {
	task := &Task{Status: StatusTodo}

	task.ReplaceChecklist([]TodoItem{{Text: "a", Completed: true}, {Text: "b"}})
	assert.Equal(t, 50, task.Progress)
	assert.Equal(t, StatusInProgress, task.Status)

	task.ReplaceChecklist([]TodoItem{})
	assert.Equal(t, 0, task.Progress)
	assert.Equal(t, StatusTodo, task.Status)

	task.ReplaceChecklist([]TodoItem{{Text: "a", Completed: true}})
	assert.Equal(t, 100, task.Progress)
	assert.Equal(t, StatusCompleted, task.Status)
}

func TestReplaceChecklistIdempotent(t *testing.T) {
	task := &Task{}
	items := []TodoItem{{Text: "a", Completed: true}, {Text: "b"}, {Text: "c"}}

	task.ReplaceChecklist(items)
	progress, status := task.Progress, task.Status

	task.ReplaceChecklist(task.TodoChecklist)
	assert.Equal(t, progress, task.Progress)
	assert.Equal(t, status, task.Status)
}

func TestSetStatusCompletedForcesChecklist(t *testing.T) {
	task := &Task{
		Status:        StatusInProgress,
		Progress:      33,
		TodoChecklist: []TodoItem{{Text: "a", Completed: true}, {Text: "b"}, {Text: "c"}},
	}

	task.SetStatus(StatusCompleted)

	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, 100, task.Progress)
	for _, item := range task.TodoChecklist {
		assert.True(t, item.Completed)
	}
}

func TestSetStatusNonCompletedLeavesChecklistAlone(t *testing.T) {
	task := &Task{
		Status:        StatusTodo,
		Progress:      0,
		TodoChecklist: []TodoItem{{Text: "a"}, {Text: "b"}},
	}

	task.SetStatus(StatusInProgress)

	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, 0, task.Progress)
	assert.False(t, task.TodoChecklist[0].Completed)
	assert.False(t, task.TodoChecklist[1].Completed)
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.True(t, (&Task{Status: StatusTodo, DueDate: past}).IsOverdue(now))
	assert.True(t, (&Task{Status: StatusInProgress, DueDate: past}).IsOverdue(now))
	assert.False(t, (&Task{Status: StatusCompleted, DueDate: past}).IsOverdue(now))
	assert.False(t, (&Task{Status: StatusTodo, DueDate: future}).IsOverdue(now))
}

func TestStatusKey(t *testing.T) {
	assert.Equal(t, "Todo", StatusKey(StatusTodo))
	assert.Equal(t, "InProgress", StatusKey(StatusInProgress))
	assert.Equal(t, "Completed", StatusKey(StatusCompleted))
}

// The checklist wire key capitalizes the L: todoCheckList.
func TestTaskChecklistWireKey(t *testing.T) {
	b, err := json.Marshal(Task{TodoChecklist: []TodoItem{{Text: "a"}}})
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"todoCheckList":`)
	assert.NotContains(t, string(b), `"todoChecklist":`)
}
