package domain

import "time"

// ActivityAction names a recorded task mutation.
type ActivityAction string

const (
	ActivityTaskCreated      ActivityAction = "task_created"
	ActivityTaskUpdated      ActivityAction = "task_updated"
	ActivityTaskDeleted      ActivityAction = "task_deleted"
	ActivityStatusChanged    ActivityAction = "status_changed"
	ActivityChecklistUpdated ActivityAction = "checklist_updated"
)

// ActivityRecord is one entry in the task audit trail. Recording is
// best-effort: failures are logged, never surfaced to the caller.
type ActivityRecord struct {
	ID        string         `json:"id"`
	TaskID    string         `json:"task_id"`
	ActorID   string         `json:"actor_id"`
	Action    ActivityAction `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
}
