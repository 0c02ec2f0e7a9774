package domain

// Authorization rules are pure functions of the actor and the task; they
// perform no I/O so handlers, use cases and tests share the same decisions.

// CanCreateTask reports whether the actor may create tasks. Admin only.
func CanCreateTask(actor Actor) bool {
	return actor.IsAdmin()
}

// CanDeleteTask reports whether the actor may delete tasks. Admin only.
func CanDeleteTask(actor Actor) bool {
	return actor.IsAdmin()
}

// CanUpdateProgress reports whether the actor may change a task's status or
// checklist: admins always, otherwise only assignees.
func CanUpdateProgress(actor Actor, task *Task) bool {
	if actor.IsAdmin() {
		return true
	}
	return task.IsAssigned(actor.ID)
}

// TaskScope returns the assignee id the task list must be restricted to.
// Empty means unrestricted: admins see every task.
func TaskScope(actor Actor) string {
	if actor.IsAdmin() {
		return ""
	}
	return actor.ID
}
