package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminOnlyRules(t *testing.T) {
	admin := Actor{ID: "a1", Role: RoleAdmin}
	user := Actor{ID: "u1", Role: RoleUser}

	assert.True(t, CanCreateTask(admin))
	assert.False(t, CanCreateTask(user))
	assert.True(t, CanDeleteTask(admin))
	assert.False(t, CanDeleteTask(user))
}

func TestCanUpdateProgress(t *testing.T) {
	task := &Task{AssignedTo: []string{"u1", "u2"}}

	assert.True(t, CanUpdateProgress(Actor{ID: "u1", Role: RoleUser}, task))
	assert.True(t, CanUpdateProgress(Actor{ID: "u2", Role: RoleUser}, task))
	assert.False(t, CanUpdateProgress(Actor{ID: "u3", Role: RoleUser}, task))

	// Admin role overrides the assignment restriction.
	assert.True(t, CanUpdateProgress(Actor{ID: "other", Role: RoleAdmin}, task))
}

func TestTaskScope(t *testing.T) {
	assert.Equal(t, "", TaskScope(Actor{ID: "a1", Role: RoleAdmin}))
	assert.Equal(t, "u1", TaskScope(Actor{ID: "u1", Role: RoleUser}))
}
