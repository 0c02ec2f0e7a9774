package transport

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken"`
}

// LoginRequest carries credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is a partial profile patch; empty fields keep the
// stored value.
type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TodoItemRequest is one checklist entry as sent over the wire.
type TodoItemRequest struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskRequest is the create/update payload. Absent or null arrays unmarshal
// to nil, which updates treat as "keep the stored value".
type TaskRequest struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Priority      string            `json:"priority"`
	DueDate       string            `json:"dueDate"`
	AssignedTo    []string          `json:"assignedTo"`
	Attachments   []string          `json:"attachments"`
	TodoChecklist []TodoItemRequest `json:"todoCheckList"`
}

// StatusUpdateRequest sets the task status directly.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ChecklistUpdateRequest replaces the checklist wholesale.
type ChecklistUpdateRequest struct {
	TodoChecklist []TodoItemRequest `json:"todoCheckList"`
}
