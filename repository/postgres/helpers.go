package postgres

import (
	"encoding/json"

	"github.com/taskgrid/backend/domain"
)

func marshalChecklist(items []domain.TodoItem) []byte {
	if len(items) == 0 {
		return []byte("[]")
	}
	b, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// textArray coalesces a nil slice to an empty one: pgx encodes nil as SQL
// NULL, which the NOT NULL text[] columns reject, while an empty slice
// encodes as '{}'.
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
