package domain

import (
	"encoding/json"
	"time"
)

// Workflow is an owned resource. UserID is fixed at creation and never
// reassigned. State is opaque to this service (stored as JSONB, nil until
// the owner first writes it).
type Workflow struct {
	ID        int64
	UserID    int64
	Title     string
	State     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelongsTo is the single ownership predicate. Every read and write of a
// workflow must pass through it (or its SQL equivalent, the
// (id, user_id) conjunction) so that a foreign workflow is
// indistinguishable from a nonexistent one.
func (w Workflow) BelongsTo(userID int64) bool {
	return w.UserID == userID
}

// WorkflowPatch carries a partial update. A nil field keeps the previous
// value; a successful update always refreshes UpdatedAt, even when the
// supplied values equal the existing ones.
type WorkflowPatch struct {
	Title *string
	State json.RawMessage
}
