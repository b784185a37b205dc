package domain

import "time"

// TaskHistoryRecord is the closing record of an assignment. At most one
// record exists per assignment; creation is idempotent and records are
// never updated or deleted by the engine.
type TaskHistoryRecord struct {
	ID           int64
	StartedAt    time.Time
	FinishedAt   time.Time
	Location     string
	AssignmentID int64

	CreatedAt time.Time
}
