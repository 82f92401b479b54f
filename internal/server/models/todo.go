package models

import "time"

// Todo is a task record. OwnerID is fixed at creation and never reassigned.
type Todo struct {
	ID          string
	OwnerID     string
	Task        string
	Description string
	IsDone      bool
	CreatedAt   time.Time
}
