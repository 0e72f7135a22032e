// Package models defines the core data structures for users and tasks.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the display name chosen at registration.
	Name string `json:"name"`
	// Email is the unique, case-sensitive login key.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// Status defines the set of valid task board stages.
type Status string

const (
	// StatusTodo is the initial backlog stage.
	StatusTodo Status = "todo"
	// StatusProgress marks a task being worked on.
	StatusProgress Status = "progress"
	// StatusReview marks a task awaiting review.
	StatusReview Status = "review"
	// StatusFinished marks a completed task.
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the four board stages.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusReview, StatusFinished:
		return true
	}
	return false
}

// Priority defines the set of valid task priority levels.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityUrgent Priority = "Urgent"
)

// Valid reports whether p is one of the three priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityUrgent:
		return true
	}
	return false
}

// Metadata is an open string-keyed mapping of extra task fields,
// stored as a JSONB sub-document.
type Metadata map[string]string

// Value implements driver.Valuer, marshalling the map to JSON.
// A nil map is stored as an empty object.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		m = Metadata{}
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB columns.
func (m *Metadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return fmt.Errorf("metadata: cannot scan %T", src)
}

// Task represents a single board item owned by a user.
type Task struct {
	// ID is the unique identifier for the task.
	ID string `json:"id"`
	// Title is the required short summary.
	Title string `json:"title"`
	// Description holds free-form details.
	Description string `json:"description"`
	// Status is the current board stage.
	Status Status `json:"status"`
	// Priority is the urgency level.
	Priority Priority `json:"priority"`
	// Deadline is an optional date string.
	Deadline string `json:"deadline"`
	// Metadata carries arbitrary extra fields.
	Metadata Metadata `json:"metadata"`
	// Author is the ID of the owning user.
	Author string `json:"author"`
	// CreatedAt and UpdatedAt are server-assigned timestamps.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskDraft is the client-supplied body for task creation.
// It carries no author field: the author is always the caller.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Deadline    string   `json:"deadline"`
	Metadata    Metadata `json:"metadata"`
}

// TaskPatch is a partial task update. Nil fields are left untouched;
// a non-nil metadata map replaces the stored mapping wholesale.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
}
