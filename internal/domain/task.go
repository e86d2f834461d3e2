package domain

import (
	"context"
	"time"
)

// TaskAssignment is one staffed role for an event.
// swagger:model TaskAssignment
type TaskAssignment struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// TaskPatch holds the client-settable task fields. Nil pointers are left unchanged.
type TaskPatch struct {
	Role        *string    `json:"role,omitempty"`
	Description *string    `json:"description,omitempty"`
	Count       *int       `json:"count,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

func (p TaskPatch) Apply(t *TaskAssignment) {
	if p.Role != nil {
		t.Role = *p.Role
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Count != nil {
		t.Count = *p.Count
	}
	if p.StartTime != nil {
		t.StartTime = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		t.EndTime = p.EndTime.UTC()
	}
}

func (t *TaskAssignment) Validate() error {
	fields := map[string]string{}
	if t.Role == "" {
		fields["role"] = "must not be empty"
	}
	if t.Count < 0 {
		fields["count"] = "must not be negative"
	}
	if t.StartTime.IsZero() || t.EndTime.IsZero() {
		fields["start_time"] = "start_time and end_time are required"
	} else if t.EndTime.Before(t.StartTime) {
		fields["end_time"] = "must not be before start_time"
	}
	return NewValidationError(fields)
}

// TaskRepository defines storage for task assignments.
type TaskRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*TaskAssignment, error)
	GetByID(ctx context.Context, id string) (*TaskAssignment, error)
	Create(ctx context.Context, t *TaskAssignment) error
	Update(ctx context.Context, t *TaskAssignment) error
	Delete(ctx context.Context, id string) error
	// ReplaceForEvent deletes the event's tasks and inserts tasks in their place.
	ReplaceForEvent(ctx context.Context, eventID string, tasks []*TaskAssignment) error
}

// TaskService manages an event's task roster.
type TaskService interface {
	ListTasks(ctx context.Context, eventID, actorID string) ([]*TaskAssignment, error)
	CreateTask(ctx context.Context, eventID, actorID string, t *TaskAssignment) (*TaskAssignment, error)
	GetTask(ctx context.Context, eventID, taskID, actorID string) (*TaskAssignment, error)
	UpdateTask(ctx context.Context, eventID, taskID, actorID string, patch TaskPatch) (*TaskAssignment, error)
	DeleteTask(ctx context.Context, eventID, taskID, actorID string) error
	// GenerateTasks replaces the roster with one drafted from the event.
	GenerateTasks(ctx context.Context, eventID, actorID string) ([]*TaskAssignment, error)
}
