package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyMember is returned when granting a role to a user who already holds one on the event.
var ErrAlreadyMember = errors.New("user already has a role on this event")

// ErrLastOwner is returned when a change would leave an event without any owner.
var ErrLastOwner = errors.New("event must keep at least one owner")

// EventEditor is a role grant relating one user to one event.
// swagger:model EventEditor
type EventEditor struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	AddedAt  time.Time `json:"added_at"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// EnsureOwnerRemains checks that setting userID's role to newRole (nil meaning revoke)
// leaves at least one owner among grants.
func EnsureOwnerRemains(grants []*EventEditor, userID string, newRole *Role) error {
	owners := 0
	targetIsOwner := false
	for _, g := range grants {
		if g.Role != RoleOwner {
			continue
		}
		owners++
		if g.UserID == userID {
			targetIsOwner = true
		}
	}
	if !targetIsOwner {
		return nil
	}
	if newRole != nil && *newRole == RoleOwner {
		return nil
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}

// EventEditorRepository defines storage for role grants.
type EventEditorRepository interface {
	// GetRole returns the user's role on the event, or ErrNotFound when there is no grant.
	GetRole(ctx context.Context, eventID, userID string) (Role, error)
	Add(ctx context.Context, grant *EventEditor) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventEditor, error)
	// LockByEventID returns the event's grants and locks them for the surrounding transaction.
	LockByEventID(ctx context.Context, eventID string) ([]*EventEditor, error)
	UpdateRole(ctx context.Context, eventID, userID string, role Role) (*EventEditor, error)
	Remove(ctx context.Context, eventID, userID string) error
}

// EditorService manages role grants on an event. Every operation requires the owner role.
type EditorService interface {
	ListEditors(ctx context.Context, eventID, actorID string) ([]*EventEditor, error)
	// AddEditor grants role to the user identified by userID, or by email when userID is empty.
	AddEditor(ctx context.Context, eventID, actorID, userID, email string, role Role) (*EventEditor, error)
	UpdateEditorRole(ctx context.Context, eventID, actorID, userID string, role Role) (*EventEditor, error)
	RemoveEditor(ctx context.Context, eventID, actorID, userID string) error
}
