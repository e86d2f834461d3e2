package domain

import (
	"context"
	"fmt"
)

// Role is the permission level a user holds on one event.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every role, highest first.
var Roles = []Role{RoleOwner, RoleEditor, RoleViewer}

// ParseRole returns the role named by s or ErrInvalidInput.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOwner, RoleEditor, RoleViewer:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
}

// Action is an operation class gated by the permission table.
type Action int

const (
	// ActionView covers reading an event and listing its child resources.
	ActionView Action = iota
	// ActionEdit covers creating and updating event content, child resources and versions.
	ActionEdit
	// ActionManage covers deletes, editor grants and reverts.
	ActionManage
)

func (a Action) String() string {
	switch a {
	case ActionView:
		return "view"
	case ActionEdit:
		return "edit"
	case ActionManage:
		return "manage"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Can reports whether the role is allowed to perform the action.
//
//	          view  edit  manage
//	owner      x     x     x
//	editor     x     x
//	viewer     x
func (r Role) Can(a Action) bool {
	switch r {
	case RoleOwner:
		return a == ActionView || a == ActionEdit || a == ActionManage
	case RoleEditor:
		return a == ActionView || a == ActionEdit
	case RoleViewer:
		return a == ActionView
	}
	return false
}

// AllowedRoles returns the roles permitted to perform the action.
func (a Action) AllowedRoles() []Role {
	var out []Role
	for _, r := range Roles {
		if r.Can(a) {
			out = append(out, r)
		}
	}
	return out
}

// PermissionEvaluator decides whether a user may act on an event. Grants are read on every call.
type PermissionEvaluator interface {
	// HasRole reports whether the user holds a grant on the event whose role is in allowed.
	HasRole(ctx context.Context, userID, eventID string, allowed ...Role) (bool, error)
	// Authorize returns ErrForbidden unless the user holds a role permitted to perform the action.
	Authorize(ctx context.Context, userID, eventID string, action Action) error
}
