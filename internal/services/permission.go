package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"eventplanner/internal/domain"
)

type permissionEvaluator struct {
	editorRepo domain.EventEditorRepository
}

// NewPermissionEvaluator returns a PermissionEvaluator backed by the grant table. Nothing is cached.
func NewPermissionEvaluator(editorRepo domain.EventEditorRepository) domain.PermissionEvaluator {
	return &permissionEvaluator{editorRepo: editorRepo}
}

func (p *permissionEvaluator) HasRole(ctx context.Context, userID, eventID string, allowed ...domain.Role) (bool, error) {
	if userID == "" || eventID == "" {
		return false, nil
	}
	role, err := p.editorRepo.GetRole(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get role: %w", err)
	}
	return slices.Contains(allowed, role), nil
}

func (p *permissionEvaluator) Authorize(ctx context.Context, userID, eventID string, action domain.Action) error {
	ok, err := p.HasRole(ctx, userID, eventID, action.AllowedRoles()...)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
