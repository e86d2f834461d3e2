package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type editorService struct {
	tx             domain.Transactor
	perms          domain.PermissionEvaluator
	editorRepo     domain.EventEditorRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

func NewEditorService(tx domain.Transactor, perms domain.PermissionEvaluator, editorRepo domain.EventEditorRepository,
	userRepo domain.UserRepository, timeout time.Duration) domain.EditorService {
	return &editorService{
		tx:             tx,
		perms:          perms,
		editorRepo:     editorRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *editorService) ListEditors(ctx context.Context, eventID, actorID string) ([]*domain.EventEditor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionManage); err != nil {
		return nil, err
	}
	grants, err := s.editorRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list editors: %w", err)
	}
	if grants == nil {
		grants = []*domain.EventEditor{}
	}
	return grants, nil
}

func (s *editorService) AddEditor(ctx context.Context, eventID, actorID, userID, email string, role domain.Role) (*domain.EventEditor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionManage); err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	grant := &domain.EventEditor{
		EventID:  eventID,
		UserID:   user.ID,
		Role:     role,
		Username: user.Username,
		Email:    user.Email,
	}
	if err := s.editorRepo.Add(ctx, grant); err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, fmt.Errorf("add editor: %w", err)
	}
	return grant, nil
}

func (s *editorService) resolveUser(ctx context.Context, userID, email string) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case userID != "":
		user, err = s.userRepo.GetByID(ctx, userID)
	case strings.TrimSpace(email) != "":
		user, err = s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	default:
		return nil, domain.NewValidationError(map[string]string{"user_id": "user_id or email is required"})
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *editorService) UpdateEditorRole(ctx context.Context, eventID, actorID, userID string, role domain.Role) (*domain.EventEditor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var updated *domain.EventEditor
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.guardOwners(ctx, eventID, actorID, userID, &role); err != nil {
			return err
		}
		g, err := s.editorRepo.UpdateRole(ctx, eventID, userID, role)
		if err != nil {
			return notFoundOr(err, "update role")
		}
		updated = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *editorService) RemoveEditor(ctx context.Context, eventID, actorID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.guardOwners(ctx, eventID, actorID, userID, nil); err != nil {
			return err
		}
		if err := s.editorRepo.Remove(ctx, eventID, userID); err != nil {
			return notFoundOr(err, "remove editor")
		}
		return nil
	})
}

// guardOwners authorizes the actor, locks the event's grants and rejects a change that would
// leave the event without an owner.
func (s *editorService) guardOwners(ctx context.Context, eventID, actorID, userID string, newRole *domain.Role) error {
	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionManage); err != nil {
		return err
	}
	grants, err := s.editorRepo.LockByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("lock editors: %w", err)
	}
	return domain.EnsureOwnerRemains(grants, userID, newRole)
}
