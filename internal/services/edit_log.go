package services

import (
	"context"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type editLogService struct {
	repo           domain.EditLogRepository
	perms          domain.PermissionEvaluator
	contextTimeout time.Duration
}

func NewEditLogService(repo domain.EditLogRepository, perms domain.PermissionEvaluator, timeout time.Duration) domain.EditLogService {
	return &editLogService{repo: repo, perms: perms, contextTimeout: timeout}
}

// Record is called inside the caller's transaction, before the new values are persisted.
func (s *editLogService) Record(ctx context.Context, eventID, actorID string, changes []domain.FieldChange) error {
	if len(changes) == 0 {
		return nil
	}
	var editor *string
	if actorID != "" {
		editor = &actorID
	}
	logs := make([]*domain.EditLog, 0, len(changes))
	for _, c := range changes {
		logs = append(logs, &domain.EditLog{
			EventID:      eventID,
			EditedBy:     editor,
			FieldChanged: c.Field,
			OldValue:     c.OldValue,
			NewValue:     c.NewValue,
		})
	}
	if err := s.repo.CreateBatch(ctx, logs); err != nil {
		return fmt.Errorf("record edit logs: %w", err)
	}
	return nil
}

func (s *editLogService) ListEditLogs(ctx context.Context, eventID, actorID string, params domain.PaginationParams) ([]*domain.EditLog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionView); err != nil {
		return nil, 0, err
	}
	logs, total, err := s.repo.ListByEventID(ctx, eventID, params.Normalized())
	if err != nil {
		return nil, 0, fmt.Errorf("list edit logs: %w", err)
	}
	return logs, total, nil
}
