package services

import (
	"context"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type versionService struct {
	tx             domain.Transactor
	perms          domain.PermissionEvaluator
	eventRepo      domain.EventRepository
	versionRepo    domain.EventVersionRepository
	editLogs       domain.EditLogService
	contextTimeout time.Duration
}

func NewVersionService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	versionRepo domain.EventVersionRepository, editLogs domain.EditLogService, timeout time.Duration) domain.VersionService {
	return &versionService{
		tx:             tx,
		perms:          perms,
		eventRepo:      eventRepo,
		versionRepo:    versionRepo,
		editLogs:       editLogs,
		contextTimeout: timeout,
	}
}

// SaveVersion numbers the snapshot max+1 while holding the event row lock, so concurrent saves
// of one event never collide.
func (s *versionService) SaveVersion(ctx context.Context, eventID, actorID, changesSummary string) (*domain.EventVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var saved *domain.EventVersion
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionEdit); err != nil {
			return err
		}
		e, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return notFoundOr(err, "lock event")
		}
		last, err := s.versionRepo.MaxNumber(ctx, eventID)
		if err != nil {
			return fmt.Errorf("max version number: %w", err)
		}
		v := &domain.EventVersion{
			EventID:        eventID,
			VersionNumber:  last + 1,
			CreatedBy:      &actorID,
			ChangesSummary: changesSummary,
			Snapshot:       domain.SnapshotOf(e),
		}
		if err := s.versionRepo.Create(ctx, v); err != nil {
			return fmt.Errorf("create version: %w", err)
		}
		if err := s.eventRepo.SetLatestVersion(ctx, eventID, v.ID); err != nil {
			return fmt.Errorf("set latest version: %w", err)
		}
		saved = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *versionService) ListVersions(ctx context.Context, eventID, actorID string) ([]*domain.EventVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionView); err != nil {
		return nil, err
	}
	versions, err := s.versionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	if versions == nil {
		versions = []*domain.EventVersion{}
	}
	return versions, nil
}

func (s *versionService) GetVersion(ctx context.Context, eventID, versionID, actorID string) (*domain.EventVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionView); err != nil {
		return nil, err
	}
	return s.load(ctx, eventID, versionID)
}

func (s *versionService) load(ctx context.Context, eventID, versionID string) (*domain.EventVersion, error) {
	v, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		return nil, notFoundOr(err, "get version")
	}
	if err := belongsTo(eventID, v.EventID); err != nil {
		return nil, err
	}
	return v, nil
}

// Revert copies the snapshot's tracked fields back onto the live event and points latest_version
// at it. Versions are neither created nor deleted; each field the revert changes gets an edit log row.
func (s *versionService) Revert(ctx context.Context, eventID, versionID, actorID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var reverted *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.perms.Authorize(ctx, actorID, eventID, domain.ActionManage); err != nil {
			return err
		}
		current, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return notFoundOr(err, "lock event")
		}
		v, err := s.load(ctx, eventID, versionID)
		if err != nil {
			return err
		}
		restored := v.Snapshot.ApplyTo(current)
		if err := s.editLogs.Record(ctx, eventID, actorID, domain.DiffTracked(current, restored)); err != nil {
			return err
		}
		if err := s.eventRepo.Update(ctx, restored); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		if err := s.eventRepo.SetLatestVersion(ctx, eventID, v.ID); err != nil {
			return fmt.Errorf("set latest version: %w", err)
		}
		restored.LatestVersionID = &v.ID
		reverted = restored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reverted, nil
}
