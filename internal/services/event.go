package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

const preferenceDateLayout = "2006-01-02"

type eventService struct {
	eventScope
	tx          domain.Transactor
	editorRepo  domain.EventEditorRepository
	versionRepo domain.EventVersionRepository
	editLogs    domain.EditLogService
	generator   domain.ContentGenerator
	calendar    domain.CalendarRenderer
	timeouts    Timeouts
}

// EventDeps groups the collaborators of the event store.
type EventDeps struct {
	Tx        domain.Transactor
	Perms     domain.PermissionEvaluator
	Events    domain.EventRepository
	Editors   domain.EventEditorRepository
	Versions  domain.EventVersionRepository
	Venues    domain.VenueRepository
	EditLogs  domain.EditLogService
	Generator domain.ContentGenerator
	Calendar  domain.CalendarRenderer
	Timeouts  Timeouts
}

func NewEventService(d EventDeps) domain.EventService {
	return &eventService{
		eventScope:  eventScope{perms: d.Perms, events: d.Events, venues: d.Venues},
		tx:          d.Tx,
		editorRepo:  d.Editors,
		versionRepo: d.Versions,
		editLogs:    d.EditLogs,
		generator:   d.Generator,
		calendar:    d.Calendar,
		timeouts:    d.Timeouts,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actorID string, e *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if e.Status == "" {
		e.Status = domain.StatusDraft
	}
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.createOwned(ctx, actorID, e); err != nil {
		return nil, err
	}
	return e, nil
}

// createOwned stores the event and grants the creator the owner role in one transaction.
func (s *eventService) createOwned(ctx context.Context, actorID string, e *domain.Event) error {
	e.CreatedBy = actorID
	e.LatestVersionID = nil
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.events.Create(ctx, e); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		grant := &domain.EventEditor{EventID: e.ID, UserID: actorID, Role: domain.RoleOwner}
		if err := s.editorRepo.Add(ctx, grant); err != nil {
			return fmt.Errorf("grant owner: %w", err)
		}
		return nil
	})
}

func (s *eventService) GenerateEvent(ctx context.Context, actorID string, prefs *domain.EventPreferences) (*domain.GeneratedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	fields := map[string]string{}
	day, err := time.Parse(preferenceDateLayout, strings.TrimSpace(prefs.Date))
	if err != nil {
		fields["date"] = "must be YYYY-MM-DD"
	}
	if strings.TrimSpace(prefs.Type) == "" {
		fields["type"] = "must not be empty"
	}
	if prefs.Budget < 0 {
		fields["budget"] = "must not be negative"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}

	var draft domain.EventDraft
	if err := s.generator.Generate(ctx, domain.PromptEventDraft, promptInput{Prefs: prefs}, &draft); err != nil {
		return nil, err
	}

	e := &domain.Event{
		Name:              draft.Name.First(),
		Description:       draft.Description.First(),
		Slogan:            draft.Slogan.First(),
		TargetAudience:    prefs.TargetAudience,
		ExpectedAttendees: draft.ExpectedAttendees,
		StartTime:         day.UTC(),
		EndTime:           day.UTC().Add(24*time.Hour - time.Second),
		Type:              prefs.Type,
		Budget:            prefs.Budget,
		Status:            domain.StatusDraft,
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("%w: generated event: %v", domain.ErrUpstreamGeneration, err)
	}
	if err := s.createOwned(ctx, actorID, e); err != nil {
		return nil, err
	}
	return &domain.GeneratedEvent{Event: e, Suggestions: &draft}, nil
}

func (s *eventService) GetEvent(ctx context.Context, eventID, actorID string, includeVersions bool) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	detail := &domain.EventDetail{Event: e}
	if includeVersions {
		versions, err := s.versionRepo.ListByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("list versions: %w", err)
		}
		if versions == nil {
			versions = []*domain.EventVersion{}
		}
		detail.Versions = versions
	}
	return detail, nil
}

func (s *eventService) ListEvents(ctx context.Context, actorID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	events, err := s.events.ListByUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// UpdateEvent applies patch under the event row lock. Edit logs for the changed fields are
// written before the row itself, and both roll back together.
func (s *eventService) UpdateEvent(ctx context.Context, eventID, actorID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	var updated *domain.Event
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
			return err
		}
		if patch.Replace {
			if err := patch.RequireComplete(); err != nil {
				return err
			}
		}
		current, err := s.events.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			return notFoundOr(err, "lock event")
		}
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return err
		}
		changes := domain.DiffTracked(current, next)
		if len(changes) == 0 {
			updated = current
			return nil
		}
		if err := s.editLogs.Record(ctx, eventID, actorID, changes); err != nil {
			return err
		}
		if err := s.events.Update(ctx, next); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.events.DeleteCascade(ctx, eventID); err != nil {
			return notFoundOr(err, "delete event")
		}
		return nil
	})
}

func (s *eventService) ExportCalendar(ctx context.Context, eventID, actorID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	venues, err := s.venues.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	var location string
	if len(venues) > 0 {
		location = venues[0].Name
		if addr := venues[0].Address; addr != "" && addr != domain.AddressUnknown {
			location += ", " + addr
		}
	}
	return s.calendar.Render(e, location)
}
