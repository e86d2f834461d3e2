package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

// Timeouts bounds service calls. Generation applies to calls that reach the content generator.
type Timeouts struct {
	Request    time.Duration
	Generation time.Duration
}

// eventScope holds the lookups shared by every event-scoped service.
// The permission check always runs before any existence check.
type eventScope struct {
	perms  domain.PermissionEvaluator
	events domain.EventRepository
	venues domain.VenueRepository
	regs   domain.RegistrationRepository
}

func (s eventScope) authorize(ctx context.Context, eventID, actorID string, action domain.Action) error {
	return s.perms.Authorize(ctx, actorID, eventID, action)
}

func (s eventScope) event(ctx context.Context, eventID string) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, notFoundOr(err, "get event")
	}
	return e, nil
}

// venue resolves an optional venue reference. An empty id yields nil.
func (s eventScope) venue(ctx context.Context, eventID, venueID string) (*domain.VenueSuggestion, error) {
	if venueID == "" {
		return nil, nil
	}
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, notFoundOr(err, "get venue")
	}
	if err := belongsTo(eventID, v.EventID); err != nil {
		return nil, err
	}
	return v, nil
}

// registrationURL returns the published form link of the event, or "" when none exists yet.
func (s eventScope) registrationURL(ctx context.Context, eventID string) (string, error) {
	regs, err := s.regs.ListByEventID(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("list registrations: %w", err)
	}
	for _, r := range regs {
		if r.RegistrationURL != nil && *r.RegistrationURL != "" {
			return *r.RegistrationURL, nil
		}
	}
	return "", nil
}

// belongsTo reports a child owned by another event as not found.
func belongsTo(eventID, childEventID string) error {
	if eventID != childEventID {
		return domain.ErrNotFound
	}
	return nil
}

// notFoundOr maps a repository miss to ErrNotFound and wraps anything else.
func notFoundOr(err error, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
