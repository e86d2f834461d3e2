package services

import (
	"context"
	"fmt"

	"eventplanner/internal/domain"
)

type registrationService struct {
	eventScope
	tx        domain.Transactor
	regRepo   domain.RegistrationRepository
	generator domain.ContentGenerator
	forms     domain.FormBuilder
	timeouts  Timeouts
}

func NewRegistrationService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository, regRepo domain.RegistrationRepository, generator domain.ContentGenerator,
	forms domain.FormBuilder, timeouts Timeouts) domain.RegistrationService {
	return &registrationService{
		eventScope: eventScope{perms: perms, events: eventRepo, venues: venueRepo},
		tx:         tx,
		regRepo:    regRepo,
		generator:  generator,
		forms:      forms,
		timeouts:   timeouts,
	}
}

func (s *registrationService) ListRegistrations(ctx context.Context, eventID, actorID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}

func (s *registrationService) load(ctx context.Context, eventID, registrationID string) (*domain.Registration, error) {
	r, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, notFoundOr(err, "get registration")
	}
	if err := belongsTo(eventID, r.EventID); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *registrationService) UpdateRegistration(ctx context.Context, eventID, registrationID, actorID string, patch domain.RegistrationPatch) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, eventID, registrationID)
	if err != nil {
		return nil, err
	}
	patch.Apply(r)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.regRepo.Update(ctx, r); err != nil {
		return nil, notFoundOr(err, "update registration")
	}
	return r, nil
}

func (s *registrationService) DeleteRegistration(ctx context.Context, eventID, registrationID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	if _, err := s.load(ctx, eventID, registrationID); err != nil {
		return err
	}
	if err := s.regRepo.Delete(ctx, registrationID); err != nil {
		return notFoundOr(err, "delete registration")
	}
	return nil
}

func (s *registrationService) GenerateRegistration(ctx context.Context, eventID, actorID, venueID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	venue, err := s.venue(ctx, eventID, venueID)
	if err != nil {
		return nil, err
	}

	var reply domain.RegistrationForms
	if err := s.generator.Generate(ctx, domain.PromptRegistrationForm, promptInput{Event: e, Venue: venue}, &reply); err != nil {
		return nil, err
	}
	draft := reply.Forms[0]
	reg := &domain.Registration{
		EventID:    eventID,
		FormTitle:  draft.FormTitle,
		EventIntro: draft.EventIntro,
		FormFields: draft.FormFields,
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamGeneration, err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.regRepo.ReplaceForEvent(ctx, eventID, reg); err != nil {
			return fmt.Errorf("replace registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// PublishForm creates an external form from the stored draft and records its responder URL.
func (s *registrationService) PublishForm(ctx context.Context, eventID, registrationID, actorID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, eventID, registrationID)
	if err != nil {
		return nil, err
	}
	if len(r.FormFields) == 0 {
		return nil, domain.NewValidationError(map[string]string{"form_fields": "must not be empty"})
	}
	formURL, err := s.forms.CreateForm(ctx, r.FormTitle, r.EventIntro, r.FormFields)
	if err != nil {
		return nil, err
	}
	r.RegistrationURL = &formURL
	if err := s.regRepo.Update(ctx, r); err != nil {
		return nil, notFoundOr(err, "update registration")
	}
	return r, nil
}
