package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"eventplanner/internal/domain"
)

type invitationService struct {
	eventScope
	tx        domain.Transactor
	logRepo   domain.EmailLogRepository
	generator domain.ContentGenerator
	email     domain.EmailService
	timeouts  Timeouts
	logger    *slog.Logger
	now       func() time.Time
}

func NewInvitationService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository, regRepo domain.RegistrationRepository,
	logRepo domain.EmailLogRepository, generator domain.ContentGenerator,
	email domain.EmailService, timeouts Timeouts, logger *slog.Logger) domain.InvitationService {
	return &invitationService{
		eventScope: eventScope{perms: perms, events: eventRepo, venues: venueRepo, regs: regRepo},
		tx:         tx,
		logRepo:    logRepo,
		generator:  generator,
		email:      email,
		timeouts:   timeouts,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *invitationService) ListInvitations(ctx context.Context, eventID, actorID string) ([]*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if logs == nil {
		logs = []*domain.EmailLog{}
	}
	return logs, nil
}

func (s *invitationService) CreateInvitation(ctx context.Context, eventID, actorID string, l *domain.EmailLog) (*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	l.EventID = eventID
	l.SentAt = nil
	if l.Status == "" {
		l.Status = domain.EmailQueued
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.logRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return l, nil
}

func (s *invitationService) GetInvitation(ctx context.Context, eventID, invitationID, actorID string) (*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	return s.load(ctx, eventID, invitationID)
}

func (s *invitationService) load(ctx context.Context, eventID, invitationID string) (*domain.EmailLog, error) {
	l, err := s.logRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, notFoundOr(err, "get invitation")
	}
	if err := belongsTo(eventID, l.EventID); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *invitationService) UpdateInvitation(ctx context.Context, eventID, invitationID, actorID string, patch domain.EmailLogPatch) (*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	l, err := s.load(ctx, eventID, invitationID)
	if err != nil {
		return nil, err
	}
	patch.Apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := s.logRepo.Update(ctx, l); err != nil {
		return nil, notFoundOr(err, "update invitation")
	}
	return l, nil
}

func (s *invitationService) DeleteInvitation(ctx context.Context, eventID, invitationID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	if _, err := s.load(ctx, eventID, invitationID); err != nil {
		return err
	}
	if err := s.logRepo.Delete(ctx, invitationID); err != nil {
		return notFoundOr(err, "delete invitation")
	}
	return nil
}

// GenerateInvitations drafts one letter per recipient, in recipient order, and appends them queued.
func (s *invitationService) GenerateInvitations(ctx context.Context, eventID, actorID string, req *domain.InvitationRequest) ([]*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	if err := validateRecipients(req.Recipients); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	venue, err := s.venue(ctx, eventID, req.VenueID)
	if err != nil {
		return nil, err
	}

	link, err := s.registrationURL(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var reply domain.InvitationLetters
	in := promptInput{Event: e, Venue: venue, RegistrationURL: link, Invitation: req}
	if err := s.generator.Generate(ctx, domain.PromptInvitations, in, &reply); err != nil {
		return nil, err
	}
	if len(reply.Letters) != len(req.Recipients) {
		return nil, fmt.Errorf("%w: got %d letters for %d recipients", domain.ErrUpstreamGeneration, len(reply.Letters), len(req.Recipients))
	}

	logs := make([]*domain.EmailLog, len(req.Recipients))
	for i, r := range req.Recipients {
		logs[i] = &domain.EmailLog{
			EventID:        eventID,
			RecipientEmail: strings.TrimSpace(r.Email),
			RecipientName:  strings.TrimSpace(r.Name),
			Subject:        reply.Letters[i].Subject,
			Body:           reply.Letters[i].Body,
			Status:         domain.EmailQueued,
		}
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.logRepo.CreateBatch(ctx, logs); err != nil {
			return fmt.Errorf("create invitations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func validateRecipients(recipients []domain.Recipient) error {
	if len(recipients) == 0 {
		return domain.NewValidationError(map[string]string{"recipients": "at least one recipient is required"})
	}
	for i, r := range recipients {
		switch {
		case !emailRegexp.MatchString(strings.TrimSpace(r.Email)):
			return domain.NewValidationError(map[string]string{"recipients": fmt.Sprintf("recipient %d has an invalid email", i)})
		case utf8.RuneCountInString(strings.TrimSpace(r.Name)) > domain.MaxRecipientNameLen:
			return domain.NewValidationError(map[string]string{"recipients": fmt.Sprintf("recipient %d name exceeds %d characters", i, domain.MaxRecipientNameLen)})
		}
	}
	return nil
}

// SendAll delivers every invitation of the event that has not been sent yet.
// Individual failures are recorded on the log and counted; they do not abort the batch.
func (s *invitationService) SendAll(ctx context.Context, eventID, actorID string) (*domain.SendSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	pending, err := s.logRepo.ListUnsent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list unsent invitations: %w", err)
	}
	summary := &domain.SendSummary{}
	for _, l := range pending {
		if err := s.deliver(ctx, l); err != nil {
			return nil, err
		}
		if l.Status == domain.EmailSent {
			summary.Sent++
		} else {
			summary.Failed++
		}
	}
	return summary, nil
}

func (s *invitationService) SendOne(ctx context.Context, eventID, invitationID, actorID string) (*domain.EmailLog, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	l, err := s.load(ctx, eventID, invitationID)
	if err != nil {
		return nil, err
	}
	if l.Status == domain.EmailSent {
		return l, nil
	}
	if err := s.deliver(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// deliver sends one invitation and stores the outcome. Only a storage failure is returned.
func (s *invitationService) deliver(ctx context.Context, l *domain.EmailLog) error {
	err := s.email.SendInvitation(ctx, &domain.InvitationEmailData{
		Email:         l.RecipientEmail,
		RecipientName: l.RecipientName,
		Subject:       l.Subject,
		Body:          l.Body,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "invitation not delivered", "invitation_id", l.ID, "err", err)
		l.Status = domain.EmailFailed
	} else {
		sentAt := s.now().UTC()
		l.Status = domain.EmailSent
		l.SentAt = &sentAt
	}
	if err := s.logRepo.Update(ctx, l); err != nil {
		return notFoundOr(err, "update invitation")
	}
	return nil
}
