package domain

import (
	"context"
	"time"
	"unicode/utf8"
)

// MaxRecipientNameLen is the recipient_name column width, counted in characters.
const MaxRecipientNameLen = 25

// EmailStatus is the delivery state of an invitation.
type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

func (s EmailStatus) Valid() bool {
	switch s {
	case EmailQueued, EmailSent, EmailFailed:
		return true
	}
	return false
}

// EmailLog is an invitation addressed to one recipient, kept as delivery history.
// swagger:model EmailLog
type EmailLog struct {
	ID             string      `json:"id"`
	EventID        string      `json:"event_id"`
	RecipientEmail string      `json:"recipient_email"`
	RecipientName  string      `json:"recipient_name"`
	Subject        string      `json:"subject"`
	Body           string      `json:"body"`
	SentAt         *time.Time  `json:"sent_at"`
	Status         EmailStatus `json:"status"`
}

type EmailLogPatch struct {
	RecipientEmail *string      `json:"recipient_email,omitempty"`
	RecipientName  *string      `json:"recipient_name,omitempty"`
	Subject        *string      `json:"subject,omitempty"`
	Body           *string      `json:"body,omitempty"`
	Status         *EmailStatus `json:"status,omitempty"`
}

func (p EmailLogPatch) Apply(l *EmailLog) {
	if p.RecipientEmail != nil {
		l.RecipientEmail = *p.RecipientEmail
	}
	if p.RecipientName != nil {
		l.RecipientName = *p.RecipientName
	}
	if p.Subject != nil {
		l.Subject = *p.Subject
	}
	if p.Body != nil {
		l.Body = *p.Body
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
}

func (l *EmailLog) Validate() error {
	fields := map[string]string{}
	if l.RecipientEmail == "" {
		fields["recipient_email"] = "must not be empty"
	}
	if utf8.RuneCountInString(l.RecipientName) > MaxRecipientNameLen {
		fields["recipient_name"] = "must be at most 25 characters"
	}
	if l.Subject == "" {
		fields["subject"] = "must not be empty"
	}
	if !l.Status.Valid() {
		fields["status"] = "must be one of queued, sent, failed"
	}
	return NewValidationError(fields)
}

// Recipient is an invitee.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InvitationRequest drives invitation drafting. VenueID may be empty.
type InvitationRequest struct {
	Recipients []Recipient `json:"recipients"`
	Tone       string      `json:"tone"`
	WordsLimit int         `json:"words_limit"`
	Language   string      `json:"language"`
	VenueID    string      `json:"venue_id"`
}

// SendSummary counts the outcome of a bulk send.
type SendSummary struct {
	Sent   int `json:"sent_count"`
	Failed int `json:"failed_count"`
}

type EmailLogRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*EmailLog, error)
	ListUnsent(ctx context.Context, eventID string) ([]*EmailLog, error)
	GetByID(ctx context.Context, id string) (*EmailLog, error)
	Create(ctx context.Context, l *EmailLog) error
	CreateBatch(ctx context.Context, logs []*EmailLog) error
	Update(ctx context.Context, l *EmailLog) error
	Delete(ctx context.Context, id string) error
}

type InvitationService interface {
	ListInvitations(ctx context.Context, eventID, actorID string) ([]*EmailLog, error)
	CreateInvitation(ctx context.Context, eventID, actorID string, l *EmailLog) (*EmailLog, error)
	GetInvitation(ctx context.Context, eventID, invitationID, actorID string) (*EmailLog, error)
	UpdateInvitation(ctx context.Context, eventID, invitationID, actorID string, patch EmailLogPatch) (*EmailLog, error)
	DeleteInvitation(ctx context.Context, eventID, invitationID, actorID string) error
	// GenerateInvitations drafts one letter per recipient and appends them as queued.
	GenerateInvitations(ctx context.Context, eventID, actorID string, req *InvitationRequest) ([]*EmailLog, error)
	SendAll(ctx context.Context, eventID, actorID string) (*SendSummary, error)
	// SendOne delivers a single invitation. An already sent invitation is returned unchanged.
	SendOne(ctx context.Context, eventID, invitationID, actorID string) (*EmailLog, error)
}
