package domain

import "context"

// FormField is one input of a registration form.
type FormField struct {
	RegistrationName string `json:"registration_name"`
	Description      string `json:"description"`
	Type             string `json:"type,omitempty"`
	Required         bool   `json:"required"`
}

// Registration is the registration form drafted for an event. An event has at most one.
// swagger:model Registration
type Registration struct {
	ID              string      `json:"id"`
	EventID         string      `json:"event_id"`
	RegistrationURL *string     `json:"registration_url"`
	FormTitle       string      `json:"form_title"`
	EventIntro      string      `json:"event_intro"`
	FormFields      []FormField `json:"form_fields"`
}

type RegistrationPatch struct {
	RegistrationURL *string      `json:"registration_url,omitempty"`
	FormTitle       *string      `json:"form_title,omitempty"`
	EventIntro      *string      `json:"event_intro,omitempty"`
	FormFields      *[]FormField `json:"form_fields,omitempty"`
}

func (p RegistrationPatch) Apply(r *Registration) {
	if p.RegistrationURL != nil {
		r.RegistrationURL = p.RegistrationURL
	}
	if p.FormTitle != nil {
		r.FormTitle = *p.FormTitle
	}
	if p.EventIntro != nil {
		r.EventIntro = *p.EventIntro
	}
	if p.FormFields != nil {
		r.FormFields = *p.FormFields
	}
}

func (r *Registration) Validate() error {
	fields := map[string]string{}
	if r.FormTitle == "" {
		fields["form_title"] = "must not be empty"
	}
	for _, f := range r.FormFields {
		if f.RegistrationName == "" {
			fields["form_fields"] = "every field needs a registration_name"
			break
		}
	}
	return NewValidationError(fields)
}

// FormBuilder publishes a registration form to an external forms provider and returns its responder URL.
type FormBuilder interface {
	CreateForm(ctx context.Context, title, description string, fields []FormField) (string, error)
}

type RegistrationRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	GetByID(ctx context.Context, id string) (*Registration, error)
	Update(ctx context.Context, r *Registration) error
	Delete(ctx context.Context, id string) error
	// ReplaceForEvent removes the event's registrations and stores r as the only one.
	ReplaceForEvent(ctx context.Context, eventID string, r *Registration) error
}

type RegistrationService interface {
	ListRegistrations(ctx context.Context, eventID, actorID string) ([]*Registration, error)
	UpdateRegistration(ctx context.Context, eventID, registrationID, actorID string, patch RegistrationPatch) (*Registration, error)
	DeleteRegistration(ctx context.Context, eventID, registrationID, actorID string) error
	// GenerateRegistration drafts a form; venueID may be empty.
	GenerateRegistration(ctx context.Context, eventID, actorID, venueID string) (*Registration, error)
	PublishForm(ctx context.Context, eventID, registrationID, actorID string) (*Registration, error)
}
