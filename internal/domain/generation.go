package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PromptKind selects the prompt and result shape of a generation call.
type PromptKind string

const (
	PromptEventDraft       PromptKind = "event_draft"
	PromptTaskRoster       PromptKind = "task_roster"
	PromptVenueSuggestions PromptKind = "venue_suggestions"
	PromptRegistrationForm PromptKind = "registration_form"
	PromptInvitations      PromptKind = "invitations"
	PromptSocialPosts      PromptKind = "social_posts"
	PromptPosterCopy       PromptKind = "poster_copy"
	PromptPosterImage      PromptKind = "poster_image"
)

// TextGenerator sends a prompt to a language model and returns its raw text reply.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerationResult is a typed generation output that can check its own required keys.
type GenerationResult interface {
	Validate() error
}

// ContentGenerator renders the prompt for kind from input, calls the model and decodes the reply into out.
// Any unusable reply is reported as ErrUpstreamGeneration.
type ContentGenerator interface {
	Generate(ctx context.Context, kind PromptKind, input any, out GenerationResult) error
}

func missing(key string) error {
	return fmt.Errorf("missing %q", key)
}

// StringList decodes either a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// First returns the first non-blank entry.
func (l StringList) First() string {
	for _, s := range l {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// EventDraft is the reply for PromptEventDraft.
type EventDraft struct {
	Name                   StringList `json:"name"`
	Description            StringList `json:"description"`
	ExpectedAttendees      int        `json:"expected_attendees"`
	SuggestedTime          string     `json:"suggested_time"`
	SuggestedEventDuration string     `json:"suggested_event_duration"`
	Slogan                 StringList `json:"slogan"`
}

func (d *EventDraft) Validate() error {
	if d.Name.First() == "" {
		return missing("name")
	}
	if d.Description.First() == "" {
		return missing("description")
	}
	if d.ExpectedAttendees < 0 {
		return errors.New("expected_attendees must not be negative")
	}
	return nil
}

// TaskRosterEntry is one staffed role in a roster reply.
type TaskRosterEntry struct {
	Role        string `json:"role"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}

// TaskRoster is the reply for PromptTaskRoster.
type TaskRoster struct {
	Tasks []TaskRosterEntry `json:"task_summary_by_role"`
	Note  string            `json:"note,omitempty"`
}

func (r *TaskRoster) Validate() error {
	if len(r.Tasks) == 0 {
		return missing("task_summary_by_role")
	}
	for i, t := range r.Tasks {
		if strings.TrimSpace(t.Role) == "" {
			return fmt.Errorf("task_summary_by_role[%d]: %w", i, missing("role"))
		}
	}
	return nil
}

// VenueCandidate is one venue in a venue reply.
type VenueCandidate struct {
	Name                string `json:"name"`
	Capacity            int    `json:"capacity"`
	TransportationScore int    `json:"transportation_score"`
	IsOutdoor           bool   `json:"is_outdoor"`
}

// VenueSuggestions is the reply for PromptVenueSuggestions.
type VenueSuggestions struct {
	Venues []VenueCandidate `json:"venue_suggestions"`
}

func (v *VenueSuggestions) Validate() error {
	if len(v.Venues) == 0 {
		return missing("venue_suggestions")
	}
	for i, c := range v.Venues {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("venue_suggestions[%d]: %w", i, missing("name"))
		}
	}
	return nil
}

// RegistrationDraft is one form in a registration reply.
type RegistrationDraft struct {
	EventIntro string      `json:"event_intro"`
	FormTitle  string      `json:"form_title"`
	FormFields []FormField `json:"form_fields"`
}

// RegistrationForms is the reply for PromptRegistrationForm.
type RegistrationForms struct {
	Forms []RegistrationDraft `json:"registration-list"`
}

func (r *RegistrationForms) Validate() error {
	if len(r.Forms) == 0 {
		return missing("registration-list")
	}
	f := r.Forms[0]
	if strings.TrimSpace(f.FormTitle) == "" {
		return missing("form_title")
	}
	if len(f.FormFields) == 0 {
		return missing("form_fields")
	}
	return nil
}

// InvitationDraft is one letter in an invitation reply.
type InvitationDraft struct {
	Subject string `json:"invitation_letter_subject"`
	Body    string `json:"invitation_letter_body"`
}

// InvitationLetters is the reply for PromptInvitations.
type InvitationLetters struct {
	Letters []InvitationDraft `json:"invitation_list"`
}

func (l *InvitationLetters) Validate() error {
	if len(l.Letters) == 0 {
		return missing("invitation_list")
	}
	for i, d := range l.Letters {
		if strings.TrimSpace(d.Subject) == "" || strings.TrimSpace(d.Body) == "" {
			return fmt.Errorf("invitation_list[%d]: subject and body are required", i)
		}
	}
	return nil
}

// PostDraft is one post in a social post reply.
type PostDraft struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtag"`
}

// SocialPostDrafts is the reply for PromptSocialPosts.
type SocialPostDrafts struct {
	Posts []PostDraft `json:"post_list"`
}

func (s *SocialPostDrafts) Validate() error {
	if len(s.Posts) == 0 {
		return missing("post_list")
	}
	for i, p := range s.Posts {
		if strings.TrimSpace(p.Content) == "" {
			return fmt.Errorf("post_list[%d]: %w", i, missing("content"))
		}
	}
	return nil
}

// PosterCopy is the reply for PromptPosterCopy.
type PosterCopy struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
}

func (p *PosterCopy) Validate() error {
	if strings.TrimSpace(p.Headline) == "" {
		return missing("headline")
	}
	return nil
}

// PosterImage is the reply for PromptPosterImage.
type PosterImage struct {
	ImageBase64 string `json:"image_base64"`
}

func (p *PosterImage) Validate() error {
	if strings.TrimSpace(p.ImageBase64) == "" {
		return missing("image_base64")
	}
	return nil
}
