package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCompleted EventStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCompleted:
		return true
	}
	return false
}

// Event is the root planning aggregate.
// swagger:model Event
type Event struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	Slogan            string      `json:"slogan"`
	TargetAudience    string      `json:"target_audience"`
	ExpectedAttendees int         `json:"expected_attendees"`
	StartTime         time.Time   `json:"start_time"`
	EndTime           time.Time   `json:"end_time"`
	Type              string      `json:"type"`
	Budget            int         `json:"budget"`
	Status            EventStatus `json:"status"`
	CreatedBy         string      `json:"created_by"`
	LatestVersionID   *string     `json:"latest_version_id"`
	CreatedAt         time.Time   `json:"created_at"`
	LastModified      time.Time   `json:"last_modified"`
}

// Validate checks the mutable fields of the event.
func (e *Event) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(e.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if strings.TrimSpace(e.Type) == "" {
		fields["type"] = "must not be empty"
	}
	if e.ExpectedAttendees < 0 {
		fields["expected_attendees"] = "must not be negative"
	}
	if e.Budget < 0 {
		fields["budget"] = "must not be negative"
	}
	if e.StartTime.IsZero() {
		fields["start_time"] = "is required"
	}
	if e.EndTime.IsZero() {
		fields["end_time"] = "is required"
	}
	if !e.StartTime.IsZero() && !e.EndTime.IsZero() && !e.EndTime.After(e.StartTime) {
		fields["end_time"] = "must be after start_time"
	}
	if !e.Status.Valid() {
		fields["status"] = "must be one of draft, published, completed"
	}
	return NewValidationError(fields)
}

// EventPatch holds client-settable fields. Nil pointers are left unchanged.
type EventPatch struct {
	Name              *string      `json:"name,omitempty"`
	Description       *string      `json:"description,omitempty"`
	Slogan            *string      `json:"slogan,omitempty"`
	TargetAudience    *string      `json:"target_audience,omitempty"`
	ExpectedAttendees *int         `json:"expected_attendees,omitempty"`
	StartTime         *time.Time   `json:"start_time,omitempty"`
	EndTime           *time.Time   `json:"end_time,omitempty"`
	Type              *string      `json:"type,omitempty"`
	Budget            *int         `json:"budget,omitempty"`
	Status            *EventStatus `json:"status,omitempty"`

	// Replace marks a full replacement; RequireComplete must pass before it is applied.
	Replace bool `json:"-"`
}

// RequireComplete reports the fields a full replacement must carry.
func (p EventPatch) RequireComplete() error {
	fields := map[string]string{}
	if p.Name == nil {
		fields["name"] = "is required"
	}
	if p.ExpectedAttendees == nil {
		fields["expected_attendees"] = "is required"
	}
	if p.StartTime == nil {
		fields["start_time"] = "is required"
	}
	if p.EndTime == nil {
		fields["end_time"] = "is required"
	}
	if p.Type == nil {
		fields["type"] = "is required"
	}
	if p.Budget == nil {
		fields["budget"] = "is required"
	}
	return NewValidationError(fields)
}

// Apply returns a copy of e with the patch applied.
func (p EventPatch) Apply(e *Event) *Event {
	out := *e
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Slogan != nil {
		out.Slogan = *p.Slogan
	}
	if p.TargetAudience != nil {
		out.TargetAudience = *p.TargetAudience
	}
	if p.ExpectedAttendees != nil {
		out.ExpectedAttendees = *p.ExpectedAttendees
	}
	if p.StartTime != nil {
		out.StartTime = storedTime(*p.StartTime)
	}
	if p.EndTime != nil {
		out.EndTime = storedTime(*p.EndTime)
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Budget != nil {
		out.Budget = *p.Budget
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	return &out
}

// Tracked field names, in snapshot order.
const (
	FieldName              = "name"
	FieldDescription       = "description"
	FieldSlogan            = "slogan"
	FieldTargetAudience    = "target_audience"
	FieldExpectedAttendees = "expected_attendees"
	FieldStartTime         = "start_time"
	FieldEndTime           = "end_time"
	FieldType              = "type"
	FieldBudget            = "budget"
	FieldStatus            = "status"
)

// TrackedFields lists the fields covered by snapshots and the edit log.
var TrackedFields = []string{
	FieldName, FieldDescription, FieldSlogan, FieldTargetAudience, FieldExpectedAttendees,
	FieldStartTime, FieldEndTime, FieldType, FieldBudget, FieldStatus,
}

// FieldValues returns the stringified value of every tracked field.
func (e *Event) FieldValues() map[string]string {
	return map[string]string{
		FieldName:              e.Name,
		FieldDescription:       e.Description,
		FieldSlogan:            e.Slogan,
		FieldTargetAudience:    e.TargetAudience,
		FieldExpectedAttendees: strconv.Itoa(e.ExpectedAttendees),
		FieldStartTime:         formatTime(e.StartTime),
		FieldEndTime:           formatTime(e.EndTime),
		FieldType:              e.Type,
		FieldBudget:            strconv.Itoa(e.Budget),
		FieldStatus:            string(e.Status),
	}
}

// storedTime reduces t to the microsecond precision of a timestamptz column.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return storedTime(t).Format(time.RFC3339Nano)
}

// FieldChange is one tracked field whose stringified value differs between two states.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// DiffTracked compares before and after field by field in TrackedFields order.
func DiffTracked(before, after *Event) []FieldChange {
	oldVals := before.FieldValues()
	newVals := after.FieldValues()
	var changes []FieldChange
	for _, f := range TrackedFields {
		if oldVals[f] != newVals[f] {
			changes = append(changes, FieldChange{Field: f, OldValue: oldVals[f], NewValue: newVals[f]})
		}
	}
	return changes
}

// EventDetail is an event optionally bundled with its version history.
type EventDetail struct {
	*Event
	Versions []*EventVersion `json:"versions,omitempty"`
}

// EventPreferences drive AI-assisted event creation.
type EventPreferences struct {
	Goal           string `json:"goal"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	Budget         int    `json:"budget"`
	TargetAudience string `json:"target_audience"`
	Atmosphere     string `json:"atmosphere"`
}

// GeneratedEvent is the event created from a draft together with every suggestion the draft offered.
type GeneratedEvent struct {
	Event       *Event      `json:"event"`
	Suggestions *EventDraft `json:"suggestions"`
}

// EventRepository defines storage for events. Methods join the transaction carried by ctx, if any.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetByIDForUpdate loads the event and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
	// ListByUser returns every event the user holds any grant on, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	SetLatestVersion(ctx context.Context, eventID, versionID string) error
	// DeleteCascade removes the event and every row that references it.
	DeleteCascade(ctx context.Context, id string) error
}

// EventService defines event-level operations.
type EventService interface {
	CreateEvent(ctx context.Context, actorID string, e *Event) (*Event, error)
	GenerateEvent(ctx context.Context, actorID string, prefs *EventPreferences) (*GeneratedEvent, error)
	GetEvent(ctx context.Context, eventID, actorID string, includeVersions bool) (*EventDetail, error)
	ListEvents(ctx context.Context, actorID string) ([]*Event, error)
	UpdateEvent(ctx context.Context, eventID, actorID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, actorID string) error
	ExportCalendar(ctx context.Context, eventID, actorID string) ([]byte, error)
}

// CalendarRenderer serializes an event as an iCalendar document.
type CalendarRenderer interface {
	Render(e *Event, location string) ([]byte, error)
}
