package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotSchemaVersion is the schema written into new snapshots.
const SnapshotSchemaVersion = 1

// EventSnapshot is the typed payload of a version. It holds exactly the tracked fields.
type EventSnapshot struct {
	SchemaVersion     int         `json:"schema_version"`
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
}

// SnapshotOf captures the tracked fields of e.
func SnapshotOf(e *Event) EventSnapshot {
	return EventSnapshot{
		SchemaVersion:     SnapshotSchemaVersion,
		Name:              e.Name,
		Description:       e.Description,
		Slogan:            e.Slogan,
		TargetAudience:    e.TargetAudience,
		ExpectedAttendees: e.ExpectedAttendees,
		StartTime:         e.StartTime.UTC(),
		EndTime:           e.EndTime.UTC(),
		Type:              e.Type,
		Budget:            e.Budget,
		Status:            e.Status,
	}
}

// ApplyTo returns a copy of e whose tracked fields equal the snapshot's.
func (s EventSnapshot) ApplyTo(e *Event) *Event {
	out := *e
	out.Name = s.Name
	out.Description = s.Description
	out.Slogan = s.Slogan
	out.TargetAudience = s.TargetAudience
	out.ExpectedAttendees = s.ExpectedAttendees
	out.StartTime = s.StartTime.UTC()
	out.EndTime = s.EndTime.UTC()
	out.Type = s.Type
	out.Budget = s.Budget
	out.Status = s.Status
	return &out
}

// DecodeSnapshot parses a stored payload. A payload without schema_version is read as version 1.
func DecodeSnapshot(raw []byte) (EventSnapshot, error) {
	var s EventSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return EventSnapshot{}, fmt.Errorf("%w: snapshot payload: %v", ErrInvalidInput, err)
	}
	if s.SchemaVersion == 0 {
		s.SchemaVersion = 1
	}
	if s.SchemaVersion > SnapshotSchemaVersion {
		return EventSnapshot{}, fmt.Errorf("%w: unsupported snapshot schema version %d", ErrInvalidInput, s.SchemaVersion)
	}
	return s, nil
}

// EventVersion is an immutable numbered snapshot of an event.
// swagger:model EventVersion
type EventVersion struct {
	ID             string        `json:"id"`
	EventID        string        `json:"event_id"`
	VersionNumber  int           `json:"version_number"`
	CreatedAt      time.Time     `json:"created_at"`
	CreatedBy      *string       `json:"created_by"`
	ChangesSummary string        `json:"changes_summary,omitempty"`
	Snapshot       EventSnapshot `json:"event_snapshot"`
}

// EventVersionRepository defines storage for versions. Versions are never updated.
type EventVersionRepository interface {
	Create(ctx context.Context, v *EventVersion) error
	// MaxNumber returns the highest version number of the event, or 0 when it has none.
	MaxNumber(ctx context.Context, eventID string) (int, error)
	GetByID(ctx context.Context, id string) (*EventVersion, error)
	// ListByEventID returns versions newest first.
	ListByEventID(ctx context.Context, eventID string) ([]*EventVersion, error)
}

// VersionService saves, lists and restores snapshots.
type VersionService interface {
	SaveVersion(ctx context.Context, eventID, actorID, changesSummary string) (*EventVersion, error)
	ListVersions(ctx context.Context, eventID, actorID string) ([]*EventVersion, error)
	GetVersion(ctx context.Context, eventID, versionID, actorID string) (*EventVersion, error)
	// Revert rewinds the live event to the version without touching the version history.
	Revert(ctx context.Context, eventID, versionID, actorID string) (*Event, error)
}
