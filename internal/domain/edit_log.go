package domain

import (
	"context"
	"time"
)

// EditLog is an append-only record of one field change.
// swagger:model EditLog
type EditLog struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	EditedBy     *string   `json:"edited_by"`
	EditedAt     time.Time `json:"edited_at"`
	FieldChanged string    `json:"field_changed"`
	OldValue     string    `json:"old_value"`
	NewValue     string    `json:"new_value"`
}

// EditLogRepository defines storage for edit logs.
type EditLogRepository interface {
	CreateBatch(ctx context.Context, logs []*EditLog) error
	// ListByEventID returns logs newest first along with the total count.
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*EditLog, int, error)
}

// EditLogService records and reads field-level history.
type EditLogService interface {
	// Record writes one row per change, attributed to actorID. It writes nothing for an empty change set.
	Record(ctx context.Context, eventID, actorID string, changes []FieldChange) error
	ListEditLogs(ctx context.Context, eventID, actorID string, params PaginationParams) ([]*EditLog, int, error)
}
