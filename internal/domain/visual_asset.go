package domain

import (
	"context"
	"time"
)

// VisualAsset is a generated poster.
// swagger:model VisualAsset
type VisualAsset struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	ImageURL    string    `json:"image_url"`
	Headline    string    `json:"headline"`
	Subheadline string    `json:"subheadline"`
	Tone        string    `json:"tone"`
	ColorScheme string    `json:"color_scheme"`
	FontStyle   string    `json:"font_style"`
	LayoutStyle string    `json:"layout_style"`
	CreatedAt   time.Time `json:"created_at"`
}

// PosterRequest holds the style of a poster to generate.
type PosterRequest struct {
	Tone        string `json:"tone"`
	ColorScheme string `json:"color_scheme"`
	FontStyle   string `json:"font_style"`
	LayoutStyle string `json:"layout_style"`
	Language    string `json:"language"`
}

// MediaStore keeps binary media and returns the URL it is served from.
type MediaStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

type VisualAssetRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*VisualAsset, error)
	GetByID(ctx context.Context, id string) (*VisualAsset, error)
	Create(ctx context.Context, a *VisualAsset) error
	Delete(ctx context.Context, id string) error
}

type PosterService interface {
	ListPosters(ctx context.Context, eventID, actorID string) ([]*VisualAsset, error)
	DeletePoster(ctx context.Context, eventID, posterID, actorID string) error
	GeneratePoster(ctx context.Context, eventID, actorID string, req *PosterRequest) (*VisualAsset, error)
}
