package domain

import "context"

// AddressUnknown is stored when a venue cannot be geocoded.
const AddressUnknown = "address unknown"

// VenueSuggestion is a candidate venue for an event.
// swagger:model VenueSuggestion
type VenueSuggestion struct {
	ID                  string  `json:"id"`
	EventID             string  `json:"event_id"`
	Name                string  `json:"name"`
	Address             string  `json:"address"`
	Capacity            int     `json:"capacity"`
	TransportationScore int     `json:"transportation_score"`
	MapURL              *string `json:"map_url"`
	IsOutdoor           bool    `json:"is_outdoor"`
}

type VenuePatch struct {
	Name                *string `json:"name,omitempty"`
	Address             *string `json:"address,omitempty"`
	Capacity            *int    `json:"capacity,omitempty"`
	TransportationScore *int    `json:"transportation_score,omitempty"`
	MapURL              *string `json:"map_url,omitempty"`
	IsOutdoor           *bool   `json:"is_outdoor,omitempty"`
}

func (p VenuePatch) Apply(v *VenueSuggestion) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Capacity != nil {
		v.Capacity = *p.Capacity
	}
	if p.TransportationScore != nil {
		v.TransportationScore = *p.TransportationScore
	}
	if p.MapURL != nil {
		v.MapURL = p.MapURL
	}
	if p.IsOutdoor != nil {
		v.IsOutdoor = *p.IsOutdoor
	}
}

func (v *VenueSuggestion) Validate() error {
	fields := map[string]string{}
	if v.Name == "" {
		fields["name"] = "must not be empty"
	}
	if v.Capacity < 0 {
		fields["capacity"] = "must not be negative"
	}
	if v.TransportationScore < 1 || v.TransportationScore > 5 {
		fields["transportation_score"] = "must be between 1 and 5"
	}
	return NewValidationError(fields)
}

// VenueSearch centers venue generation on a place.
type VenueSearch struct {
	Location string  `json:"location"`
	RadiusKm float64 `json:"radius_km"`
}

// GeoLocation is a resolved address.
type GeoLocation struct {
	FormattedAddress string
	Lat              float64
	Lng              float64
}

// Geocoder resolves a free-text place to an address and coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*GeoLocation, error)
}

type VenueRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*VenueSuggestion, error)
	GetByID(ctx context.Context, id string) (*VenueSuggestion, error)
	Update(ctx context.Context, v *VenueSuggestion) error
	Delete(ctx context.Context, id string) error
	ReplaceForEvent(ctx context.Context, eventID string, venues []*VenueSuggestion) error
}

type VenueService interface {
	ListVenues(ctx context.Context, eventID, actorID string) ([]*VenueSuggestion, error)
	UpdateVenue(ctx context.Context, eventID, venueID, actorID string, patch VenuePatch) (*VenueSuggestion, error)
	DeleteVenue(ctx context.Context, eventID, venueID, actorID string) error
	GenerateVenues(ctx context.Context, eventID, actorID string, search VenueSearch) ([]*VenueSuggestion, error)
}
