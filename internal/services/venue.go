package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"eventplanner/internal/domain"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

type venueService struct {
	eventScope
	tx        domain.Transactor
	generator domain.ContentGenerator
	geocoder  domain.Geocoder
	timeouts  Timeouts
	logger    *slog.Logger
}

func NewVenueService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository, generator domain.ContentGenerator, geocoder domain.Geocoder,
	timeouts Timeouts, logger *slog.Logger) domain.VenueService {
	return &venueService{
		eventScope: eventScope{perms: perms, events: eventRepo, venues: venueRepo},
		tx:         tx,
		generator:  generator,
		geocoder:   geocoder,
		timeouts:   timeouts,
		logger:     logger,
	}
}

func (s *venueService) ListVenues(ctx context.Context, eventID, actorID string) ([]*domain.VenueSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	venues, err := s.venues.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if venues == nil {
		venues = []*domain.VenueSuggestion{}
	}
	return venues, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, eventID, venueID, actorID string, patch domain.VenuePatch) (*domain.VenueSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	v, err := s.venue(ctx, eventID, venueID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	patch.Apply(v)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := s.venues.Update(ctx, v); err != nil {
		return nil, notFoundOr(err, "update venue")
	}
	return v, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, eventID, venueID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	v, err := s.venue(ctx, eventID, venueID)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	if err := s.venues.Delete(ctx, venueID); err != nil {
		return notFoundOr(err, "delete venue")
	}
	return nil
}

// GenerateVenues replaces the event's venue suggestions. Every suggestion is geocoded
// best-effort; a failed lookup keeps the venue with AddressUnknown and no map URL.
func (s *venueService) GenerateVenues(ctx context.Context, eventID, actorID string, search domain.VenueSearch) ([]*domain.VenueSuggestion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	fields := map[string]string{}
	if strings.TrimSpace(search.Location) == "" {
		fields["location"] = "must not be empty"
	}
	if search.RadiusKm <= 0 {
		fields["radius_km"] = "must be positive"
	}
	if err := domain.NewValidationError(fields); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}

	center := s.geocode(ctx, search.Location)
	var reply domain.VenueSuggestions
	if err := s.generator.Generate(ctx, domain.PromptVenueSuggestions, promptInput{Event: e, Search: &search, Center: center}, &reply); err != nil {
		return nil, err
	}

	venues := make([]*domain.VenueSuggestion, 0, len(reply.Venues))
	for _, c := range reply.Venues {
		v := &domain.VenueSuggestion{
			EventID:             eventID,
			Name:                strings.TrimSpace(c.Name),
			Address:             domain.AddressUnknown,
			Capacity:            max(c.Capacity, 0),
			TransportationScore: min(max(c.TransportationScore, 1), 5),
			IsOutdoor:           c.IsOutdoor,
		}
		if loc := s.geocode(ctx, v.Name); loc != nil {
			v.Address = loc.FormattedAddress
			mapURL := mapsSearchURL + url.QueryEscape(v.Name+" "+loc.FormattedAddress)
			v.MapURL = &mapURL
		}
		venues = append(venues, v)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.venues.ReplaceForEvent(ctx, eventID, venues); err != nil {
			return fmt.Errorf("replace venues: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return venues, nil
}

func (s *venueService) geocode(ctx context.Context, query string) *domain.GeoLocation {
	loc, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.logger.WarnContext(ctx, "geocoding failed", "query", query, "err", err)
		return nil
	}
	return loc
}
