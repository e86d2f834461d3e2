package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// GenerateVenuesRequest is the body of POST /events/{event_id}/venues/generate/
type GenerateVenuesRequest struct {
	Location string  `json:"location"`
	RadiusKm float64 `json:"radius_km"`
}

type VenueController struct {
	base
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{base: base{Logger: logger}, Service: svc}
}

// ListVenues godoc
// @Summary List venue suggestions
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.VenueSuggestion}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/venues/ [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	venues, err := c.Service.ListVenues(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if venues == nil {
		venues = []*domain.VenueSuggestion{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// UpdateVenue godoc
// @Summary Update a venue suggestion
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param venue_id path string true "Venue ID (UUID)"
// @Param body body domain.VenuePatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.VenueSuggestion}
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/venues/{venue_id}/ [patch]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	eventID, venueID, userID, ok := childActor(w, r, ParamVenueID)
	if !ok {
		return
	}
	var patch domain.VenuePatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	venue, err := c.Service.UpdateVenue(r.Context(), eventID, venueID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue suggestion
// @Tags venues
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param venue_id path string true "Venue ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/venues/{venue_id}/ [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	eventID, venueID, userID, ok := childActor(w, r, ParamVenueID)
	if !ok {
		return
	}
	if err := c.Service.DeleteVenue(r.Context(), eventID, venueID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateVenues godoc
// @Summary Generate venue suggestions
// @Description Replaces the event's venues with drafted suggestions near location. Each one is geocoded best-effort.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body GenerateVenuesRequest true "Search center"
// @Success 201 {object} helpers.APIResponse{data=[]domain.VenueSuggestion}
// @Failure 400 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError
// @Router /events/{event_id}/venues/generate/ [post]
func (c *VenueController) GenerateVenues(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req GenerateVenuesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	search := domain.VenueSearch{Location: strings.TrimSpace(req.Location), RadiusKm: req.RadiusKm}
	venues, err := c.Service.GenerateVenues(r.Context(), eventID, userID, search)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venues)
}
