package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// GenerateRegistrationRequest is the optional body of POST /events/{event_id}/registrations/generate/
type GenerateRegistrationRequest struct {
	VenueID string `json:"venue_id"`
}

func (g GenerateRegistrationRequest) Validate() map[string]string {
	return validVenueRef(g.VenueID)
}

func validVenueRef(venueID string) map[string]string {
	if venueID = strings.TrimSpace(venueID); venueID == "" {
		return nil
	}
	if _, err := uuid.Parse(venueID); err != nil {
		return map[string]string{"venue_id": "must be a UUID"}
	}
	return nil
}

type RegistrationController struct {
	base
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{base: base{Logger: logger}, Service: svc}
}

// ListRegistrations godoc
// @Summary List registration forms
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.Registration}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/registrations/ [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	regs, err := c.Service.ListRegistrations(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// UpdateRegistration godoc
// @Summary Update a registration form
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param registration_id path string true "Registration ID (UUID)"
// @Param body body domain.RegistrationPatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/registrations/{registration_id}/ [patch]
func (c *RegistrationController) UpdateRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, regID, userID, ok := childActor(w, r, ParamRegistrationID)
	if !ok {
		return
	}
	var patch domain.RegistrationPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	reg, err := c.Service.UpdateRegistration(r.Context(), eventID, regID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}

// DeleteRegistration godoc
// @Summary Delete a registration form
// @Tags registrations
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param registration_id path string true "Registration ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/registrations/{registration_id}/ [delete]
func (c *RegistrationController) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, regID, userID, ok := childActor(w, r, ParamRegistrationID)
	if !ok {
		return
	}
	if err := c.Service.DeleteRegistration(r.Context(), eventID, regID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateRegistration godoc
// @Summary Generate a registration form
// @Description Replaces the event's registration form with a drafted one.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body GenerateRegistrationRequest false "Optional venue"
// @Success 201 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 404 {object} helpers.APIError "venue of another event"
// @Failure 502 {object} helpers.APIError
// @Router /events/{event_id}/registrations/generate/ [post]
func (c *RegistrationController) GenerateRegistration(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req GenerateRegistrationRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return
	}
	reg, err := c.Service.GenerateRegistration(r.Context(), eventID, userID, strings.TrimSpace(req.VenueID))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// PublishForm godoc
// @Summary Publish as a Google Form
// @Description Creates a Google Form from the registration and stores its responder URL.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param registration_id path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Registration}
// @Failure 400 {object} helpers.APIError "form has no fields"
// @Failure 503 {object} helpers.APIError "forms access token not configured"
// @Router /events/{event_id}/registrations/{registration_id}/google-form/ [post]
func (c *RegistrationController) PublishForm(w http.ResponseWriter, r *http.Request) {
	eventID, regID, userID, ok := childActor(w, r, ParamRegistrationID)
	if !ok {
		return
	}
	reg, err := c.Service.PublishForm(r.Context(), eventID, regID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reg)
}
