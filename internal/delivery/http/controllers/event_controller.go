package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateEventRequest is the request body for POST /events/. Status defaults to draft.
type CreateEventRequest struct {
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Slogan            string             `json:"slogan"`
	TargetAudience    string             `json:"target_audience"`
	ExpectedAttendees int                `json:"expected_attendees"`
	StartTime         time.Time          `json:"start_time"`
	EndTime           time.Time          `json:"end_time"`
	Type              string             `json:"type"`
	Budget            int                `json:"budget"`
	Status            domain.EventStatus `json:"status"`
}

func (c CreateEventRequest) event() *domain.Event {
	return &domain.Event{
		Name:              c.Name,
		Description:       c.Description,
		Slogan:            c.Slogan,
		TargetAudience:    c.TargetAudience,
		ExpectedAttendees: c.ExpectedAttendees,
		StartTime:         c.StartTime,
		EndTime:           c.EndTime,
		Type:              c.Type,
		Budget:            c.Budget,
		Status:            c.Status,
	}
}

type EventController struct {
	base
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{base: base{Logger: logger}, Service: svc}
}

// ListEvents godoc
// @Summary List events
// @Description Lists every event the caller holds any role on, newest first.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=[]domain.Event}
// @Failure 401 {object} helpers.APIError
// @Failure 500 {object} helpers.APIError
// @Router /events/ [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListEvents(r.Context(), userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event and grants the caller the owner role in one transaction.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event fields"
// @Success 201 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIError "validation_failed with field messages"
// @Failure 401 {object} helpers.APIError
// @Failure 500 {object} helpers.APIError
// @Router /events/ [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, req.event())
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GenerateEvent godoc
// @Summary Create an event from preferences
// @Description Drafts an event with the content generator, stores the first suggested name and slogan and returns every suggestion.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body domain.EventPreferences true "Event preferences; date is YYYY-MM-DD"
// @Success 201 {object} helpers.APIResponse{data=domain.GeneratedEvent}
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError "content generation failed"
// @Failure 503 {object} helpers.APIError "generator not configured"
// @Router /events/generate/ [post]
func (c *EventController) GenerateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := actor(w, r)
	if !ok {
		return
	}
	var prefs domain.EventPreferences
	if !helpers.DecodeAndValidate(w, r, &prefs) {
		return
	}
	generated, err := c.Service.GenerateEvent(r.Context(), userID, &prefs)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, generated)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event, optionally with its version history.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param include_versions query bool false "Embed versions newest first"
// @Success 200 {object} helpers.APIResponse{data=domain.EventDetail}
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/ [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	includeVersions := false
	if raw := r.URL.Query().Get("include_versions"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			helpers.WriteValidationError(w, map[string]string{"include_versions": "must be true or false"})
			return
		}
		includeVersions = v
	}
	detail, err := c.Service.GetEvent(r.Context(), eventID, userID, includeVersions)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description PUT replaces every required field, PATCH any subset. One edit-log row is written per changed field.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body domain.EventPatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 400 {object} helpers.APIError
// @Failure 401 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError "viewer or no grant"
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/update/ [put]
// @Router /events/{event_id}/update/ [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var patch domain.EventPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	patch.Replace = isReplace(r)
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and every record that belongs to it. Owner only.
// @Tags events
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 204
// @Failure 401 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/delete/ [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportCalendar godoc
// @Summary Export an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/calendar.ics [get]
func (c *EventController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	doc, err := c.Service.ExportCalendar(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="event-`+eventID+`.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
