package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateInvitationRequest is the body of POST /events/{event_id}/invitations/. Status defaults to queued.
type CreateInvitationRequest struct {
	RecipientEmail string             `json:"recipient_email"`
	RecipientName  string             `json:"recipient_name"`
	Subject        string             `json:"subject"`
	Body           string             `json:"body"`
	Status         domain.EmailStatus `json:"status"`
}

// GenerateInvitationsRequest is the body of POST /events/{event_id}/invitations/generate/
type GenerateInvitationsRequest domain.InvitationRequest

func (g GenerateInvitationsRequest) Validate() map[string]string {
	return validVenueRef(g.VenueID)
}

type InvitationController struct {
	base
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{base: base{Logger: logger}, Service: svc}
}

// ListInvitations godoc
// @Summary List invitations
// @Description Every drafted invitation with its delivery status.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.EmailLog}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/invitations/ [get]
func (c *InvitationController) ListInvitations(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	logs, err := c.Service.ListInvitations(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if logs == nil {
		logs = []*domain.EmailLog{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, logs)
}

// CreateInvitation godoc
// @Summary Create an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body CreateInvitationRequest true "Invitation"
// @Success 201 {object} helpers.APIResponse{data=domain.EmailLog}
// @Failure 400 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/invitations/ [post]
func (c *InvitationController) CreateInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req CreateInvitationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	status := req.Status
	if status == "" {
		status = domain.EmailQueued
	}
	l, err := c.Service.CreateInvitation(r.Context(), eventID, userID, &domain.EmailLog{
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
		Subject:        req.Subject,
		Body:           req.Body,
		Status:         status,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, l)
}

// GetInvitation godoc
// @Summary Get an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param invitation_id path string true "Invitation ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.EmailLog}
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/invitations/{invitation_id}/ [get]
func (c *InvitationController) GetInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, invID, userID, ok := childActor(w, r, ParamInvitationID)
	if !ok {
		return
	}
	l, err := c.Service.GetInvitation(r.Context(), eventID, invID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, l)
}

// UpdateInvitation godoc
// @Summary Update an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param invitation_id path string true "Invitation ID (UUID)"
// @Param body body domain.EmailLogPatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.EmailLog}
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/invitations/{invitation_id}/ [patch]
func (c *InvitationController) UpdateInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, invID, userID, ok := childActor(w, r, ParamInvitationID)
	if !ok {
		return
	}
	var patch domain.EmailLogPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	l, err := c.Service.UpdateInvitation(r.Context(), eventID, invID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, l)
}

// DeleteInvitation godoc
// @Summary Delete an invitation
// @Tags invitations
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param invitation_id path string true "Invitation ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/invitations/{invitation_id}/ [delete]
func (c *InvitationController) DeleteInvitation(w http.ResponseWriter, r *http.Request) {
	eventID, invID, userID, ok := childActor(w, r, ParamInvitationID)
	if !ok {
		return
	}
	if err := c.Service.DeleteInvitation(r.Context(), eventID, invID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateInvitations godoc
// @Summary Draft invitations
// @Description Drafts one letter per recipient and appends them as queued.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body GenerateInvitationsRequest true "Recipients and style"
// @Success 201 {object} helpers.APIResponse{data=[]domain.EmailLog}
// @Failure 400 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError
// @Router /events/{event_id}/invitations/generate/ [post]
func (c *InvitationController) GenerateInvitations(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req GenerateInvitationsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	in := domain.InvitationRequest(req)
	logs, err := c.Service.GenerateInvitations(r.Context(), eventID, userID, &in)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, logs)
}

// SendAll godoc
// @Summary Send every unsent invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.SendSummary}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/invitations/send/ [post]
func (c *InvitationController) SendAll(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	summary, err := c.Service.SendAll(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// SendOne godoc
// @Summary Send one invitation
// @Description An invitation that was already sent is returned unchanged.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param invitation_id path string true "Invitation ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.EmailLog}
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/invitations/{invitation_id}/send/ [post]
func (c *InvitationController) SendOne(w http.ResponseWriter, r *http.Request) {
	eventID, invID, userID, ok := childActor(w, r, ParamInvitationID)
	if !ok {
		return
	}
	l, err := c.Service.SendOne(r.Context(), eventID, invID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, l)
}
