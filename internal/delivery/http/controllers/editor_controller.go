package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// AddEditorRequest grants a role to a user identified by user_id or, failing that, email.
type AddEditorRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (a AddEditorRequest) Validate() map[string]string {
	errs := map[string]string{}
	userID := strings.TrimSpace(a.UserID)
	if userID == "" && strings.TrimSpace(a.Email) == "" {
		errs["user_id"] = "user_id or email is required"
	} else if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			errs["user_id"] = "must be a UUID"
		}
	}
	if _, err := domain.ParseRole(a.Role); err != nil {
		errs["role"] = "must be one of owner, editor, viewer"
	}
	return errs
}

// UpdateEditorRequest is the body of PUT /events/{event_id}/editors/{user_id}/
type UpdateEditorRequest struct {
	Role string `json:"role"`
}

func (u UpdateEditorRequest) Validate() map[string]string {
	if _, err := domain.ParseRole(u.Role); err != nil {
		return map[string]string{"role": "must be one of owner, editor, viewer"}
	}
	return nil
}

type EditorController struct {
	base
	Service domain.EditorService
}

func NewEditorController(logger *slog.Logger, svc domain.EditorService) *EditorController {
	return &EditorController{base: base{Logger: logger}, Service: svc}
}

// ListEditors godoc
// @Summary List role grants
// @Description Owner only.
// @Tags editors
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.EventEditor}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/editors/ [get]
func (c *EditorController) ListEditors(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	editors, err := c.Service.ListEditors(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if editors == nil {
		editors = []*domain.EventEditor{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, editors)
}

// AddEditor godoc
// @Summary Grant a role
// @Description Owner only. A user who already holds a role gets 409.
// @Tags editors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body AddEditorRequest true "Grantee and role"
// @Success 201 {object} helpers.APIResponse{data=domain.EventEditor}
// @Failure 400 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError "user not found"
// @Failure 409 {object} helpers.APIError
// @Router /events/{event_id}/editors/ [post]
func (c *EditorController) AddEditor(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req AddEditorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	grant, err := c.Service.AddEditor(r.Context(), eventID, userID, strings.TrimSpace(req.UserID), strings.TrimSpace(req.Email), role)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, grant)
}

// UpdateEditor godoc
// @Summary Change a role
// @Description Owner only. Demoting the last owner is rejected.
// @Tags editors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param user_id path string true "User ID (UUID)"
// @Param body body UpdateEditorRequest true "New role"
// @Success 200 {object} helpers.APIResponse{data=domain.EventEditor}
// @Failure 400 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/editors/{user_id}/ [put]
func (c *EditorController) UpdateEditor(w http.ResponseWriter, r *http.Request) {
	eventID, targetID, userID, ok := childActor(w, r, ParamUserID)
	if !ok {
		return
	}
	var req UpdateEditorRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	grant, err := c.Service.UpdateEditorRole(r.Context(), eventID, userID, targetID, role)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, grant)
}

// RemoveEditor godoc
// @Summary Revoke a role
// @Description Owner only. Revoking the last owner is rejected.
// @Tags editors
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param user_id path string true "User ID (UUID)"
// @Success 204
// @Failure 400 {object} helpers.APIError
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/editors/{user_id}/ [delete]
func (c *EditorController) RemoveEditor(w http.ResponseWriter, r *http.Request) {
	eventID, targetID, userID, ok := childActor(w, r, ParamUserID)
	if !ok {
		return
	}
	if err := c.Service.RemoveEditor(r.Context(), eventID, userID, targetID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
