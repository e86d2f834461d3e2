package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

const maxChangesSummaryLen = 1000

// SaveVersionRequest is the optional body of POST /events/{event_id}/save-version/
type SaveVersionRequest struct {
	ChangesSummary string `json:"changes_summary"`
}

func (s SaveVersionRequest) Validate() map[string]string {
	if utf8.RuneCountInString(s.ChangesSummary) > maxChangesSummaryLen {
		return map[string]string{"changes_summary": "must be at most 1000 characters"}
	}
	return nil
}

type VersionController struct {
	base
	Service domain.VersionService
}

func NewVersionController(logger *slog.Logger, svc domain.VersionService) *VersionController {
	return &VersionController{base: base{Logger: logger}, Service: svc}
}

// SaveVersion godoc
// @Summary Save a version
// @Description Snapshots the tracked fields as the next version number and points the event at it.
// @Tags versions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body SaveVersionRequest false "Optional summary"
// @Success 201 {object} helpers.APIResponse{data=domain.EventVersion}
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/save-version/ [post]
func (c *VersionController) SaveVersion(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req SaveVersionRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return
	}
	version, err := c.Service.SaveVersion(r.Context(), eventID, userID, strings.TrimSpace(req.ChangesSummary))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, version)
}

// ListVersions godoc
// @Summary List versions
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.EventVersion}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/versions/ [get]
func (c *VersionController) ListVersions(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	versions, err := c.Service.ListVersions(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if versions == nil {
		versions = []*domain.EventVersion{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, versions)
}

// GetVersion godoc
// @Summary Get one version
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param version_id path string true "Version ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.EventVersion}
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError "unknown version or a version of another event"
// @Router /events/{event_id}/versions/{version_id}/ [get]
func (c *VersionController) GetVersion(w http.ResponseWriter, r *http.Request) {
	eventID, versionID, userID, ok := childActor(w, r, ParamVersionID)
	if !ok {
		return
	}
	version, err := c.Service.GetVersion(r.Context(), eventID, versionID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, version)
}

// Revert godoc
// @Summary Revert to a version
// @Description Restores the tracked fields from the version. Newer versions are kept and no version is created. Owner only.
// @Tags versions
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param version_id path string true "Version ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.Event}
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/revert/{version_id}/ [post]
func (c *VersionController) Revert(w http.ResponseWriter, r *http.Request) {
	eventID, versionID, userID, ok := childActor(w, r, ParamVersionID)
	if !ok {
		return
	}
	event, err := c.Service.Revert(r.Context(), eventID, versionID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
