package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// EditLogPage is the data payload of GET /events/{event_id}/edit-logs/
type EditLogPage = helpers.Page[*domain.EditLog]

type EditLogController struct {
	base
	Service domain.EditLogService
}

func NewEditLogController(logger *slog.Logger, svc domain.EditLogService) *EditLogController {
	return &EditLogController{base: base{Logger: logger}, Service: svc}
}

// ListEditLogs godoc
// @Summary List edit logs
// @Description Field-level change history, newest first.
// @Tags edit-logs
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=controllers.EditLogPage}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/edit-logs/ [get]
func (c *EditLogController) ListEditLogs(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	logs, total, err := c.Service.ListEditLogs(r.Context(), eventID, userID, params)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(logs, params, total))
}
