package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

type PosterController struct {
	base
	Service domain.PosterService
}

func NewPosterController(logger *slog.Logger, svc domain.PosterService) *PosterController {
	return &PosterController{base: base{Logger: logger}, Service: svc}
}

// ListPosters godoc
// @Summary List posters
// @Tags posters
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.VisualAsset}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/posters/ [get]
func (c *PosterController) ListPosters(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	posters, err := c.Service.ListPosters(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if posters == nil {
		posters = []*domain.VisualAsset{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, posters)
}

// DeletePoster godoc
// @Summary Delete a poster
// @Tags posters
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param poster_id path string true "Poster ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/posters/{poster_id}/ [delete]
func (c *PosterController) DeletePoster(w http.ResponseWriter, r *http.Request) {
	eventID, posterID, userID, ok := childActor(w, r, ParamPosterID)
	if !ok {
		return
	}
	if err := c.Service.DeletePoster(r.Context(), eventID, posterID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GeneratePoster godoc
// @Summary Generate a poster
// @Description Drafts poster copy, renders the image and appends the poster.
// @Tags posters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body domain.PosterRequest true "Poster style"
// @Success 201 {object} helpers.APIResponse{data=domain.VisualAsset}
// @Failure 403 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError
// @Failure 503 {object} helpers.APIError
// @Router /events/{event_id}/posters/generate/ [post]
func (c *PosterController) GeneratePoster(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req domain.PosterRequest
	if !helpers.DecodeOptional(w, r, &req) {
		return
	}
	poster, err := c.Service.GeneratePoster(r.Context(), eventID, userID, &req)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, poster)
}
