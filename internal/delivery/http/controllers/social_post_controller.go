package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/domain"
)

// CreateSocialPostRequest is the body of POST /events/{event_id}/social-posts/
type CreateSocialPostRequest struct {
	Platform domain.Platform `json:"platform"`
	Content  string          `json:"content"`
	Hashtags []string        `json:"hashtags"`
	Tone     string          `json:"tone"`
	Language string          `json:"language"`
}

// GenerateSocialPostsRequest is the body of POST /events/{event_id}/social-posts/generate/
type GenerateSocialPostsRequest domain.SocialPostRequest

func (g GenerateSocialPostsRequest) Validate() map[string]string {
	return validVenueRef(g.VenueID)
}

type SocialPostController struct {
	base
	Service domain.SocialPostService
}

func NewSocialPostController(logger *slog.Logger, svc domain.SocialPostService) *SocialPostController {
	return &SocialPostController{base: base{Logger: logger}, Service: svc}
}

// ListPosts godoc
// @Summary List social posts
// @Tags social-posts
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=[]domain.SocialPost}
// @Failure 403 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/ [get]
func (c *SocialPostController) ListPosts(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	posts, err := c.Service.ListPosts(r.Context(), eventID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if posts == nil {
		posts = []*domain.SocialPost{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Create a social post
// @Tags social-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body CreateSocialPostRequest true "Post"
// @Success 201 {object} helpers.APIResponse{data=domain.SocialPost}
// @Failure 400 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/ [post]
func (c *SocialPostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req CreateSocialPostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post, err := c.Service.CreatePost(r.Context(), eventID, userID, &domain.SocialPost{
		Platform: req.Platform,
		Content:  req.Content,
		Hashtags: req.Hashtags,
		Tone:     req.Tone,
		Language: req.Language,
	})
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, post)
}

// GetPost godoc
// @Summary Get a social post
// @Tags social-posts
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param post_id path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=domain.SocialPost}
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/{post_id}/ [get]
func (c *SocialPostController) GetPost(w http.ResponseWriter, r *http.Request) {
	eventID, postID, userID, ok := childActor(w, r, ParamPostID)
	if !ok {
		return
	}
	post, err := c.Service.GetPost(r.Context(), eventID, postID, userID)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// UpdatePost godoc
// @Summary Update a social post
// @Tags social-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param post_id path string true "Post ID (UUID)"
// @Param body body domain.SocialPostPatch true "Fields to change"
// @Success 200 {object} helpers.APIResponse{data=domain.SocialPost}
// @Failure 400 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/{post_id}/ [patch]
func (c *SocialPostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	eventID, postID, userID, ok := childActor(w, r, ParamPostID)
	if !ok {
		return
	}
	var patch domain.SocialPostPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	post, err := c.Service.UpdatePost(r.Context(), eventID, postID, userID, patch)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a social post
// @Tags social-posts
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param post_id path string true "Post ID (UUID)"
// @Success 204
// @Failure 403 {object} helpers.APIError
// @Failure 404 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/{post_id}/ [delete]
func (c *SocialPostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	eventID, postID, userID, ok := childActor(w, r, ParamPostID)
	if !ok {
		return
	}
	if err := c.Service.DeletePost(r.Context(), eventID, postID, userID); err != nil {
		c.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GeneratePosts godoc
// @Summary Generate social posts
// @Description Replaces the event's posts with drafted ones for the platform.
// @Tags social-posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path string true "Event ID (UUID)"
// @Param body body GenerateSocialPostsRequest true "Platform and style"
// @Success 201 {object} helpers.APIResponse{data=[]domain.SocialPost}
// @Failure 400 {object} helpers.APIError
// @Failure 502 {object} helpers.APIError
// @Router /events/{event_id}/social-posts/generate/ [post]
func (c *SocialPostController) GeneratePosts(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := eventActor(w, r)
	if !ok {
		return
	}
	var req GenerateSocialPostsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	in := domain.SocialPostRequest(req)
	posts, err := c.Service.GeneratePosts(r.Context(), eventID, userID, &in)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, posts)
}
