package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventplanner/internal/delivery/http/controllers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"
)

// Controllers groups every handler set mounted by NewRouter.
type Controllers struct {
	Auth         *controllers.AuthController
	Events       *controllers.EventController
	Versions     *controllers.VersionController
	EditLogs     *controllers.EditLogController
	Editors      *controllers.EditorController
	Tasks        *controllers.TaskController
	Venues       *controllers.VenueController
	Registration *controllers.RegistrationController
	Invitations  *controllers.InvitationController
	SocialPosts  *controllers.SocialPostController
	Posters      *controllers.PosterController
}

// RouterConfig holds the cross-cutting pieces the router wraps around the controllers.
type RouterConfig struct {
	Verifier       domain.TokenVerifier
	Logger         *slog.Logger
	AllowedOrigins []string
	// MediaPrefix is the URL prefix generated files are served under; Media may be nil.
	MediaPrefix string
	Media       http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, auth(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/register/{$}", c.Auth.Register)
	mux.HandleFunc("POST /auth/login/{$}", c.Auth.Login)

	// Events
	handle("GET /events/{$}", c.Events.ListEvents)
	handle("POST /events/{$}", c.Events.CreateEvent)
	handle("POST /events/generate/{$}", c.Events.GenerateEvent)
	handle("GET /events/{event_id}/{$}", c.Events.GetEvent)
	handle("PUT /events/{event_id}/update/{$}", c.Events.UpdateEvent)
	handle("PATCH /events/{event_id}/update/{$}", c.Events.UpdateEvent)
	handle("DELETE /events/{event_id}/delete/{$}", c.Events.DeleteEvent)
	handle("GET /events/{event_id}/calendar.ics", c.Events.ExportCalendar)

	// Versions and audit
	handle("POST /events/{event_id}/save-version/{$}", c.Versions.SaveVersion)
	handle("GET /events/{event_id}/versions/{$}", c.Versions.ListVersions)
	handle("GET /events/{event_id}/versions/{version_id}/{$}", c.Versions.GetVersion)
	handle("POST /events/{event_id}/revert/{version_id}/{$}", c.Versions.Revert)
	handle("GET /events/{event_id}/edit-logs/{$}", c.EditLogs.ListEditLogs)

	// Editor grants
	handle("GET /events/{event_id}/editors/{$}", c.Editors.ListEditors)
	handle("POST /events/{event_id}/editors/{$}", c.Editors.AddEditor)
	handle("PUT /events/{event_id}/editors/{user_id}/{$}", c.Editors.UpdateEditor)
	handle("DELETE /events/{event_id}/editors/{user_id}/{$}", c.Editors.RemoveEditor)

	// Tasks
	handle("GET /events/{event_id}/tasks/{$}", c.Tasks.ListTasks)
	handle("POST /events/{event_id}/tasks/{$}", c.Tasks.CreateTask)
	handle("POST /events/{event_id}/tasks/generate/{$}", c.Tasks.GenerateTasks)
	handle("GET /events/{event_id}/tasks/{task_id}/{$}", c.Tasks.GetTask)
	handle("PUT /events/{event_id}/tasks/{task_id}/{$}", c.Tasks.UpdateTask)
	handle("PATCH /events/{event_id}/tasks/{task_id}/{$}", c.Tasks.UpdateTask)
	handle("DELETE /events/{event_id}/tasks/{task_id}/{$}", c.Tasks.DeleteTask)

	// Venues
	handle("GET /events/{event_id}/venues/{$}", c.Venues.ListVenues)
	handle("POST /events/{event_id}/venues/generate/{$}", c.Venues.GenerateVenues)
	handle("PATCH /events/{event_id}/venues/{venue_id}/{$}", c.Venues.UpdateVenue)
	handle("DELETE /events/{event_id}/venues/{venue_id}/{$}", c.Venues.DeleteVenue)

	// Registrations
	handle("GET /events/{event_id}/registrations/{$}", c.Registration.ListRegistrations)
	handle("POST /events/{event_id}/registrations/generate/{$}", c.Registration.GenerateRegistration)
	handle("PATCH /events/{event_id}/registrations/{registration_id}/{$}", c.Registration.UpdateRegistration)
	handle("DELETE /events/{event_id}/registrations/{registration_id}/{$}", c.Registration.DeleteRegistration)
	handle("POST /events/{event_id}/registrations/{registration_id}/google-form/{$}", c.Registration.PublishForm)

	// Invitations
	handle("GET /events/{event_id}/invitations/{$}", c.Invitations.ListInvitations)
	handle("POST /events/{event_id}/invitations/{$}", c.Invitations.CreateInvitation)
	handle("POST /events/{event_id}/invitations/generate/{$}", c.Invitations.GenerateInvitations)
	handle("POST /events/{event_id}/invitations/send/{$}", c.Invitations.SendAll)
	handle("GET /events/{event_id}/invitations/{invitation_id}/{$}", c.Invitations.GetInvitation)
	handle("PATCH /events/{event_id}/invitations/{invitation_id}/{$}", c.Invitations.UpdateInvitation)
	handle("DELETE /events/{event_id}/invitations/{invitation_id}/{$}", c.Invitations.DeleteInvitation)
	handle("POST /events/{event_id}/invitations/{invitation_id}/send/{$}", c.Invitations.SendOne)

	// Social posts
	handle("GET /events/{event_id}/social-posts/{$}", c.SocialPosts.ListPosts)
	handle("POST /events/{event_id}/social-posts/{$}", c.SocialPosts.CreatePost)
	handle("POST /events/{event_id}/social-posts/generate/{$}", c.SocialPosts.GeneratePosts)
	handle("GET /events/{event_id}/social-posts/{post_id}/{$}", c.SocialPosts.GetPost)
	handle("PATCH /events/{event_id}/social-posts/{post_id}/{$}", c.SocialPosts.UpdatePost)
	handle("DELETE /events/{event_id}/social-posts/{post_id}/{$}", c.SocialPosts.DeletePost)

	// Posters
	handle("GET /events/{event_id}/posters/{$}", c.Posters.ListPosters)
	handle("POST /events/{event_id}/posters/generate/{$}", c.Posters.GeneratePoster)
	handle("DELETE /events/{event_id}/posters/{poster_id}/{$}", c.Posters.DeletePoster)

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	if cfg.Media != nil && cfg.MediaPrefix != "" {
		mux.Handle("GET "+cfg.MediaPrefix, http.StripPrefix(cfg.MediaPrefix, cfg.Media))
	}

	var h http.Handler = mux
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	return middleware.RequestID(h)
}
