package controllers

import (
	"log/slog"
	"net/http"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
)

// Path parameter names shared by the router and the controllers.
const (
	ParamEventID        = "event_id"
	ParamVersionID      = "version_id"
	ParamUserID         = "user_id"
	ParamTaskID         = "task_id"
	ParamVenueID        = "venue_id"
	ParamRegistrationID = "registration_id"
	ParamInvitationID   = "invitation_id"
	ParamPostID         = "post_id"
	ParamPosterID       = "poster_id"
)

// base carries what every controller needs to answer a request.
type base struct {
	Logger *slog.Logger
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	helpers.WriteServiceError(w, r, b.Logger, err)
}

func actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", false
	}
	return userID, true
}

// eventActor resolves the acting user and the event named in the path.
func eventActor(w http.ResponseWriter, r *http.Request) (eventID, actorID string, ok bool) {
	if actorID, ok = actor(w, r); !ok {
		return "", "", false
	}
	if eventID, ok = helpers.PathUUID(w, r, ParamEventID); !ok {
		return "", "", false
	}
	return eventID, actorID, true
}

// childActor is eventActor plus the child resource id named by param.
func childActor(w http.ResponseWriter, r *http.Request, param string) (eventID, childID, actorID string, ok bool) {
	if eventID, actorID, ok = eventActor(w, r); !ok {
		return "", "", "", false
	}
	if childID, ok = helpers.PathUUID(w, r, param); !ok {
		return "", "", "", false
	}
	return eventID, childID, actorID, true
}

// isReplace reports whether the request replaces a resource rather than patching it.
func isReplace(r *http.Request) bool {
	return r.Method == http.MethodPut
}

// StatusResponse is the data payload of operations that return no resource.
type StatusResponse struct {
	Status string `json:"status"`
}
