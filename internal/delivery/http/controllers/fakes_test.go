package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventplanner/internal/delivery/http/helpers"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testUserID  = "11111111-1111-4111-8111-111111111111"
	testEventID = "22222222-2222-4222-8222-222222222222"
	testChildID = "33333333-3333-4333-8333-333333333333"
	otherUserID = "44444444-4444-4444-8444-444444444444"
)

// call records the ids a fake service method received.
type call struct {
	eventID string
	childID string
	actorID string
}

// request builds a request with the given path values and, unless anonymous, an authenticated user.
func request(method, body string, pathValues map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "http://test/", rdr)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req.WithContext(middleware.SetUserID(req.Context(), testUserID))
}

func anonymous(req *http.Request) *http.Request {
	return req.WithContext(context.Background())
}

func eventPath() map[string]string {
	return map[string]string{ParamEventID: testEventID}
}

func childPath(param string) map[string]string {
	return map[string]string{ParamEventID: testEventID, param: testChildID}
}

// decodeData decodes the success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIError {
	t.Helper()
	var env helpers.APIError
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

type fakeAuthService struct {
	err          error
	lastUsername string
	lastEmail    string
	lastPassword string
}

func (f *fakeAuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	f.lastUsername, f.lastEmail, f.lastPassword = username, email, password
	if f.err != nil {
		return "", nil, f.err
	}
	return "tok-new", &domain.User{ID: testUserID, Username: username, Email: email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	f.lastUsername, f.lastPassword = username, password
	if f.err != nil {
		return "", f.err
	}
	return "tok-login", nil
}

type fakeEventService struct {
	err             error
	event           *domain.Event
	events          []*domain.Event
	ics             []byte
	last            call
	lastCreate      *domain.Event
	lastPrefs       *domain.EventPreferences
	lastPatch       domain.EventPatch
	includeVersions bool
}

func (f *fakeEventService) CreateEvent(ctx context.Context, actorID string, e *domain.Event) (*domain.Event, error) {
	f.last = call{actorID: actorID}
	f.lastCreate = e
	if f.err != nil {
		return nil, f.err
	}
	e.ID = testEventID
	e.CreatedBy = actorID
	return e, nil
}

func (f *fakeEventService) GenerateEvent(ctx context.Context, actorID string, prefs *domain.EventPreferences) (*domain.GeneratedEvent, error) {
	f.last = call{actorID: actorID}
	f.lastPrefs = prefs
	if f.err != nil {
		return nil, f.err
	}
	return &domain.GeneratedEvent{Event: f.event, Suggestions: &domain.EventDraft{Name: domain.StringList{"A", "B"}}}, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, eventID, actorID string, includeVersions bool) (*domain.EventDetail, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.includeVersions = includeVersions
	if f.err != nil {
		return nil, f.err
	}
	d := &domain.EventDetail{Event: f.event}
	if includeVersions {
		d.Versions = []*domain.EventVersion{{ID: testChildID, EventID: eventID, VersionNumber: 1}}
	}
	return d, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, actorID string) ([]*domain.Event, error) {
	f.last = call{actorID: actorID}
	return f.events, f.err
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, actorID string, patch domain.EventPatch) (*domain.Event, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return patch.Apply(f.event), nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, actorID string) error {
	f.last = call{eventID: eventID, actorID: actorID}
	return f.err
}

func (f *fakeEventService) ExportCalendar(ctx context.Context, eventID, actorID string) ([]byte, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return f.ics, f.err
}

type fakeVersionService struct {
	err         error
	last        call
	lastSummary string
}

func (f *fakeVersionService) SaveVersion(ctx context.Context, eventID, actorID, changesSummary string) (*domain.EventVersion, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastSummary = changesSummary
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventVersion{ID: testChildID, EventID: eventID, VersionNumber: 3, ChangesSummary: changesSummary}, nil
}

func (f *fakeVersionService) ListVersions(ctx context.Context, eventID, actorID string) ([]*domain.EventVersion, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeVersionService) GetVersion(ctx context.Context, eventID, versionID, actorID string) (*domain.EventVersion, error) {
	f.last = call{eventID: eventID, childID: versionID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventVersion{ID: versionID, EventID: eventID, VersionNumber: 1}, nil
}

func (f *fakeVersionService) Revert(ctx context.Context, eventID, versionID, actorID string) (*domain.Event, error) {
	f.last = call{eventID: eventID, childID: versionID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Event{ID: eventID, Name: "Reverted"}, nil
}

type fakeEditLogService struct {
	err        error
	logs       []*domain.EditLog
	total      int
	last       call
	lastParams domain.PaginationParams
}

func (f *fakeEditLogService) Record(ctx context.Context, eventID, actorID string, changes []domain.FieldChange) error {
	return nil
}

func (f *fakeEditLogService) ListEditLogs(ctx context.Context, eventID, actorID string, params domain.PaginationParams) ([]*domain.EditLog, int, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastParams = params
	return f.logs, f.total, f.err
}

type fakeEditorService struct {
	err       error
	last      call
	lastEmail string
	lastRole  domain.Role
}

func (f *fakeEditorService) ListEditors(ctx context.Context, eventID, actorID string) ([]*domain.EventEditor, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.EventEditor{{EventID: eventID, UserID: actorID, Role: domain.RoleOwner}}, nil
}

func (f *fakeEditorService) AddEditor(ctx context.Context, eventID, actorID, userID, email string, role domain.Role) (*domain.EventEditor, error) {
	f.last = call{eventID: eventID, childID: userID, actorID: actorID}
	f.lastEmail, f.lastRole = email, role
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventEditor{EventID: eventID, UserID: otherUserID, Role: role, Email: email}, nil
}

func (f *fakeEditorService) UpdateEditorRole(ctx context.Context, eventID, actorID, userID string, role domain.Role) (*domain.EventEditor, error) {
	f.last = call{eventID: eventID, childID: userID, actorID: actorID}
	f.lastRole = role
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EventEditor{EventID: eventID, UserID: userID, Role: role}, nil
}

func (f *fakeEditorService) RemoveEditor(ctx context.Context, eventID, actorID, userID string) error {
	f.last = call{eventID: eventID, childID: userID, actorID: actorID}
	return f.err
}
