package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

var testTimeouts = Timeouts{Request: 5 * time.Second, Generation: 5 * time.Second}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory stand-in for the database. Each repository below is a view over it.
type memStore struct {
	seq      int
	now      time.Time
	events   map[string]*domain.Event
	versions map[string]*domain.EventVersion
	editLogs []*domain.EditLog
	grants   map[string]map[string]*domain.EventEditor
	users    map[string]*domain.User
	tasks    map[string]*domain.TaskAssignment
	venues   map[string]*domain.VenueSuggestion
	regs     map[string]*domain.Registration
	emails   map[string]*domain.EmailLog
	posts    map[string]*domain.SocialPost
	assets   map[string]*domain.VisualAsset

	// failEventUpdate makes the next event update fail.
	failEventUpdate error
}

func newMemStore() *memStore {
	return &memStore{
		now:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		events:   map[string]*domain.Event{},
		versions: map[string]*domain.EventVersion{},
		grants:   map[string]map[string]*domain.EventEditor{},
		users:    map[string]*domain.User{},
		tasks:    map[string]*domain.TaskAssignment{},
		venues:   map[string]*domain.VenueSuggestion{},
		regs:     map[string]*domain.Registration{},
		emails:   map[string]*domain.EmailLog{},
		posts:    map[string]*domain.SocialPost{},
		assets:   map[string]*domain.VisualAsset{},
	}
}

func (m *memStore) id(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func cloneMap[V any](in map[string]*V) map[string]*V {
	out := make(map[string]*V, len(in))
	for k, v := range in {
		c := *v
		out[k] = &c
	}
	return out
}

func (m *memStore) snapshot() *memStore {
	grants := make(map[string]map[string]*domain.EventEditor, len(m.grants))
	for k, v := range m.grants {
		grants[k] = cloneMap(v)
	}
	return &memStore{
		seq:      m.seq,
		now:      m.now,
		events:   cloneMap(m.events),
		versions: cloneMap(m.versions),
		editLogs: slices.Clone(m.editLogs),
		grants:   grants,
		users:    cloneMap(m.users),
		tasks:    cloneMap(m.tasks),
		venues:   cloneMap(m.venues),
		regs:     cloneMap(m.regs),
		emails:   cloneMap(m.emails),
		posts:    cloneMap(m.posts),
		assets:   cloneMap(m.assets),
	}
}

func (m *memStore) restore(s *memStore) {
	m.events, m.versions, m.editLogs, m.grants = s.events, s.versions, s.editLogs, s.grants
	m.users, m.tasks, m.venues, m.regs = s.users, s.tasks, s.venues, s.regs
	m.emails, m.posts, m.assets = s.emails, s.posts, s.assets
}

// grant adds a role grant directly, bypassing services.
func (m *memStore) grant(eventID, userID string, role domain.Role) {
	if m.grants[eventID] == nil {
		m.grants[eventID] = map[string]*domain.EventEditor{}
	}
	m.grants[eventID][userID] = &domain.EventEditor{EventID: eventID, UserID: userID, Role: role, AddedAt: m.tick()}
}

func (m *memStore) logsFor(eventID string) []*domain.EditLog {
	var out []*domain.EditLog
	for _, l := range m.editLogs {
		if l.EventID == eventID {
			out = append(out, l)
		}
	}
	return out
}

func (m *memStore) versionsFor(eventID string) []*domain.EventVersion {
	var out []*domain.EventVersion
	for _, v := range m.versions {
		if v.EventID == eventID {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b *domain.EventVersion) int { return b.VersionNumber - a.VersionNumber })
	return out
}

func childrenOf[V any](in map[string]*V, eventID string, owner func(*V) string) []*V {
	keys := slices.Sorted(maps.Keys(in))
	var out []*V
	for _, k := range keys {
		if owner(in[k]) == eventID {
			c := *in[k]
			out = append(out, &c)
		}
	}
	return out
}

func getCopy[V any](in map[string]*V, id string) (*V, error) {
	v, ok := in[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *v
	return &c, nil
}

func replaceChildren[V any](in map[string]*V, eventID string, owner func(*V) string) {
	for k, v := range in {
		if owner(v) == eventID {
			delete(in, k)
		}
	}
}

// fakeTx restores the store when the closure fails, like a rollback.
type fakeTx struct{ m *memStore }

func (t fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.m.snapshot()
	if err := fn(ctx); err != nil {
		t.m.restore(snap)
		return err
	}
	return nil
}

type fakeEventRepo struct{ m *memStore }

func (r fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	e.ID = r.m.id("ev")
	e.CreatedAt = r.m.tick()
	e.LastModified = e.CreatedAt
	c := *e
	r.m.events[e.ID] = &c
	return nil
}

func (r fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return getCopy(r.m.events, id)
}

func (r fakeEventRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return getCopy(r.m.events, id)
}

func (r fakeEventRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, id := range slices.Sorted(maps.Keys(r.m.grants)) {
		if _, ok := r.m.grants[id][userID]; ok {
			if e, ok := r.m.events[id]; ok {
				c := *e
				out = append(out, &c)
			}
		}
	}
	return out, nil
}

func (r fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if err := r.m.failEventUpdate; err != nil {
		r.m.failEventUpdate = nil
		return err
	}
	cur, ok := r.m.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := *e
	c.LatestVersionID = cur.LatestVersionID
	c.LastModified = r.m.tick()
	e.LastModified = c.LastModified
	r.m.events[e.ID] = &c
	return nil
}

func (r fakeEventRepo) SetLatestVersion(ctx context.Context, eventID, versionID string) error {
	e, ok := r.m.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	v, ok := r.m.versions[versionID]
	if !ok || v.EventID != eventID {
		return errors.New("latest version must belong to the event")
	}
	e.LatestVersionID = &versionID
	return nil
}

func (r fakeEventRepo) DeleteCascade(ctx context.Context, id string) error {
	if _, ok := r.m.events[id]; !ok {
		return domain.ErrNotFound
	}
	replaceChildren(r.m.versions, id, func(v *domain.EventVersion) string { return v.EventID })
	r.m.editLogs = slices.DeleteFunc(r.m.editLogs, func(l *domain.EditLog) bool { return l.EventID == id })
	replaceChildren(r.m.tasks, id, func(v *domain.TaskAssignment) string { return v.EventID })
	replaceChildren(r.m.venues, id, func(v *domain.VenueSuggestion) string { return v.EventID })
	replaceChildren(r.m.regs, id, func(v *domain.Registration) string { return v.EventID })
	replaceChildren(r.m.emails, id, func(v *domain.EmailLog) string { return v.EventID })
	replaceChildren(r.m.posts, id, func(v *domain.SocialPost) string { return v.EventID })
	replaceChildren(r.m.assets, id, func(v *domain.VisualAsset) string { return v.EventID })
	delete(r.m.grants, id)
	delete(r.m.events, id)
	return nil
}

type fakeVersionRepo struct{ m *memStore }

func (r fakeVersionRepo) Create(ctx context.Context, v *domain.EventVersion) error {
	for _, existing := range r.m.versions {
		if existing.EventID == v.EventID && existing.VersionNumber == v.VersionNumber {
			return errors.New("duplicate version number")
		}
	}
	v.ID = r.m.id("ver")
	v.CreatedAt = r.m.tick()
	c := *v
	r.m.versions[v.ID] = &c
	return nil
}

func (r fakeVersionRepo) MaxNumber(ctx context.Context, eventID string) (int, error) {
	n := 0
	for _, v := range r.m.versions {
		if v.EventID == eventID {
			n = max(n, v.VersionNumber)
		}
	}
	return n, nil
}

func (r fakeVersionRepo) GetByID(ctx context.Context, id string) (*domain.EventVersion, error) {
	return getCopy(r.m.versions, id)
}

func (r fakeVersionRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventVersion, error) {
	return r.m.versionsFor(eventID), nil
}

type fakeEditLogRepo struct{ m *memStore }

func (r fakeEditLogRepo) CreateBatch(ctx context.Context, logs []*domain.EditLog) error {
	for _, l := range logs {
		l.ID = r.m.id("log")
		l.EditedAt = r.m.now
		c := *l
		r.m.editLogs = append(r.m.editLogs, &c)
	}
	return nil
}

func (r fakeEditLogRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.EditLog, int, error) {
	logs := r.m.logsFor(eventID)
	slices.Reverse(logs)
	total := len(logs)
	start := min(params.Offset(), total)
	end := total
	if params.PageSize > 0 {
		end = min(start+params.PageSize, total)
	}
	return logs[start:end], total, nil
}

type fakeEditorRepo struct{ m *memStore }

func (r fakeEditorRepo) GetRole(ctx context.Context, eventID, userID string) (domain.Role, error) {
	g, ok := r.m.grants[eventID][userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return g.Role, nil
}

func (r fakeEditorRepo) Add(ctx context.Context, g *domain.EventEditor) error {
	if _, ok := r.m.grants[g.EventID][g.UserID]; ok {
		return domain.ErrAlreadyMember
	}
	r.m.grant(g.EventID, g.UserID, g.Role)
	g.AddedAt = r.m.grants[g.EventID][g.UserID].AddedAt
	return nil
}

func (r fakeEditorRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventEditor, error) {
	var out []*domain.EventEditor
	for _, userID := range slices.Sorted(maps.Keys(r.m.grants[eventID])) {
		g := *r.m.grants[eventID][userID]
		if u, ok := r.m.users[userID]; ok {
			g.Username, g.Email = u.Username, u.Email
		}
		out = append(out, &g)
	}
	return out, nil
}

func (r fakeEditorRepo) LockByEventID(ctx context.Context, eventID string) ([]*domain.EventEditor, error) {
	return r.ListByEventID(ctx, eventID)
}

func (r fakeEditorRepo) UpdateRole(ctx context.Context, eventID, userID string, role domain.Role) (*domain.EventEditor, error) {
	g, ok := r.m.grants[eventID][userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	g.Role = role
	c := *g
	return &c, nil
}

func (r fakeEditorRepo) Remove(ctx context.Context, eventID, userID string) error {
	if _, ok := r.m.grants[eventID][userID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.grants[eventID], userID)
	return nil
}

type fakeUserRepo struct{ m *memStore }

func (r fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range r.m.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
	}
	u.ID = r.m.id("user")
	c := *u
	r.m.users[u.ID] = &c
	return nil
}

func (r fakeUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.m.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

type fakeTaskRepo struct{ m *memStore }

func taskOwner(t *domain.TaskAssignment) string { return t.EventID }

func (r fakeTaskRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.TaskAssignment, error) {
	return childrenOf(r.m.tasks, eventID, taskOwner), nil
}

func (r fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.TaskAssignment, error) {
	return getCopy(r.m.tasks, id)
}

func (r fakeTaskRepo) Create(ctx context.Context, t *domain.TaskAssignment) error {
	t.ID = r.m.id("task")
	c := *t
	r.m.tasks[t.ID] = &c
	return nil
}

func (r fakeTaskRepo) Update(ctx context.Context, t *domain.TaskAssignment) error {
	if _, ok := r.m.tasks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *t
	r.m.tasks[t.ID] = &c
	return nil
}

func (r fakeTaskRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.tasks, id)
	return nil
}

func (r fakeTaskRepo) ReplaceForEvent(ctx context.Context, eventID string, tasks []*domain.TaskAssignment) error {
	replaceChildren(r.m.tasks, eventID, taskOwner)
	for _, t := range tasks {
		t.EventID = eventID
		if err := r.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

type fakeVenueRepo struct{ m *memStore }

func venueOwner(v *domain.VenueSuggestion) string { return v.EventID }

func (r fakeVenueRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.VenueSuggestion, error) {
	return childrenOf(r.m.venues, eventID, venueOwner), nil
}

func (r fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.VenueSuggestion, error) {
	return getCopy(r.m.venues, id)
}

func (r fakeVenueRepo) Update(ctx context.Context, v *domain.VenueSuggestion) error {
	if _, ok := r.m.venues[v.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *v
	r.m.venues[v.ID] = &c
	return nil
}

func (r fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.venues[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.venues, id)
	return nil
}

func (r fakeVenueRepo) ReplaceForEvent(ctx context.Context, eventID string, venues []*domain.VenueSuggestion) error {
	replaceChildren(r.m.venues, eventID, venueOwner)
	for _, v := range venues {
		v.ID = r.m.id("venue")
		v.EventID = eventID
		c := *v
		r.m.venues[v.ID] = &c
	}
	return nil
}

type fakeRegistrationRepo struct{ m *memStore }

func regOwner(r *domain.Registration) string { return r.EventID }

func (r fakeRegistrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	return childrenOf(r.m.regs, eventID, regOwner), nil
}

func (r fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	return getCopy(r.m.regs, id)
}

func (r fakeRegistrationRepo) Update(ctx context.Context, reg *domain.Registration) error {
	if _, ok := r.m.regs[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *reg
	r.m.regs[reg.ID] = &c
	return nil
}

func (r fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.regs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.regs, id)
	return nil
}

func (r fakeRegistrationRepo) ReplaceForEvent(ctx context.Context, eventID string, reg *domain.Registration) error {
	replaceChildren(r.m.regs, eventID, regOwner)
	reg.ID = r.m.id("reg")
	reg.EventID = eventID
	c := *reg
	r.m.regs[reg.ID] = &c
	return nil
}

type fakeEmailLogRepo struct{ m *memStore }

func emailOwner(l *domain.EmailLog) string { return l.EventID }

func (r fakeEmailLogRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	return childrenOf(r.m.emails, eventID, emailOwner), nil
}

func (r fakeEmailLogRepo) ListUnsent(ctx context.Context, eventID string) ([]*domain.EmailLog, error) {
	return slices.DeleteFunc(childrenOf(r.m.emails, eventID, emailOwner), func(l *domain.EmailLog) bool {
		return l.Status == domain.EmailSent
	}), nil
}

func (r fakeEmailLogRepo) GetByID(ctx context.Context, id string) (*domain.EmailLog, error) {
	return getCopy(r.m.emails, id)
}

func (r fakeEmailLogRepo) Create(ctx context.Context, l *domain.EmailLog) error {
	l.ID = r.m.id("mail")
	c := *l
	r.m.emails[l.ID] = &c
	return nil
}

func (r fakeEmailLogRepo) CreateBatch(ctx context.Context, logs []*domain.EmailLog) error {
	for _, l := range logs {
		if err := r.Create(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func (r fakeEmailLogRepo) Update(ctx context.Context, l *domain.EmailLog) error {
	if _, ok := r.m.emails[l.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *l
	r.m.emails[l.ID] = &c
	return nil
}

func (r fakeEmailLogRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.emails[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.emails, id)
	return nil
}

type fakeSocialPostRepo struct{ m *memStore }

func postOwner(p *domain.SocialPost) string { return p.EventID }

func (r fakeSocialPostRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.SocialPost, error) {
	return childrenOf(r.m.posts, eventID, postOwner), nil
}

func (r fakeSocialPostRepo) GetByID(ctx context.Context, id string) (*domain.SocialPost, error) {
	return getCopy(r.m.posts, id)
}

func (r fakeSocialPostRepo) Create(ctx context.Context, p *domain.SocialPost) error {
	p.ID = r.m.id("post")
	c := *p
	r.m.posts[p.ID] = &c
	return nil
}

func (r fakeSocialPostRepo) Update(ctx context.Context, p *domain.SocialPost) error {
	if _, ok := r.m.posts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.m.posts[p.ID] = &c
	return nil
}

func (r fakeSocialPostRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.posts, id)
	return nil
}

func (r fakeSocialPostRepo) ReplaceForEvent(ctx context.Context, eventID string, posts []*domain.SocialPost) error {
	replaceChildren(r.m.posts, eventID, postOwner)
	for _, p := range posts {
		p.EventID = eventID
		if err := r.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

type fakeAssetRepo struct{ m *memStore }

func (r fakeAssetRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.VisualAsset, error) {
	return childrenOf(r.m.assets, eventID, func(a *domain.VisualAsset) string { return a.EventID }), nil
}

func (r fakeAssetRepo) GetByID(ctx context.Context, id string) (*domain.VisualAsset, error) {
	return getCopy(r.m.assets, id)
}

func (r fakeAssetRepo) Create(ctx context.Context, a *domain.VisualAsset) error {
	a.ID = r.m.id("asset")
	a.CreatedAt = r.m.tick()
	c := *a
	r.m.assets[a.ID] = &c
	return nil
}

func (r fakeAssetRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.assets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.assets, id)
	return nil
}

// fakeGenerator decodes canned JSON replies per prompt kind, the way the real gateway decodes model output.
type fakeGenerator struct {
	replies map[domain.PromptKind]string
	err     error
	calls   []domain.PromptKind
	inputs  []any
}

func (g *fakeGenerator) Generate(ctx context.Context, kind domain.PromptKind, input any, out domain.GenerationResult) error {
	g.calls = append(g.calls, kind)
	g.inputs = append(g.inputs, input)
	if g.err != nil {
		return g.err
	}
	reply, ok := g.replies[kind]
	if !ok {
		return fmt.Errorf("%w: no reply for %s", domain.ErrUpstreamGeneration, kind)
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamGeneration, err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamGeneration, err)
	}
	return nil
}

type fakeGeocoder struct {
	known map[string]*domain.GeoLocation
}

func (g fakeGeocoder) Geocode(ctx context.Context, query string) (*domain.GeoLocation, error) {
	if loc, ok := g.known[query]; ok {
		return loc, nil
	}
	return nil, errors.New("no results")
}

type fakeFormBuilder struct {
	url    string
	err    error
	titles []string
}

func (f *fakeFormBuilder) CreateForm(ctx context.Context, title, description string, fields []domain.FormField) (string, error) {
	f.titles = append(f.titles, title)
	return f.url, f.err
}

type fakeEmailService struct {
	failFor     map[string]bool
	invitations []*domain.InvitationEmailData
	welcomes    []*domain.WelcomeMessageEmailData
	welcomeErr  error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.welcomes = append(f.welcomes, data)
	return f.welcomeErr
}

func (f *fakeEmailService) SendInvitation(ctx context.Context, data *domain.InvitationEmailData) error {
	if f.failFor[data.Email] {
		return errors.New("mailbox unavailable")
	}
	f.invitations = append(f.invitations, data)
	return nil
}

type fakeMediaStore struct {
	saved [][]byte
	err   error
}

func (f *fakeMediaStore) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, data)
	return fmt.Sprintf("/media/poster-%d%s", len(f.saved), ext), nil
}

type fakeCalendar struct {
	location string
}

func (f *fakeCalendar) Render(e *domain.Event, location string) ([]byte, error) {
	f.location = location
	return []byte("BEGIN:VCALENDAR\r\nSUMMARY:" + e.Name + "\r\nEND:VCALENDAR\r\n"), nil
}

// fixture wires every service over one memStore.
type fixture struct {
	store    *memStore
	gen      *fakeGenerator
	email    *fakeEmailService
	forms    *fakeFormBuilder
	media    *fakeMediaStore
	calendar *fakeCalendar
	geocoder fakeGeocoder
	perms    domain.PermissionEvaluator
	editLogs domain.EditLogService
	events   domain.EventService
	versions domain.VersionService
	editors  domain.EditorService
	tasks    domain.TaskService
	venues   domain.VenueService
	regs     domain.RegistrationService
	invites  domain.InvitationService
	posts    domain.SocialPostService
	posters  domain.PosterService
}

func newFixture() *fixture {
	m := newMemStore()
	f := &fixture{
		store:    m,
		gen:      &fakeGenerator{replies: map[domain.PromptKind]string{}},
		email:    &fakeEmailService{failFor: map[string]bool{}},
		forms:    &fakeFormBuilder{url: "https://forms.example/viewform"},
		media:    &fakeMediaStore{},
		calendar: &fakeCalendar{},
		geocoder: fakeGeocoder{known: map[string]*domain.GeoLocation{}},
	}
	tx := fakeTx{m}
	events, versions, editors := fakeEventRepo{m}, fakeVersionRepo{m}, fakeEditorRepo{m}
	venues, regs := fakeVenueRepo{m}, fakeRegistrationRepo{m}
	logger := discardLogger()

	f.perms = NewPermissionEvaluator(editors)
	f.editLogs = NewEditLogService(fakeEditLogRepo{m}, f.perms, testTimeouts.Request)
	f.events = NewEventService(EventDeps{
		Tx: tx, Perms: f.perms, Events: events, Editors: editors, Versions: versions, Venues: venues,
		EditLogs: f.editLogs, Generator: f.gen, Calendar: f.calendar, Timeouts: testTimeouts,
	})
	f.versions = NewVersionService(tx, f.perms, events, versions, f.editLogs, testTimeouts.Request)
	f.editors = NewEditorService(tx, f.perms, editors, fakeUserRepo{m}, testTimeouts.Request)
	f.tasks = NewTaskService(tx, f.perms, events, fakeTaskRepo{m}, f.gen, testTimeouts)
	f.venues = NewVenueService(tx, f.perms, events, venues, f.gen, f.geocoder, testTimeouts, logger)
	f.regs = NewRegistrationService(tx, f.perms, events, venues, regs, f.gen, f.forms, testTimeouts)
	f.invites = NewInvitationService(tx, f.perms, events, venues, regs, fakeEmailLogRepo{m}, f.gen, f.email, testTimeouts, logger)
	f.posts = NewSocialPostService(tx, f.perms, events, venues, regs, fakeSocialPostRepo{m}, f.gen, testTimeouts)
	f.posters = NewPosterService(f.perms, events, venues, fakeAssetRepo{m}, f.gen, f.media, testTimeouts)
	return f
}

func sampleEvent() *domain.Event {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Event{
		Name:              "A",
		Description:       "desc",
		Slogan:            "go",
		TargetAudience:    "students",
		ExpectedAttendees: 100,
		StartTime:         start,
		EndTime:           start.Add(8 * time.Hour),
		Type:              "Workshop",
		Budget:            5000,
	}
}

// createEvent creates an event owned by ownerID through the service.
func (f *fixture) createEvent(ownerID string) *domain.Event {
	e, err := f.events.CreateEvent(context.Background(), ownerID, sampleEvent())
	if err != nil {
		panic(err)
	}
	return e
}

func ptr[T any](v T) *T { return &v }
