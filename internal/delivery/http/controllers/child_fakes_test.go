package controllers

import (
	"context"

	"eventplanner/internal/domain"
)

type fakeTaskService struct {
	err        error
	last       call
	lastCreate *domain.TaskAssignment
	lastPatch  domain.TaskPatch
}

func (f *fakeTaskService) ListTasks(ctx context.Context, eventID, actorID string) ([]*domain.TaskAssignment, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeTaskService) CreateTask(ctx context.Context, eventID, actorID string, t *domain.TaskAssignment) (*domain.TaskAssignment, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastCreate = t
	if f.err != nil {
		return nil, f.err
	}
	t.ID, t.EventID = testChildID, eventID
	return t, nil
}

func (f *fakeTaskService) GetTask(ctx context.Context, eventID, taskID, actorID string) (*domain.TaskAssignment, error) {
	f.last = call{eventID: eventID, childID: taskID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TaskAssignment{ID: taskID, EventID: eventID, Role: "Usher"}, nil
}

func (f *fakeTaskService) UpdateTask(ctx context.Context, eventID, taskID, actorID string, patch domain.TaskPatch) (*domain.TaskAssignment, error) {
	f.last = call{eventID: eventID, childID: taskID, actorID: actorID}
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	t := &domain.TaskAssignment{ID: taskID, EventID: eventID}
	patch.Apply(t)
	return t, nil
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, eventID, taskID, actorID string) error {
	f.last = call{eventID: eventID, childID: taskID, actorID: actorID}
	return f.err
}

func (f *fakeTaskService) GenerateTasks(ctx context.Context, eventID, actorID string) ([]*domain.TaskAssignment, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.TaskAssignment{{ID: testChildID, EventID: eventID, Role: "Host", Count: 2}}, nil
}

type fakeVenueService struct {
	err        error
	last       call
	lastSearch domain.VenueSearch
	lastPatch  domain.VenuePatch
}

func (f *fakeVenueService) ListVenues(ctx context.Context, eventID, actorID string) ([]*domain.VenueSuggestion, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeVenueService) UpdateVenue(ctx context.Context, eventID, venueID, actorID string, patch domain.VenuePatch) (*domain.VenueSuggestion, error) {
	f.last = call{eventID: eventID, childID: venueID, actorID: actorID}
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	v := &domain.VenueSuggestion{ID: venueID, EventID: eventID}
	patch.Apply(v)
	return v, nil
}

func (f *fakeVenueService) DeleteVenue(ctx context.Context, eventID, venueID, actorID string) error {
	f.last = call{eventID: eventID, childID: venueID, actorID: actorID}
	return f.err
}

func (f *fakeVenueService) GenerateVenues(ctx context.Context, eventID, actorID string, search domain.VenueSearch) ([]*domain.VenueSuggestion, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastSearch = search
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.VenueSuggestion{{ID: testChildID, EventID: eventID, Name: "Hall", Address: domain.AddressUnknown}}, nil
}

type fakeRegistrationService struct {
	err         error
	last        call
	lastVenueID string
	lastPatch   domain.RegistrationPatch
}

func (f *fakeRegistrationService) ListRegistrations(ctx context.Context, eventID, actorID string) ([]*domain.Registration, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeRegistrationService) UpdateRegistration(ctx context.Context, eventID, registrationID, actorID string, patch domain.RegistrationPatch) (*domain.Registration, error) {
	f.last = call{eventID: eventID, childID: registrationID, actorID: actorID}
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	r := &domain.Registration{ID: registrationID, EventID: eventID}
	patch.Apply(r)
	return r, nil
}

func (f *fakeRegistrationService) DeleteRegistration(ctx context.Context, eventID, registrationID, actorID string) error {
	f.last = call{eventID: eventID, childID: registrationID, actorID: actorID}
	return f.err
}

func (f *fakeRegistrationService) GenerateRegistration(ctx context.Context, eventID, actorID, venueID string) (*domain.Registration, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastVenueID = venueID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Registration{ID: testChildID, EventID: eventID, FormTitle: "Sign up"}, nil
}

func (f *fakeRegistrationService) PublishForm(ctx context.Context, eventID, registrationID, actorID string) (*domain.Registration, error) {
	f.last = call{eventID: eventID, childID: registrationID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	url := "https://docs.google.com/forms/d/e/abc/viewform"
	return &domain.Registration{ID: registrationID, EventID: eventID, RegistrationURL: &url}, nil
}

type fakeInvitationService struct {
	err         error
	last        call
	lastCreate  *domain.EmailLog
	lastRequest *domain.InvitationRequest
}

func (f *fakeInvitationService) ListInvitations(ctx context.Context, eventID, actorID string) ([]*domain.EmailLog, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeInvitationService) CreateInvitation(ctx context.Context, eventID, actorID string, l *domain.EmailLog) (*domain.EmailLog, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastCreate = l
	if f.err != nil {
		return nil, f.err
	}
	l.ID, l.EventID = testChildID, eventID
	return l, nil
}

func (f *fakeInvitationService) GetInvitation(ctx context.Context, eventID, invitationID, actorID string) (*domain.EmailLog, error) {
	f.last = call{eventID: eventID, childID: invitationID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EmailLog{ID: invitationID, EventID: eventID, Status: domain.EmailQueued}, nil
}

func (f *fakeInvitationService) UpdateInvitation(ctx context.Context, eventID, invitationID, actorID string, patch domain.EmailLogPatch) (*domain.EmailLog, error) {
	f.last = call{eventID: eventID, childID: invitationID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	l := &domain.EmailLog{ID: invitationID, EventID: eventID, Status: domain.EmailQueued}
	patch.Apply(l)
	return l, nil
}

func (f *fakeInvitationService) DeleteInvitation(ctx context.Context, eventID, invitationID, actorID string) error {
	f.last = call{eventID: eventID, childID: invitationID, actorID: actorID}
	return f.err
}

func (f *fakeInvitationService) GenerateInvitations(ctx context.Context, eventID, actorID string, req *domain.InvitationRequest) ([]*domain.EmailLog, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.EmailLog, 0, len(req.Recipients))
	for _, rc := range req.Recipients {
		out = append(out, &domain.EmailLog{EventID: eventID, RecipientEmail: rc.Email, RecipientName: rc.Name, Status: domain.EmailQueued})
	}
	return out, nil
}

func (f *fakeInvitationService) SendAll(ctx context.Context, eventID, actorID string) (*domain.SendSummary, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SendSummary{Sent: 2, Failed: 1}, nil
}

func (f *fakeInvitationService) SendOne(ctx context.Context, eventID, invitationID, actorID string) (*domain.EmailLog, error) {
	f.last = call{eventID: eventID, childID: invitationID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.EmailLog{ID: invitationID, EventID: eventID, Status: domain.EmailSent}, nil
}

type fakeSocialPostService struct {
	err         error
	last        call
	lastCreate  *domain.SocialPost
	lastRequest *domain.SocialPostRequest
}

func (f *fakeSocialPostService) ListPosts(ctx context.Context, eventID, actorID string) ([]*domain.SocialPost, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakeSocialPostService) CreatePost(ctx context.Context, eventID, actorID string, p *domain.SocialPost) (*domain.SocialPost, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastCreate = p
	if f.err != nil {
		return nil, f.err
	}
	p.ID, p.EventID = testChildID, eventID
	return p, nil
}

func (f *fakeSocialPostService) GetPost(ctx context.Context, eventID, postID, actorID string) (*domain.SocialPost, error) {
	f.last = call{eventID: eventID, childID: postID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SocialPost{ID: postID, EventID: eventID, Platform: domain.PlatformX}, nil
}

func (f *fakeSocialPostService) UpdatePost(ctx context.Context, eventID, postID, actorID string, patch domain.SocialPostPatch) (*domain.SocialPost, error) {
	f.last = call{eventID: eventID, childID: postID, actorID: actorID}
	if f.err != nil {
		return nil, f.err
	}
	p := &domain.SocialPost{ID: postID, EventID: eventID}
	patch.Apply(p)
	return p, nil
}

func (f *fakeSocialPostService) DeletePost(ctx context.Context, eventID, postID, actorID string) error {
	f.last = call{eventID: eventID, childID: postID, actorID: actorID}
	return f.err
}

func (f *fakeSocialPostService) GeneratePosts(ctx context.Context, eventID, actorID string, req *domain.SocialPostRequest) ([]*domain.SocialPost, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.SocialPost{{ID: testChildID, EventID: eventID, Platform: req.Platform}}, nil
}

type fakePosterService struct {
	err         error
	last        call
	lastRequest *domain.PosterRequest
}

func (f *fakePosterService) ListPosters(ctx context.Context, eventID, actorID string) ([]*domain.VisualAsset, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	return nil, f.err
}

func (f *fakePosterService) DeletePoster(ctx context.Context, eventID, posterID, actorID string) error {
	f.last = call{eventID: eventID, childID: posterID, actorID: actorID}
	return f.err
}

func (f *fakePosterService) GeneratePoster(ctx context.Context, eventID, actorID string, req *domain.PosterRequest) (*domain.VisualAsset, error) {
	f.last = call{eventID: eventID, actorID: actorID}
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.VisualAsset{ID: testChildID, EventID: eventID, ImageURL: "/media/p.png", Tone: req.Tone}, nil
}
