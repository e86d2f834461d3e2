package services

import (
	"context"
	"fmt"
	"strings"

	"eventplanner/internal/domain"
)

type socialPostService struct {
	eventScope
	tx        domain.Transactor
	postRepo  domain.SocialPostRepository
	generator domain.ContentGenerator
	timeouts  Timeouts
}

func NewSocialPostService(tx domain.Transactor, perms domain.PermissionEvaluator, eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository, regRepo domain.RegistrationRepository,
	postRepo domain.SocialPostRepository, generator domain.ContentGenerator,
	timeouts Timeouts) domain.SocialPostService {
	return &socialPostService{
		eventScope: eventScope{perms: perms, events: eventRepo, venues: venueRepo, regs: regRepo},
		tx:         tx,
		postRepo:   postRepo,
		generator:  generator,
		timeouts:   timeouts,
	}
}

func (s *socialPostService) ListPosts(ctx context.Context, eventID, actorID string) ([]*domain.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list social posts: %w", err)
	}
	if posts == nil {
		posts = []*domain.SocialPost{}
	}
	return posts, nil
}

func (s *socialPostService) CreatePost(ctx context.Context, eventID, actorID string, p *domain.SocialPost) (*domain.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	p.EventID = eventID
	p.Hashtags = normalizeHashtags(p.Hashtags)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create social post: %w", err)
	}
	return p, nil
}

func (s *socialPostService) GetPost(ctx context.Context, eventID, postID, actorID string) (*domain.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	return s.load(ctx, eventID, postID)
}

func (s *socialPostService) load(ctx context.Context, eventID, postID string) (*domain.SocialPost, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "get social post")
	}
	if err := belongsTo(eventID, p.EventID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *socialPostService) UpdatePost(ctx context.Context, eventID, postID, actorID string, patch domain.SocialPostPatch) (*domain.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	p, err := s.load(ctx, eventID, postID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	p.Hashtags = normalizeHashtags(p.Hashtags)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, notFoundOr(err, "update social post")
	}
	return p, nil
}

func (s *socialPostService) DeletePost(ctx context.Context, eventID, postID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	if _, err := s.load(ctx, eventID, postID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return notFoundOr(err, "delete social post")
	}
	return nil
}

func (s *socialPostService) GeneratePosts(ctx context.Context, eventID, actorID string, req *domain.SocialPostRequest) ([]*domain.SocialPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	if !req.Platform.Valid() {
		return nil, domain.NewValidationError(map[string]string{"platform": "must be one of facebook, instagram, x, threads"})
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	venue, err := s.venue(ctx, eventID, req.VenueID)
	if err != nil {
		return nil, err
	}

	link, err := s.registrationURL(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var reply domain.SocialPostDrafts
	in := promptInput{Event: e, Venue: venue, RegistrationURL: link, Social: req}
	if err := s.generator.Generate(ctx, domain.PromptSocialPosts, in, &reply); err != nil {
		return nil, err
	}

	posts := make([]*domain.SocialPost, 0, len(reply.Posts))
	for _, d := range reply.Posts {
		posts = append(posts, &domain.SocialPost{
			EventID:  eventID,
			Platform: req.Platform,
			Content:  d.Content,
			Hashtags: normalizeHashtags(d.Hashtags),
			Tone:     req.Tone,
			Language: req.Language,
		})
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.postRepo.ReplaceForEvent(ctx, eventID, posts); err != nil {
			return fmt.Errorf("replace social posts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// normalizeHashtags trims, drops blanks and prefixes every tag with '#'.
func normalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || t == "#" {
			continue
		}
		if !strings.HasPrefix(t, "#") {
			t = "#" + t
		}
		out = append(out, t)
	}
	return out
}
