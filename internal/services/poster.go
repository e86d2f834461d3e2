package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"eventplanner/internal/domain"
)

type posterService struct {
	eventScope
	assetRepo domain.VisualAssetRepository
	generator domain.ContentGenerator
	media     domain.MediaStore
	timeouts  Timeouts
}

func NewPosterService(perms domain.PermissionEvaluator, eventRepo domain.EventRepository, venueRepo domain.VenueRepository,
	assetRepo domain.VisualAssetRepository, generator domain.ContentGenerator, media domain.MediaStore,
	timeouts Timeouts) domain.PosterService {
	return &posterService{
		eventScope: eventScope{perms: perms, events: eventRepo, venues: venueRepo},
		assetRepo:  assetRepo,
		generator:  generator,
		media:      media,
		timeouts:   timeouts,
	}
}

func (s *posterService) ListPosters(ctx context.Context, eventID, actorID string) ([]*domain.VisualAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionView); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list posters: %w", err)
	}
	if assets == nil {
		assets = []*domain.VisualAsset{}
	}
	return assets, nil
}

func (s *posterService) DeletePoster(ctx context.Context, eventID, posterID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Request)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionManage); err != nil {
		return err
	}
	a, err := s.assetRepo.GetByID(ctx, posterID)
	if err != nil {
		return notFoundOr(err, "get poster")
	}
	if err := belongsTo(eventID, a.EventID); err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, posterID); err != nil {
		return notFoundOr(err, "delete poster")
	}
	return nil
}

// GeneratePoster drafts the poster copy, renders the image from it and appends the stored asset.
func (s *posterService) GeneratePoster(ctx context.Context, eventID, actorID string, req *domain.PosterRequest) (*domain.VisualAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Generation)
	defer cancel()

	if err := s.authorize(ctx, eventID, actorID, domain.ActionEdit); err != nil {
		return nil, err
	}
	e, err := s.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	venues, err := s.venues.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	in := promptInput{Event: e, Poster: req}
	if len(venues) > 0 {
		in.Venue = venues[0]
	}

	var posterCopy domain.PosterCopy
	if err := s.generator.Generate(ctx, domain.PromptPosterCopy, in, &posterCopy); err != nil {
		return nil, err
	}
	in.PosterCopy = &posterCopy
	var image domain.PosterImage
	if err := s.generator.Generate(ctx, domain.PromptPosterImage, in, &image); err != nil {
		return nil, err
	}
	png, err := decodeImage(image.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("%w: poster image: %v", domain.ErrUpstreamGeneration, err)
	}

	imageURL, err := s.media.Save(ctx, png, ".png")
	if err != nil {
		return nil, fmt.Errorf("store poster image: %w", err)
	}
	asset := &domain.VisualAsset{
		EventID:     eventID,
		ImageURL:    imageURL,
		Headline:    posterCopy.Headline,
		Subheadline: posterCopy.Subheadline,
		Tone:        req.Tone,
		ColorScheme: req.ColorScheme,
		FontStyle:   req.FontStyle,
		LayoutStyle: req.LayoutStyle,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, fmt.Errorf("create poster: %w", err)
	}
	return asset, nil
}

// decodeImage accepts raw base64 or a data URL.
func decodeImage(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, ";base64,"); strings.HasPrefix(raw, "data:") && i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	return data, nil
}
