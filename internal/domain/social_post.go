package domain

import (
	"context"
	"unicode/utf8"
)

// Platform is a social network a post targets.
type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformX         Platform = "x"
	PlatformThreads   Platform = "threads"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformFacebook, PlatformInstagram, PlatformX, PlatformThreads:
		return true
	}
	return false
}

// SocialPost is a drafted social media caption.
// swagger:model SocialPost
type SocialPost struct {
	ID       string   `json:"id"`
	EventID  string   `json:"event_id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
	Tone     string   `json:"tone"`
	Language string   `json:"language"`
}

type SocialPostPatch struct {
	Platform *Platform `json:"platform,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Hashtags *[]string `json:"hashtags,omitempty"`
	Tone     *string   `json:"tone,omitempty"`
	Language *string   `json:"language,omitempty"`
}

func (p SocialPostPatch) Apply(s *SocialPost) {
	if p.Platform != nil {
		s.Platform = *p.Platform
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.Hashtags != nil {
		s.Hashtags = *p.Hashtags
	}
	if p.Tone != nil {
		s.Tone = *p.Tone
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
}

func (s *SocialPost) Validate() error {
	fields := map[string]string{}
	if !s.Platform.Valid() {
		fields["platform"] = "must be one of facebook, instagram, x, threads"
	}
	if s.Content == "" {
		fields["content"] = "must not be empty"
	}
	if utf8.RuneCountInString(s.Language) > 10 {
		fields["language"] = "must be at most 10 characters"
	}
	return NewValidationError(fields)
}

// SocialPostRequest drives post drafting. VenueID may be empty.
type SocialPostRequest struct {
	Platform     Platform `json:"platform"`
	Tone         string   `json:"tone"`
	HookType     string   `json:"hook_type"`
	WordsLimit   int      `json:"words_limit"`
	IncludeEmoji bool     `json:"include_emoji"`
	EmojiLevel   string   `json:"emoji_level"`
	PowerWords   []string `json:"power_words"`
	HashtagSeeds []string `json:"hashtag_seeds"`
	Language     string   `json:"language"`
	VenueID      string   `json:"venue_id"`
}

type SocialPostRepository interface {
	ListByEventID(ctx context.Context, eventID string) ([]*SocialPost, error)
	GetByID(ctx context.Context, id string) (*SocialPost, error)
	Create(ctx context.Context, p *SocialPost) error
	Update(ctx context.Context, p *SocialPost) error
	Delete(ctx context.Context, id string) error
	ReplaceForEvent(ctx context.Context, eventID string, posts []*SocialPost) error
}

type SocialPostService interface {
	ListPosts(ctx context.Context, eventID, actorID string) ([]*SocialPost, error)
	CreatePost(ctx context.Context, eventID, actorID string, p *SocialPost) (*SocialPost, error)
	GetPost(ctx context.Context, eventID, postID, actorID string) (*SocialPost, error)
	UpdatePost(ctx context.Context, eventID, postID, actorID string, patch SocialPostPatch) (*SocialPost, error)
	DeletePost(ctx context.Context, eventID, postID, actorID string) error
	GeneratePosts(ctx context.Context, eventID, actorID string, req *SocialPostRequest) ([]*SocialPost, error)
}
