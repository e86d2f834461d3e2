package services

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"eventplanner/internal/domain"
)

//go:embed prompts.yaml
var promptCatalog []byte

// promptInput is the data every prompt template renders from. Unused fields stay nil.
type promptInput struct {
	Event           *domain.Event
	Venue           *domain.VenueSuggestion
	RegistrationURL string
	Prefs           *domain.EventPreferences
	Search          *domain.VenueSearch
	Center          *domain.GeoLocation
	Invitation      *domain.InvitationRequest
	Social          *domain.SocialPostRequest
	Poster          *domain.PosterRequest
	PosterCopy      *domain.PosterCopy
}

type promptSpec struct {
	Model  string `yaml:"model"`
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

type compiledPrompt struct {
	image  bool
	system string
	user   *template.Template
}

var promptFuncs = template.FuncMap{
	"rfc3339": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	"join":    func(items []string) string { return strings.Join(items, ", ") },
	"inc":     func(i int) int { return i + 1 },
}

type contentGateway struct {
	text    domain.TextGenerator
	image   domain.TextGenerator
	prompts map[domain.PromptKind]compiledPrompt
	logger  *slog.Logger
}

// NewContentGateway parses the embedded prompt catalog. Prompts marked "model: image" go to image,
// the rest to text.
func NewContentGateway(text, image domain.TextGenerator, logger *slog.Logger) (domain.ContentGenerator, error) {
	prompts, err := loadPrompts(promptCatalog)
	if err != nil {
		return nil, err
	}
	return &contentGateway{text: text, image: image, prompts: prompts, logger: logger}, nil
}

var promptKinds = []domain.PromptKind{
	domain.PromptEventDraft, domain.PromptTaskRoster, domain.PromptVenueSuggestions, domain.PromptRegistrationForm,
	domain.PromptInvitations, domain.PromptSocialPosts, domain.PromptPosterCopy, domain.PromptPosterImage,
}

func loadPrompts(raw []byte) (map[domain.PromptKind]compiledPrompt, error) {
	var specs map[domain.PromptKind]promptSpec
	if err := yaml.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("parse prompt catalog: %w", err)
	}
	out := make(map[domain.PromptKind]compiledPrompt, len(specs))
	for _, kind := range promptKinds {
		spec, ok := specs[kind]
		if !ok {
			return nil, fmt.Errorf("prompt catalog: missing %q", kind)
		}
		tmpl, err := template.New(string(kind)).Funcs(promptFuncs).Option("missingkey=error").Parse(spec.User)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", kind, err)
		}
		out[kind] = compiledPrompt{image: spec.Model == "image", system: strings.TrimSpace(spec.System), user: tmpl}
	}
	return out, nil
}

func (g *contentGateway) Generate(ctx context.Context, kind domain.PromptKind, input any, out domain.GenerationResult) error {
	p, ok := g.prompts[kind]
	if !ok {
		return fmt.Errorf("unknown prompt kind %q", kind)
	}
	var user bytes.Buffer
	if err := p.user.Execute(&user, input); err != nil {
		return fmt.Errorf("render prompt %q: %w", kind, err)
	}
	prompt := p.system + "\n\n" + strings.TrimSpace(user.String())

	generator := g.text
	if p.image {
		generator = g.image
	}

	start := time.Now()
	reply, err := generator.GenerateText(ctx, prompt)
	if err != nil {
		if errors.Is(err, domain.ErrIntegrationUnavailable) {
			return err
		}
		g.logger.WarnContext(ctx, "generation failed", "kind", kind, "err", err)
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamGeneration, kind, err)
	}
	g.logger.DebugContext(ctx, "generation completed", "kind", kind, "duration_ms", time.Since(start).Milliseconds())

	if err := json.Unmarshal([]byte(stripCodeFence(reply)), out); err != nil {
		g.logger.WarnContext(ctx, "generation reply is not JSON", "kind", kind, "err", err)
		return fmt.Errorf("%w: %s: decode reply: %v", domain.ErrUpstreamGeneration, kind, err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUpstreamGeneration, kind, err)
	}
	return nil
}

// stripCodeFence removes a surrounding ``` or ```json fence from a model reply.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
