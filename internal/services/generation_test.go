package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedModel struct {
	reply   string
	err     error
	prompts []string
}

func (m *scriptedModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

func newGateway(t *testing.T, text, image *scriptedModel) domain.ContentGenerator {
	t.Helper()
	g, err := NewContentGateway(text, image, discardLogger())
	require.NoError(t, err)
	return g
}

func fullPromptInput() promptInput {
	e := sampleEvent()
	return promptInput{
		Event:           e,
		Venue:           &domain.VenueSuggestion{Name: "Hall", Address: "1 Main St"},
		RegistrationURL: "https://forms.example/viewform",
		Prefs:           &domain.EventPreferences{Goal: "learn", Type: "Workshop", Date: "2025-06-01", Budget: 100},
		Search:          &domain.VenueSearch{Location: "Taipei", RadiusKm: 3},
		Center:          &domain.GeoLocation{FormattedAddress: "Taipei, Taiwan", Lat: 25, Lng: 121},
		Invitation:      &domain.InvitationRequest{Recipients: []domain.Recipient{{Name: "Ann", Email: "ann@example.com"}}, Tone: "warm", WordsLimit: 100, Language: "en"},
		Social:          &domain.SocialPostRequest{Platform: domain.PlatformX, PowerWords: []string{"free", "now"}},
		Poster:          &domain.PosterRequest{Tone: "bold"},
		PosterCopy:      &domain.PosterCopy{Headline: "H", Subheadline: "S"},
	}
}

func TestLoadPrompts_EveryKindRenders(t *testing.T) {
	prompts, err := loadPrompts(promptCatalog)
	require.NoError(t, err)
	require.Len(t, prompts, len(promptKinds))

	in := fullPromptInput()
	for _, kind := range promptKinds {
		t.Run(string(kind), func(t *testing.T) {
			p := prompts[kind]
			assert.NotEmpty(t, p.system)
			var sb strings.Builder
			require.NoError(t, p.user.Execute(&sb, in))
			assert.NotEmpty(t, sb.String())
		})
	}
	assert.True(t, prompts[domain.PromptPosterImage].image)
	assert.False(t, prompts[domain.PromptPosterCopy].image)
}

func TestLoadPrompts_MissingKind(t *testing.T) {
	_, err := loadPrompts([]byte("event_draft:\n  system: x\n  user: y\n"))
	assert.ErrorContains(t, err, "missing")
}

func TestContentGateway_Generate(t *testing.T) {
	ctx := context.Background()
	text := &scriptedModel{reply: "```json\n{\"headline\": \"Code Together\", \"subheadline\": \"All day\"}\n```"}
	g := newGateway(t, text, &scriptedModel{})

	var out domain.PosterCopy
	require.NoError(t, g.Generate(ctx, domain.PromptPosterCopy, fullPromptInput(), &out))
	assert.Equal(t, "Code Together", out.Headline)
	require.Len(t, text.prompts, 1)
	assert.Contains(t, text.prompts[0], "Event name: A")
}

func TestContentGateway_Generate_RendersRecipientsInOrder(t *testing.T) {
	text := &scriptedModel{reply: `{"invitation_list": [{"invitation_letter_subject": "s", "invitation_letter_body": "b"}]}`}
	g := newGateway(t, text, &scriptedModel{})
	in := fullPromptInput()
	in.Invitation.Recipients = append(in.Invitation.Recipients, domain.Recipient{Name: "Ben", Email: "ben@example.com"})

	var out domain.InvitationLetters
	require.NoError(t, g.Generate(context.Background(), domain.PromptInvitations, in, &out))
	assert.Contains(t, text.prompts[0], "1. Ann")
	assert.Contains(t, text.prompts[0], "2. Ben")
	assert.Contains(t, text.prompts[0], "event_registration_link: https://forms.example/viewform")
	assert.Contains(t, text.prompts[0], "start_time: "+in.Event.StartTime.Format(time.RFC3339))
}

func TestContentGateway_Generate_ImageRouting(t *testing.T) {
	text := &scriptedModel{}
	image := &scriptedModel{reply: `{"image_base64": "aGVsbG8="}`}
	g := newGateway(t, text, image)

	var out domain.PosterImage
	require.NoError(t, g.Generate(context.Background(), domain.PromptPosterImage, fullPromptInput(), &out))
	assert.Equal(t, "aGVsbG8=", out.ImageBase64)
	assert.Empty(t, text.prompts)
	assert.Len(t, image.prompts, 1)
}

func TestContentGateway_Generate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		model *scriptedModel
		want  error
	}{
		{"not json", &scriptedModel{reply: "Sure! Here are some ideas."}, domain.ErrUpstreamGeneration},
		{"missing key", &scriptedModel{reply: `{"subheadline": "only"}`}, domain.ErrUpstreamGeneration},
		{"model error", &scriptedModel{err: errors.New("503 from model")}, domain.ErrUpstreamGeneration},
		{"not configured", &scriptedModel{err: fmt.Errorf("gemini: %w", domain.ErrIntegrationUnavailable)}, domain.ErrIntegrationUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(t, tt.model, &scriptedModel{})
			var out domain.PosterCopy
			err := g.Generate(context.Background(), domain.PromptPosterCopy, fullPromptInput(), &out)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestContentGateway_Generate_UnknownKind(t *testing.T) {
	g := newGateway(t, &scriptedModel{}, &scriptedModel{})
	var out domain.PosterCopy
	err := g.Generate(context.Background(), domain.PromptKind("limerick"), fullPromptInput(), &out)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUpstreamGeneration)
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                 `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  ```json{\"a\":1}```  ": `{"a":1}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, stripCodeFence(in), in)
	}
}
