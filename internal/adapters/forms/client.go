package forms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eventplanner/internal/domain"
)

// DefaultBaseURL is the Google Forms API endpoint.
const DefaultBaseURL = "https://forms.googleapis.com"

type googleForms struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

// NewGoogleFormBuilder returns a FormBuilder that creates Google Forms with a pre-issued OAuth access token.
// With an empty token every call fails with domain.ErrIntegrationUnavailable.
func NewGoogleFormBuilder(client *http.Client, baseURL, accessToken string) domain.FormBuilder {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &googleForms{client: client, baseURL: strings.TrimRight(baseURL, "/"), accessToken: accessToken}
}

type formInfo struct {
	Title         string `json:"title,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	Description   string `json:"description,omitempty"`
}

type createFormResponse struct {
	FormID       string `json:"formId"`
	ResponderURI string `json:"responderUri"`
}

// CreateForm creates the form with its title, then adds the description and one question per field.
// The Forms API only accepts the title on create.
func (g *googleForms) CreateForm(ctx context.Context, title, description string, fields []domain.FormField) (string, error) {
	if g.accessToken == "" {
		return "", fmt.Errorf("google forms: %w: GOOGLE_FORMS_ACCESS_TOKEN is not set", domain.ErrIntegrationUnavailable)
	}

	var created createFormResponse
	create := map[string]any{"info": formInfo{Title: title, DocumentTitle: title}}
	if err := g.post(ctx, "/v1/forms", create, &created); err != nil {
		return "", fmt.Errorf("create form: %w", err)
	}
	if created.FormID == "" {
		return "", fmt.Errorf("create form: response has no formId")
	}

	if err := g.post(ctx, "/v1/forms/"+created.FormID+":batchUpdate", batchUpdate(description, fields), nil); err != nil {
		return "", fmt.Errorf("add form questions: %w", err)
	}
	if created.ResponderURI == "" {
		return "https://docs.google.com/forms/d/" + created.FormID + "/viewform", nil
	}
	return created.ResponderURI, nil
}

func batchUpdate(description string, fields []domain.FormField) map[string]any {
	requests := []map[string]any{{
		"updateFormInfo": map[string]any{
			"info":       formInfo{Description: description},
			"updateMask": "description",
		},
	}}
	for i, f := range fields {
		requests = append(requests, map[string]any{
			"createItem": map[string]any{
				"item": map[string]any{
					"title":       questionTitle(f),
					"description": f.Description,
					"questionItem": map[string]any{
						"question": question(f),
					},
				},
				"location": map[string]any{"index": i},
			},
		})
	}
	return map[string]any{"requests": requests}
}

func question(f domain.FormField) map[string]any {
	return map[string]any{
		"required":     f.Required,
		"textQuestion": map[string]any{"paragraph": f.Type == "textarea"},
	}
}

// questionTitle turns "first_name" into "First name".
func questionTitle(f domain.FormField) string {
	s := strings.TrimSpace(strings.ReplaceAll(f.RegistrationName, "_", " "))
	if s == "" {
		return f.Description
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (g *googleForms) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: google forms rejected the access token (status %d)", domain.ErrIntegrationUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google forms returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
