package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"eventplanner/internal/domain"
)

// DefaultBaseURL is the Google Geocoding API endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults is returned when the query resolves to no place.
var ErrNoResults = errors.New("geocode: no results")

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type googleGeocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGoogleGeocoder returns a Geocoder backed by the Google Geocoding API.
func NewGoogleGeocoder(client *http.Client, baseURL, apiKey string) domain.Geocoder {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &googleGeocoder{client: client, baseURL: baseURL, apiKey: apiKey}
}

func (g *googleGeocoder) Geocode(ctx context.Context, query string) (*domain.GeoLocation, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("geocode: %w: GOOGLE_MAPS_API_KEY is not set", domain.ErrIntegrationUnavailable)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}

	params := url.Values{"address": {query}, "key": {g.apiKey}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call geocode api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode api returned status: %d", resp.StatusCode)
	}
	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}
	switch data.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, ErrNoResults
	default:
		return nil, fmt.Errorf("geocode api status %s: %s", data.Status, data.ErrorMessage)
	}
	if len(data.Results) == 0 {
		return nil, ErrNoResults
	}
	top := data.Results[0]
	return &domain.GeoLocation{
		FormattedAddress: top.FormattedAddress,
		Lat:              top.Geometry.Location.Lat,
		Lng:              top.Geometry.Location.Lng,
	}, nil
}
