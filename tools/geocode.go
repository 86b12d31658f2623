// Package tools provides the two remote capabilities the agent can invoke:
// a geocoder (place name to coordinates) and an earthquake counter (region,
// time window, and magnitude to event count). Clients perform one
// synchronous lookup per call with no retries and no caching; the agent
// loop turns their errors into observations for the model.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/quakewatch/quakeagent"
)

// DefaultGeocodeBaseURL is the ArcGIS World Geocoding service.
const DefaultGeocodeBaseURL = "https://geocode.arcgis.com/arcgis/rest/services/World/GeocodeServer"

// ErrNoCandidates is returned when the geocoder has no match for the place.
// The error text is what the model sees as its observation.
var ErrNoCandidates = errors.New("tools: location could not be resolved")

// GeocodeClient resolves free-text place names to coordinates.
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocodeClient creates a GeocodeClient against
// [DefaultGeocodeBaseURL] using http.DefaultClient.
func NewGeocodeClient() *GeocodeClient {
	return &GeocodeClient{
		baseURL:    DefaultGeocodeBaseURL,
		httpClient: http.DefaultClient,
	}
}

// WithBaseURL sets the service base URL. Returns the client for chaining.
func (c *GeocodeClient) WithBaseURL(baseURL string) *GeocodeClient {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// WithHTTPClient sets the HTTP client. Returns the client for chaining.
func (c *GeocodeClient) WithHTTPClient(httpClient *http.Client) *GeocodeClient {
	c.httpClient = httpClient
	return c
}

type geocodeResponse struct {
	Candidates []struct {
		Location struct {
			X float64 `json:"x"` // longitude
			Y float64 `json:"y"` // latitude
		} `json:"location"`
	} `json:"candidates"`
}

// Lookup resolves a place name to the highest-ranked candidate's
// (latitude, longitude). Fails with [ErrNoCandidates] when the provider
// returns zero candidates.
func (c *GeocodeClient) Lookup(ctx context.Context, place string) (lat, lon float64, err error) {
	q := url.Values{}
	q.Set("SingleLine", place)
	q.Set("f", "json")

	endpoint := c.baseURL + "/findAddressCandidates?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("tools: build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("tools: geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("tools: geocode request: unexpected status %s", resp.Status)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, 0, fmt.Errorf("tools: decode geocode response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		return 0, 0, ErrNoCandidates
	}

	best := parsed.Candidates[0].Location
	return best.Y, best.X, nil
}

// GeocodeTool exposes GeocodeClient to the agent loop.
type GeocodeTool struct {
	client *GeocodeClient
}

// NewGeocodeTool creates the tool over the given client.
func NewGeocodeTool(client *GeocodeClient) *GeocodeTool {
	return &GeocodeTool{client: client}
}

// Name returns the tool identifier used in Action lines.
func (t *GeocodeTool) Name() string {
	return "Geocode"
}

// Description returns the usage description injected into the prompt.
func (t *GeocodeTool) Description() string {
	return "Useful for finding the latitude and longitude of a place. " +
		"The input is a free-text place name such as \"Riverside, CA\". " +
		"Returns the coordinates as \"(latitude, longitude)\"."
}

// Call resolves the place named by input and formats the coordinates as
// "(latitude, longitude)" with six decimal places.
func (t *GeocodeTool) Call(ctx context.Context, input string) (string, error) {
	lat, lon, err := t.client.Lookup(ctx, strings.TrimSpace(input))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%f, %f)", lat, lon), nil
}

// Compile-time check that GeocodeTool implements quakeagent.Tool.
var _ quakeagent.Tool = (*GeocodeTool)(nil)
