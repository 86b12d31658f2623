package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quakewatch/quakeagent"
	"github.com/quakewatch/quakeagent/schema"
)

// DefaultQuakeBaseURL is the USGS FDSN event service.
const DefaultQuakeBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1"

// Defaults applied when the optional query parameters are omitted.
const (
	DefaultMaxRadius    = 1.0 // degrees
	DefaultMinMagnitude = 1.0
)

// ArgumentError reports a malformed earthquake tool argument string. It is
// raised before any remote call is attempted.
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("tools: invalid earthquake query arguments: %v", e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// QuakeQuery describes one earthquake count lookup.
type QuakeQuery struct {
	StartTime    string  `json:"starttime"`
	EndTime      string  `json:"endtime"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	MaxRadius    float64 `json:"maxradius,omitempty"`
	MinMagnitude float64 `json:"minmagnitude,omitempty"`
}

// QuakeClient counts earthquakes matching a region, time window, and
// minimum magnitude.
type QuakeClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewQuakeClient creates a QuakeClient against [DefaultQuakeBaseURL] using
// http.DefaultClient.
func NewQuakeClient() *QuakeClient {
	return &QuakeClient{
		baseURL:    DefaultQuakeBaseURL,
		httpClient: http.DefaultClient,
	}
}

// WithBaseURL sets the service base URL. Returns the client for chaining.
func (c *QuakeClient) WithBaseURL(baseURL string) *QuakeClient {
	c.baseURL = baseURL
	return c
}

// WithHTTPClient sets the HTTP client. Returns the client for chaining.
func (c *QuakeClient) WithHTTPClient(httpClient *http.Client) *QuakeClient {
	c.httpClient = httpClient
	return c
}

// Count returns the number of matching earthquakes. Zero values for
// MaxRadius and MinMagnitude fall back to [DefaultMaxRadius] and
// [DefaultMinMagnitude]. A response without a count field counts as zero.
func (c *QuakeClient) Count(ctx context.Context, query QuakeQuery) (int, error) {
	if query.MaxRadius == 0 {
		query.MaxRadius = DefaultMaxRadius
	}
	if query.MinMagnitude == 0 {
		query.MinMagnitude = DefaultMinMagnitude
	}

	q := url.Values{}
	q.Set("starttime", query.StartTime)
	q.Set("endtime", query.EndTime)
	q.Set("latitude", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	q.Set("maxradius", strconv.FormatFloat(query.MaxRadius, 'f', -1, 64))
	q.Set("minmagnitude", strconv.FormatFloat(query.MinMagnitude, 'f', -1, 64))
	q.Set("format", "geojson")

	endpoint := c.baseURL + "/count?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("tools: build earthquake request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("tools: earthquake request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tools: earthquake request: unexpected status %s", resp.Status)
	}

	var parsed struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("tools: decode earthquake response: %w", err)
	}

	return parsed.Count, nil
}

// querySchema validates the tool's argument object before any remote call.
var querySchema = schema.MustCompile(schema.Object(map[string]*schema.Property{
	"starttime":    schema.String("Start of the time window, ISO date (YYYY-MM-DD)"),
	"endtime":      schema.String("End of the time window, ISO date (YYYY-MM-DD)"),
	"latitude":     schema.Number("Latitude of the search center"),
	"longitude":    schema.Number("Longitude of the search center"),
	"maxradius":    schema.Number("Search radius in degrees, default 1"),
	"minmagnitude": schema.Number("Minimum magnitude, default 1"),
}, "starttime", "endtime", "latitude", "longitude"))

// QuakeCountTool exposes QuakeClient to the agent loop. The action input
// must be a JSON object matching querySchema.
type QuakeCountTool struct {
	client *QuakeClient
}

// NewQuakeCountTool creates the tool over the given client.
func NewQuakeCountTool(client *QuakeClient) *QuakeCountTool {
	return &QuakeCountTool{client: client}
}

// Name returns the tool identifier used in Action lines.
func (t *QuakeCountTool) Name() string {
	return "EarthquakeCount"
}

// Description returns the usage description injected into the prompt.
func (t *QuakeCountTool) Description() string {
	return "Useful for counting earthquakes near a point within a time window. " +
		`The input is a JSON object with keys "starttime" and "endtime" (ISO dates), ` +
		`"latitude" and "longitude" (numbers), and optionally "maxradius" ` +
		`(degrees, default 1) and "minmagnitude" (default 1). ` +
		"Returns the number of matching earthquakes."
}

// Call validates the argument JSON against the schema, then performs the
// count lookup. Malformed or invalid arguments fail with *[ArgumentError]
// without touching the network.
func (t *QuakeCountTool) Call(ctx context.Context, input string) (string, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return "", &ArgumentError{Err: err}
	}
	if err := querySchema.Validate(raw); err != nil {
		return "", &ArgumentError{Err: err}
	}

	var query QuakeQuery
	if err := json.Unmarshal([]byte(input), &query); err != nil {
		return "", &ArgumentError{Err: err}
	}

	count, err := t.client.Count(ctx, query)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(count), nil
}

// Compile-time check that QuakeCountTool implements quakeagent.Tool.
var _ quakeagent.Tool = (*QuakeCountTool)(nil)
