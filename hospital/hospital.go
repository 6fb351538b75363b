// Package hospital finds hospitals near a free-text location through the
// Geoapify geocoding and places APIs.
package hospital

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Geoapify API root.
	DefaultBaseURL = "https://api.geoapify.com"
	// DefaultTimeout bounds each of the two lookups.
	DefaultTimeout = 10 * time.Second
	// DefaultLimit is the maximum number of hospitals returned.
	DefaultLimit = 5

	category = "healthcare.hospital"

	unnamed         = "Unnamed"
	noAddress       = "Address not available"
	mapSearchPrefix = "https://www.google.com/maps/search/?api=1&query="
)

// UnavailableMessage is the text of the error-marker entry.
const UnavailableMessage = "Unable to fetch hospitals at this time."

var (
	// ErrMissingCredentials is reported when no API key is configured.
	ErrMissingCredentials = errors.New("geocoding API key not configured")
	// ErrNoResults is reported when the location cannot be geocoded.
	ErrNoResults = errors.New("location not found")
	// ErrUnavailable covers transport errors, non-2xx statuses and undecodable bodies.
	ErrUnavailable = errors.New("geocoding service unavailable")
)

// Hospital is one suggested hospital. An entry with only Error set is the
// marker telling the caller the lookup failed.
type Hospital struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	MapLink string   `json:"map_link,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Result is the outcome of a lookup. Hospitals is never nil.
type Result struct {
	Hospitals []Hospital
	Err       error
}

// Suggestions returns the list shown to the user: the error marker when the
// service was unreachable, otherwise the (possibly empty) hospital list.
func (r Result) Suggestions() []Hospital {
	if errors.Is(r.Err, ErrUnavailable) {
		return []Hospital{{Error: UnavailableMessage}}
	}
	if r.Hospitals == nil {
		return []Hospital{}
	}
	return r.Hospitals
}

// Locator finds hospitals near a location.
type Locator interface {
	Find(ctx context.Context, location string) Result
}

// Config contains configuration for the Geoapify client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Limit   int
}

// GeoapifyClient implements Locator.
type GeoapifyClient struct {
	config Config
	client *http.Client
}

// NewGeoapifyClient creates a client, filling unset fields with defaults.
func NewGeoapifyClient(config Config) *GeoapifyClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Limit == 0 {
		config.Limit = DefaultLimit
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &GeoapifyClient{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

type placesResponse struct {
	Features []struct {
		Properties struct {
			Name      string   `json:"name"`
			Formatted string   `json:"formatted"`
			Lat       *float64 `json:"lat"`
			Lon       *float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Find geocodes location and returns up to Limit nearby hospitals.
func (g *GeoapifyClient) Find(ctx context.Context, location string) Result {
	if g.config.APIKey == "" {
		return Result{Hospitals: []Hospital{}, Err: ErrMissingCredentials}
	}

	lon, lat, err := g.geocode(ctx, location)
	if err != nil {
		return Result{Hospitals: []Hospital{}, Err: err}
	}

	hospitals, err := g.places(ctx, lon, lat)
	if err != nil {
		return Result{Hospitals: []Hospital{}, Err: err}
	}
	return Result{Hospitals: hospitals}
}

func (g *GeoapifyClient) geocode(ctx context.Context, location string) (lon, lat float64, err error) {
	q := url.Values{}
	q.Set("text", location)
	q.Set("apiKey", g.config.APIKey)

	var decoded geocodeResponse
	if err := g.getJSON(ctx, g.config.BaseURL+"/v1/geocode/search?"+q.Encode(), &decoded); err != nil {
		return 0, 0, err
	}
	if len(decoded.Features) == 0 {
		return 0, 0, ErrNoResults
	}
	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return 0, 0, fmt.Errorf("%w: malformed coordinates", ErrUnavailable)
	}
	return coords[0], coords[1], nil
}

func (g *GeoapifyClient) places(ctx context.Context, lon, lat float64) ([]Hospital, error) {
	q := url.Values{}
	q.Set("categories", category)
	q.Set("bias", fmt.Sprintf("proximity:%v,%v", lon, lat))
	q.Set("limit", fmt.Sprintf("%d", g.config.Limit))
	q.Set("apiKey", g.config.APIKey)

	var decoded placesResponse
	if err := g.getJSON(ctx, g.config.BaseURL+"/v2/places?"+q.Encode(), &decoded); err != nil {
		return nil, err
	}

	hospitals := make([]Hospital, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		hospitals = append(hospitals, normalize(f.Properties.Name, f.Properties.Formatted, f.Properties.Lat, f.Properties.Lon))
	}
	return hospitals, nil
}

func normalize(name, formatted string, lat, lon *float64) Hospital {
	h := Hospital{
		Name:    name,
		Address: formatted,
		Lat:     lat,
		Lon:     lon,
	}
	if h.Name == "" {
		h.Name = unnamed
	}
	if h.Address == "" {
		h.Address = noAddress
	}
	h.MapLink = MapLink(lat, lon)
	return h
}

// MapLink builds a map search URL for the given coordinates. Missing
// coordinates render as "None".
func MapLink(lat, lon *float64) string {
	return mapSearchPrefix + coord(lat) + "," + coord(lon)
}

func coord(v *float64) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("%v", *v)
}

func (g *GeoapifyClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, redact(err, g.config.APIKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

// url.Error embeds the request URL, which carries the API key.
func redact(err error, key string) string {
	if key == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), key, "REDACTED")
}
