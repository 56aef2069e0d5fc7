package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
)

// Nominatim geocodes free-text addresses with OpenStreetMap's Nominatim API,
// restricted to Indonesia. The public API allows one request per second;
// the caching layer above keeps us well under that.
type Nominatim struct {
	client  HTTPClient
	baseURL string
	log     *slog.Logger
	// userAgent is required by the Nominatim usage policy.
	userAgent string
}

// HTTPClient is the subset of http.Client the provider needs. It exists so
// tests can substitute a canned transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResult is one entry of the Nominatim search response. Coordinates
// arrive as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

var (
	// ErrEmptyResponse means the service answered with zero candidates.
	ErrEmptyResponse = fmt.Errorf("%w: nominatim returned no results", ports.ErrNoResult)
	// ErrInvalidCoords means a candidate carried unparseable coordinates.
	ErrInvalidCoords = errors.New("nominatim returned invalid coordinates")
)

// requestTimeout bounds the external call; a slow provider counts as failed.
const requestTimeout = 5 * time.Second

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent = "Gelora-CourtFinder/1.0 (https://github.com/geloraapp/gelora)"
)

// NewNominatim creates a provider for the given search endpoint. Empty
// baseURL or userAgent fall back to the public endpoint defaults.
func NewNominatim(baseURL, userAgent string, log *slog.Logger) *Nominatim {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Nominatim{
		client:    &http.Client{Timeout: requestTimeout},
		baseURL:   baseURL,
		log:       log,
		userAgent: userAgent,
	}
}

// NewNominatimWithClient creates a provider with a custom HTTP client.
// Used by tests to mock the transport.
func NewNominatimWithClient(client HTTPClient, log *slog.Logger) *Nominatim {
	n := NewNominatim("", "", log)
	n.client = client
	return n
}

// Geocode resolves an address to a coordinate, constrained to Indonesia and
// asking for at most one candidate.
func (n *Nominatim) Geocode(ctx context.Context, address string) (*domain.GeoPoint, error) {
	reqURL, err := url.Parse(n.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address+", Indonesia")
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("countrycodes", "id")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		n.log.ErrorContext(ctx, "nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var results []nominatimResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: latitude %q", ErrInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: longitude %q", ErrInvalidCoords, results[0].Lon)
	}

	n.log.DebugContext(ctx, "nominatim resolved address", "address", address, "lat", lat, "lon", lon)
	return &domain.GeoPoint{Lat: lat, Lon: lon}, nil
}
