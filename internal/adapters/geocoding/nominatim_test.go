package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/geloraapp/gelora/internal/adapters/geocoding"
)

// mockHTTPClient returns a canned response or error.
type mockHTTPClient struct {
	doFn func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFn(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNominatim_Geocode_Success(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			if q.Get("countrycodes") != "id" {
				t.Errorf("expected countrycodes=id, got %q", q.Get("countrycodes"))
			}
			if q.Get("limit") != "1" {
				t.Errorf("expected limit=1, got %q", q.Get("limit"))
			}
			if q.Get("q") != "Senayan, Jakarta, Indonesia" {
				t.Errorf("unexpected query %q", q.Get("q"))
			}
			if req.Header.Get("User-Agent") == "" {
				t.Error("User-Agent header is required by the Nominatim policy")
			}
			return jsonResponse(200, `[{"lat": "-6.2088", "lon": "106.8456"}]`), nil
		},
	}

	provider := geocoding.NewNominatimWithClient(client, discardLogger())
	pt, err := provider.Geocode(context.Background(), "Senayan, Jakarta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt.Lat != -6.2088 || pt.Lon != 106.8456 {
		t.Errorf("got (%v, %v), want (-6.2088, 106.8456)", pt.Lat, pt.Lon)
	}
}

func TestNominatim_Geocode_EmptyResponse(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `[]`), nil
		},
	}

	provider := geocoding.NewNominatimWithClient(client, discardLogger())
	_, err := provider.Geocode(context.Background(), "Jalan Tidak Ada 99")
	if !errors.Is(err, geocoding.ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestNominatim_Geocode_TransportError(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}

	provider := geocoding.NewNominatimWithClient(client, discardLogger())
	if _, err := provider.Geocode(context.Background(), "Senayan"); err == nil {
		t.Fatal("expected error on transport failure")
	}
}

func TestNominatim_Geocode_HTTPError(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(503, `upstream unavailable`), nil
		},
	}

	provider := geocoding.NewNominatimWithClient(client, discardLogger())
	if _, err := provider.Geocode(context.Background(), "Senayan"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestNominatim_Geocode_InvalidCoordinates(t *testing.T) {
	client := &mockHTTPClient{
		doFn: func(req *http.Request) (*http.Response, error) {
			return jsonResponse(200, `[{"lat": "not-a-number", "lon": "106.8"}]`), nil
		},
	}

	provider := geocoding.NewNominatimWithClient(client, discardLogger())
	_, err := provider.Geocode(context.Background(), "Senayan")
	if !errors.Is(err, geocoding.ErrInvalidCoords) {
		t.Errorf("expected ErrInvalidCoords, got %v", err)
	}
}
