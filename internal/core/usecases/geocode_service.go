package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
	"github.com/geloraapp/gelora/internal/pkg/geospatial"
	"github.com/geloraapp/gelora/internal/pkg/logging"
	"github.com/geloraapp/gelora/internal/pkg/metrics"
)

// geocodeCacheTTL keeps resolved addresses for a day.
const geocodeCacheTTL = 24 * 60 * 60

const geocodeKeyPrefix = "geocode:"

// GeocodeService resolves free-text addresses to Indonesian coordinates.
// Every negative outcome — provider unreachable, zero candidates, or a
// geocode landing outside the country box — surfaces as
// domain.ErrAddressNotFound. The real cause stays in logs and metrics only.
type GeocodeService struct {
	provider ports.Geocoder
	cache    ports.CacheService
	log      *slog.Logger
}

// NewGeocodeService creates a new GeocodeService. cache may be nil, in which
// case every call hits the provider.
func NewGeocodeService(provider ports.Geocoder, cache ports.CacheService, log *slog.Logger) *GeocodeService {
	return &GeocodeService{provider: provider, cache: cache, log: log}
}

// Geocode returns the coordinate for an address, or ErrAddressNotFound.
// The cache key is the raw address string, exact and case-sensitive.
// Concurrent misses for the same address may both call the provider; the
// cache write is idempotent so the race is harmless.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (*domain.GeoPoint, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.Invalid("address is required")
	}

	cacheKey := geocodeKeyPrefix + address
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var pt domain.GeoPoint
			if err := json.Unmarshal(data, &pt); err == nil {
				metrics.GeocodeRequests.WithLabelValues("cache_hit").Inc()
				metrics.CacheHits.WithLabelValues("geocode").Inc()
				return &pt, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("geocode").Inc()
	}

	pt, err := s.provider.Geocode(ctx, address)
	if err != nil {
		outcome := "provider_error"
		if errors.Is(err, ports.ErrNoResult) {
			outcome = "no_result"
		}
		metrics.GeocodeRequests.WithLabelValues(outcome).Inc()
		logging.Tag(ctx, s.log).WarnContext(ctx, "geocoding failed", "address", address, "cause", outcome, "error", err)
		return nil, domain.ErrAddressNotFound
	}

	// A mis-geocoded address landing outside the country counts as not found.
	if !geospatial.InIndonesia(pt.Lat, pt.Lon) {
		metrics.GeocodeRequests.WithLabelValues("out_of_bounds").Inc()
		logging.Tag(ctx, s.log).WarnContext(ctx, "geocode outside Indonesia bounds",
			"address", address, "lat", pt.Lat, "lon", pt.Lon)
		return nil, domain.ErrAddressNotFound
	}

	if s.cache != nil {
		if data, err := json.Marshal(pt); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, geocodeCacheTTL)
		}
	}

	metrics.GeocodeRequests.WithLabelValues("found").Inc()
	return pt, nil
}
