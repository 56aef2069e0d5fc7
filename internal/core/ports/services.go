package ports

import (
	"context"
	"errors"

	"github.com/geloraapp/gelora/internal/core/domain"
)

// ErrNoResult means a geocoding provider answered successfully but found no
// candidate for the address. Providers wrap it so the service layer can tell
// "address unknown" from "provider broken" without knowing the provider.
var ErrNoResult = errors.New("geocoder found no result")

// Geocoder converts a free-text address into a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.GeoPoint, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
