package usecases

import (
	"context"
	"encoding/json"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
	"github.com/geloraapp/gelora/internal/pkg/metrics"
)

const provinceCacheKey = "provinces:all"

// provinceCacheTTL is generous; the province list is effectively static.
const provinceCacheTTL = 3600

// ProvinceService lists administrative regions with read-through caching.
type ProvinceService struct {
	provinces ports.ProvinceRepository
	cache     ports.CacheService
}

// NewProvinceService creates a new ProvinceService. cache may be nil.
func NewProvinceService(provinces ports.ProvinceRepository, cache ports.CacheService) *ProvinceService {
	return &ProvinceService{provinces: provinces, cache: cache}
}

// List returns all provinces ordered by name.
func (s *ProvinceService) List(ctx context.Context) ([]domain.Province, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, provinceCacheKey); err == nil {
			var provinces []domain.Province
			if err := json.Unmarshal(data, &provinces); err == nil {
				metrics.CacheHits.WithLabelValues("provinces").Inc()
				return provinces, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("provinces").Inc()
	}

	provinces, err := s.provinces.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(provinces); err == nil {
			_ = s.cache.Set(ctx, provinceCacheKey, data, provinceCacheTTL)
		}
	}

	return provinces, nil
}
