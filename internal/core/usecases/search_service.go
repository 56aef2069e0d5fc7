package usecases

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/ports"
	"github.com/geloraapp/gelora/internal/pkg/geospatial"
	"github.com/geloraapp/gelora/internal/pkg/logging"
	"github.com/geloraapp/gelora/internal/pkg/metrics"
)

// SearchRadiusKm is the fixed radius of a radius-mode search. It is not
// configurable per request.
const SearchRadiusKm = 10.0

// SearchService answers "which courts match these criteria, sorted how?".
// It only ever reads courts and bookmarks.
type SearchService struct {
	courts    ports.CourtRepository
	bookmarks ports.BookmarkRepository
	log       *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(courts ports.CourtRepository, bookmarks ports.BookmarkRepository, log *slog.Logger) *SearchService {
	return &SearchService{courts: courts, bookmarks: bookmarks, log: log}
}

// Search runs a court search. With an origin it operates in radius mode:
// courts within SearchRadiusKm sorted nearest-first. Without one it operates
// in filter mode: attribute filters only, sorted by name, no distances.
// Zero matches is a successful empty result.
func (s *SearchService) Search(ctx context.Context, criteria domain.SearchCriteria) (*domain.SearchResult, error) {
	if criteria.Origin != nil {
		if !criteria.Origin.Valid() {
			return nil, domain.Invalid("origin coordinates out of range")
		}
		// Reject before any distance work; this is caller-input validation,
		// not a geocoding miss.
		if !geospatial.InIndonesia(criteria.Origin.Lat, criteria.Origin.Lon) {
			return nil, domain.ErrOriginOutOfBounds
		}
	}
	if criteria.PriceMin != nil && *criteria.PriceMin < 0 {
		return nil, domain.Invalid("price_min must not be negative")
	}
	if criteria.PriceMin != nil && criteria.PriceMax != nil && *criteria.PriceMin > *criteria.PriceMax {
		return nil, domain.Invalid("price_min must not exceed price_max")
	}

	courts, err := s.courts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// One bookmark-set read serves both the bookmarked_only filter and the
	// per-result is_bookmarked flag. Anonymous callers get neither.
	var bookmarked map[string]bool
	if criteria.UserID != "" {
		bookmarked, err = s.bookmarks.CourtIDs(ctx, criteria.UserID)
		if err != nil {
			return nil, err
		}
	}

	results := make([]domain.CourtResult, 0, len(courts))
	for i := range courts {
		court := courts[i]
		if !matches(&court, &criteria, bookmarked) {
			continue
		}

		res := domain.CourtResult{Court: court, IsBookmarked: bookmarked[court.ID]}
		if criteria.Origin != nil {
			d := geospatial.Distance(*criteria.Origin, court.Location)
			if d > SearchRadiusKm {
				continue
			}
			rounded := math.Round(d*100) / 100
			res.DistanceKm = &rounded
		}
		results = append(results, res)
	}

	if criteria.Origin != nil {
		metrics.SearchesTotal.WithLabelValues("radius").Inc()
		// Composite key (distance, name, id) keeps equal-distance ordering
		// deterministic.
		sort.Slice(results, func(i, j int) bool {
			di, dj := *results[i].DistanceKm, *results[j].DistanceKm
			if di != dj {
				return di < dj
			}
			if results[i].Name != results[j].Name {
				return results[i].Name < results[j].Name
			}
			return results[i].ID < results[j].ID
		})
	} else {
		metrics.SearchesTotal.WithLabelValues("filter").Inc()
		sort.Slice(results, func(i, j int) bool {
			if results[i].Name != results[j].Name {
				return results[i].Name < results[j].Name
			}
			return results[i].ID < results[j].ID
		})
	}

	mode := "filter"
	if criteria.Origin != nil {
		mode = "radius"
	}
	metrics.SearchResultSize.Observe(float64(len(results)))
	logging.Tag(ctx, s.log).DebugContext(ctx, "court search", "mode", mode, "results", len(results))
	return &domain.SearchResult{Courts: results, Count: len(results)}, nil
}

// matches applies the non-geographic filters. They are independent,
// commutative predicates, so order does not matter.
func matches(c *domain.Court, criteria *domain.SearchCriteria, bookmarked map[string]bool) bool {
	if len(criteria.ProvinceIDs) > 0 && !provinceIntersects(c.Provinces, criteria.ProvinceIDs) {
		return false
	}
	if criteria.PriceMin != nil && c.PricePerHour < *criteria.PriceMin {
		return false
	}
	if criteria.PriceMax != nil && c.PricePerHour > *criteria.PriceMax {
		return false
	}
	if len(criteria.CourtTypes) > 0 && !typeIn(c.CourtType, criteria.CourtTypes) {
		return false
	}
	// Silently skipped for anonymous callers; guests see public results.
	if criteria.BookmarkedOnly && criteria.UserID != "" && !bookmarked[c.ID] {
		return false
	}
	if criteria.Query != "" && !textMatches(c, criteria.Query) {
		return false
	}
	return true
}

func provinceIntersects(provinces []domain.Province, wanted []string) bool {
	for _, p := range provinces {
		for _, id := range wanted {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

func typeIn(t domain.CourtType, set []domain.CourtType) bool {
	for _, ct := range set {
		if t == ct {
			return true
		}
	}
	return false
}

func textMatches(c *domain.Court, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	for _, p := range c.Provinces {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return true
		}
	}
	return false
}
