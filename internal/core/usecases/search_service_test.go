package usecases_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/usecases"
)

// --- Mock CourtRepository ---

type mockCourtRepo struct {
	createFn      func(ctx context.Context, c *domain.Court) error
	updateFn      func(ctx context.Context, c *domain.Court) error
	deleteFn      func(ctx context.Context, id string) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Court, error)
	listActiveFn  func(ctx context.Context) ([]domain.Court, error)
	listByOwnerFn func(ctx context.Context, ownerID string) ([]domain.Court, error)
}

func (m *mockCourtRepo) Create(ctx context.Context, c *domain.Court) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}
func (m *mockCourtRepo) Update(ctx context.Context, c *domain.Court) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}
func (m *mockCourtRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockCourtRepo) GetByID(ctx context.Context, id string) (*domain.Court, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockCourtRepo) ListActive(ctx context.Context) ([]domain.Court, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}
func (m *mockCourtRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Court, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

// --- Mock BookmarkRepository ---

type mockBookmarkRepo struct {
	addFn      func(ctx context.Context, userID, courtID string) error
	removeFn   func(ctx context.Context, userID, courtID string) error
	existsFn   func(ctx context.Context, userID, courtID string) (bool, error)
	courtIDsFn func(ctx context.Context, userID string) (map[string]bool, error)
}

func (m *mockBookmarkRepo) Add(ctx context.Context, userID, courtID string) error {
	if m.addFn != nil {
		return m.addFn(ctx, userID, courtID)
	}
	return nil
}
func (m *mockBookmarkRepo) Remove(ctx context.Context, userID, courtID string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, userID, courtID)
	}
	return nil
}
func (m *mockBookmarkRepo) Exists(ctx context.Context, userID, courtID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, courtID)
	}
	return false, nil
}
func (m *mockBookmarkRepo) CourtIDs(ctx context.Context, userID string) (map[string]bool, error) {
	if m.courtIDsFn != nil {
		return m.courtIDsFn(ctx, userID)
	}
	return map[string]bool{}, nil
}

// --- Test helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// jakarta is the search origin used throughout.
var jakarta = domain.GeoPoint{Lat: -6.2088, Lon: 106.8456}

// courtAt places a court roughly km kilometers north of Jakarta.
// One degree of latitude is ~111.195 km.
func courtAt(id, name string, km float64) domain.Court {
	return domain.Court{
		ID:           id,
		Name:         name,
		Location:     domain.GeoPoint{Lat: jakarta.Lat + km/111.195, Lon: jakarta.Lon},
		CourtType:    domain.CourtBasketball,
		LocationType: domain.LocationOutdoor,
		IsActive:     true,
	}
}

func fixedCourts(courts ...domain.Court) *mockCourtRepo {
	return &mockCourtRepo{
		listActiveFn: func(ctx context.Context) ([]domain.Court, error) {
			return courts, nil
		},
	}
}

// --- Tests ---

func TestSearch_RadiusMode_FiltersAndSortsByDistance(t *testing.T) {
	repo := fixedCourts(
		courtAt("c1", "GOR Senayan", 2.5),
		courtAt("c2", "Lapangan Menteng", 1.5),
		courtAt("c3", "GOR Bekasi", 30.0),
	)

	svc := usecases.NewSearchService(repo, &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{Origin: &jakarta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Count != 2 || len(res.Courts) != 2 {
		t.Fatalf("expected 2 courts within 10km, got count=%d len=%d", res.Count, len(res.Courts))
	}
	if res.Courts[0].ID != "c2" || res.Courts[1].ID != "c1" {
		t.Errorf("expected nearest-first order [c2 c1], got [%s %s]", res.Courts[0].ID, res.Courts[1].ID)
	}
	for _, cr := range res.Courts {
		if cr.DistanceKm == nil {
			t.Fatalf("radius mode must attach a distance to %s", cr.ID)
		}
	}
	if d := *res.Courts[0].DistanceKm; d < 1.3 || d > 1.7 {
		t.Errorf("expected ~1.5km for nearest court, got %v", d)
	}
}

func TestSearch_RadiusMode_EqualDistanceTieBreaksByName(t *testing.T) {
	a := courtAt("cb", "Beta", 3)
	b := courtAt("ca", "Alpha", 3)
	repo := fixedCourts(a, b)

	svc := usecases.NewSearchService(repo, &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{Origin: &jakarta})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Courts[0].Name != "Alpha" || res.Courts[1].Name != "Beta" {
		t.Errorf("equal distances must sort by name, got [%s %s]", res.Courts[0].Name, res.Courts[1].Name)
	}
}

func TestSearch_FilterMode_SortsByNameWithoutDistances(t *testing.T) {
	repo := fixedCourts(
		courtAt("c1", "Zebra Arena", 500), // far away; irrelevant without origin
		courtAt("c2", "Alpha Hall", 2),
	)

	svc := usecases.NewSearchService(repo, &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("filter mode must not drop distant courts, got count=%d", res.Count)
	}
	if res.Courts[0].Name != "Alpha Hall" {
		t.Errorf("filter mode sorts by name, got %s first", res.Courts[0].Name)
	}
	for _, cr := range res.Courts {
		if cr.DistanceKm != nil {
			t.Errorf("filter mode must not attach distances, got %v for %s", *cr.DistanceKm, cr.ID)
		}
	}
}

func TestSearch_OriginOutsideIndonesia_RejectedBeforeListing(t *testing.T) {
	listed := false
	repo := &mockCourtRepo{
		listActiveFn: func(ctx context.Context) ([]domain.Court, error) {
			listed = true
			return nil, nil
		},
	}

	svc := usecases.NewSearchService(repo, &mockBookmarkRepo{}, testLogger())
	london := domain.GeoPoint{Lat: 51.5, Lon: -0.12}
	_, err := svc.Search(context.Background(), domain.SearchCriteria{Origin: &london})
	if !errors.Is(err, domain.ErrOriginOutOfBounds) {
		t.Fatalf("expected ErrOriginOutOfBounds, got %v", err)
	}
	if listed {
		t.Error("out-of-bounds origin must be rejected before any court is read")
	}
}

func TestSearch_OriginInvalidCoordinates(t *testing.T) {
	svc := usecases.NewSearchService(fixedCourts(), &mockBookmarkRepo{}, testLogger())
	bad := domain.GeoPoint{Lat: 91, Lon: 0}
	_, err := svc.Search(context.Background(), domain.SearchCriteria{Origin: &bad})
	if !domain.IsInvalid(err) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
}

func TestSearch_ProvinceFilter(t *testing.T) {
	jabar := domain.Province{ID: "p1", Name: "Jawa Barat"}
	bali := domain.Province{ID: "p2", Name: "Bali"}

	c1 := courtAt("c1", "Bandung Futsal", 2)
	c1.Provinces = []domain.Province{jabar}
	c2 := courtAt("c2", "Denpasar Arena", 1)
	c2.Provinces = []domain.Province{bali}

	svc := usecases.NewSearchService(fixedCourts(c1, c2), &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{
		Origin:      &jakarta,
		ProvinceIDs: []string{"p1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Courts[0].ID != "c1" {
		t.Errorf("province filter must exclude other provinces regardless of distance, got %+v", res.Courts)
	}
}

func TestSearch_PriceRangeInclusive(t *testing.T) {
	c1 := courtAt("c1", "Cheap", 1)
	c1.PricePerHour = 50000
	c2 := courtAt("c2", "Mid", 1)
	c2.PricePerHour = 100000
	c3 := courtAt("c3", "Expensive", 1)
	c3.PricePerHour = 250000

	svc := usecases.NewSearchService(fixedCourts(c1, c2, c3), &mockBookmarkRepo{}, testLogger())
	minP, maxP := 50000.0, 100000.0
	res, err := svc.Search(context.Background(), domain.SearchCriteria{PriceMin: &minP, PriceMax: &maxP})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("price bounds are inclusive, expected 2 courts, got %d", res.Count)
	}
}

func TestSearch_CourtTypeFilter(t *testing.T) {
	c1 := courtAt("c1", "Hoop House", 1)
	c1.CourtType = domain.CourtBasketball
	c2 := courtAt("c2", "Shuttle Hall", 1)
	c2.CourtType = domain.CourtBadminton

	svc := usecases.NewSearchService(fixedCourts(c1, c2), &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{
		CourtTypes: []domain.CourtType{domain.CourtBadminton},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Courts[0].ID != "c2" {
		t.Errorf("expected only the badminton court, got %+v", res.Courts)
	}
}

func TestSearch_BookmarkedOnly_AnonymousIsNoOp(t *testing.T) {
	repo := fixedCourts(courtAt("c1", "A", 1), courtAt("c2", "B", 2))
	bookmarks := &mockBookmarkRepo{
		courtIDsFn: func(ctx context.Context, userID string) (map[string]bool, error) {
			t.Error("bookmark lookup must not run for anonymous callers")
			return nil, nil
		},
	}

	svc := usecases.NewSearchService(repo, bookmarks, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{BookmarkedOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("anonymous bookmarked_only must be skipped, got count=%d", res.Count)
	}
}

func TestSearch_BookmarkedOnly_Authenticated(t *testing.T) {
	repo := fixedCourts(courtAt("c1", "A", 1), courtAt("c2", "B", 2))
	bookmarks := &mockBookmarkRepo{
		courtIDsFn: func(ctx context.Context, userID string) (map[string]bool, error) {
			if userID != "u1" {
				t.Errorf("expected lookup for u1, got %q", userID)
			}
			return map[string]bool{"c2": true}, nil
		},
	}

	svc := usecases.NewSearchService(repo, bookmarks, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{BookmarkedOnly: true, UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Courts[0].ID != "c2" {
		t.Fatalf("expected only the bookmarked court, got %+v", res.Courts)
	}
	if !res.Courts[0].IsBookmarked {
		t.Error("is_bookmarked must be true for the bookmarked court")
	}
}

func TestSearch_IsBookmarkedFlagWithoutFilter(t *testing.T) {
	repo := fixedCourts(courtAt("ca", "A", 1), courtAt("cb", "B", 2))
	bookmarks := &mockBookmarkRepo{
		courtIDsFn: func(ctx context.Context, userID string) (map[string]bool, error) {
			return map[string]bool{"cb": true}, nil
		},
	}

	svc := usecases.NewSearchService(repo, bookmarks, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Courts[0].IsBookmarked || !res.Courts[1].IsBookmarked {
		t.Errorf("is_bookmarked flags wrong: %v %v", res.Courts[0].IsBookmarked, res.Courts[1].IsBookmarked)
	}
}

func TestSearch_TextQueryMatchesCourtAndProvinceNames(t *testing.T) {
	c1 := courtAt("c1", "GOR Senayan", 1)
	c1.Provinces = []domain.Province{{ID: "p1", Name: "DKI Jakarta"}}
	c2 := courtAt("c2", "Lapangan Ujung", 1)
	c2.Provinces = []domain.Province{{ID: "p2", Name: "Jawa Timur"}}

	svc := usecases.NewSearchService(fixedCourts(c1, c2), &mockBookmarkRepo{}, testLogger())

	res, err := svc.Search(context.Background(), domain.SearchCriteria{Query: "senayan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Courts[0].ID != "c1" {
		t.Errorf("query by court name failed: %+v", res.Courts)
	}

	res, err = svc.Search(context.Background(), domain.SearchCriteria{Query: "jawa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || res.Courts[0].ID != "c2" {
		t.Errorf("query by province name failed: %+v", res.Courts)
	}
}

func TestSearch_NoMatchesIsSuccess(t *testing.T) {
	svc := usecases.NewSearchService(fixedCourts(courtAt("c1", "Far", 500)), &mockBookmarkRepo{}, testLogger())
	res, err := svc.Search(context.Background(), domain.SearchCriteria{Origin: &jakarta})
	if err != nil {
		t.Fatalf("no matches must not be an error: %v", err)
	}
	if res.Count != 0 || len(res.Courts) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestSearch_InvalidPriceRange(t *testing.T) {
	svc := usecases.NewSearchService(fixedCourts(), &mockBookmarkRepo{}, testLogger())
	minP, maxP := 200.0, 100.0
	_, err := svc.Search(context.Background(), domain.SearchCriteria{PriceMin: &minP, PriceMax: &maxP})
	if !domain.IsInvalid(err) {
		t.Fatalf("expected invalid-input error for min > max, got %v", err)
	}
}
