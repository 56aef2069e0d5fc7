package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/geloraapp/gelora/internal/adapters/http"
	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/usecases"
	"github.com/geloraapp/gelora/internal/pkg/logging"
)

// ---- Mock repositories ----

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
	return nil, nil
}

type mockProvinceRepo struct {
	listFn func(ctx context.Context) ([]domain.Province, error)
}

func (m *mockProvinceRepo) List(ctx context.Context) ([]domain.Province, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockProvinceRepo) GetByID(ctx context.Context, id string) (*domain.Province, error) {
	return nil, domain.ErrNotFound
}

type mockBlogRepo struct {
	createFn  func(ctx context.Context, p *domain.BlogPost) error
	getByIDFn func(ctx context.Context, id string) (*domain.BlogPost, error)
	listFn    func(ctx context.Context) ([]domain.BlogPost, error)
}

func (m *mockBlogRepo) Create(ctx context.Context, p *domain.BlogPost) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}
func (m *mockBlogRepo) Update(ctx context.Context, p *domain.BlogPost) error { return nil }
func (m *mockBlogRepo) Delete(ctx context.Context, id string) error          { return nil }
func (m *mockBlogRepo) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockBlogRepo) List(ctx context.Context) ([]domain.BlogPost, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockComplaintRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Complaint, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockComplaintRepo) Create(ctx context.Context, c *domain.Complaint) error { return nil }
func (m *mockComplaintRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
func (m *mockComplaintRepo) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockComplaintRepo) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	return nil, nil
}
func (m *mockComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	return nil, nil
}
func (m *mockComplaintRepo) UpdateStatus(ctx context.Context, id string, status domain.ComplaintStatus) error {
	return nil
}

type mockGameRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Game, error)
	listFn    func(ctx context.Context, eventType domain.EventType) ([]domain.Game, error)
}

func (m *mockGameRepo) Create(ctx context.Context, g *domain.Game) error { return nil }
func (m *mockGameRepo) Update(ctx context.Context, g *domain.Game) error { return nil }
func (m *mockGameRepo) Delete(ctx context.Context, id string) error      { return nil }
func (m *mockGameRepo) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockGameRepo) List(ctx context.Context, eventType domain.EventType) ([]domain.Game, error) {
	if m.listFn != nil {
		return m.listFn(ctx, eventType)
	}
	return nil, nil
}
func (m *mockGameRepo) AddParticipant(ctx context.Context, gameID, userID string) error    { return nil }
func (m *mockGameRepo) RemoveParticipant(ctx context.Context, gameID, userID string) error { return nil }

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, address string) (*domain.GeoPoint, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*domain.GeoPoint, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, address)
	}
	return nil, domain.ErrAddressNotFound
}

// ---- Test helpers ----

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	log := discardLogger()
	d := &handler.Dependencies{
		Geocode:    usecases.NewGeocodeService(&mockGeocoder{}, nil, log),
		Search:     usecases.NewSearchService(&mockCourtRepo{}, &mockBookmarkRepo{}, log),
		Courts:     usecases.NewCourtService(&mockCourtRepo{}),
		Bookmarks:  usecases.NewBookmarkService(&mockBookmarkRepo{}, &mockCourtRepo{}),
		Provinces:  usecases.NewProvinceService(&mockProvinceRepo{}, nil),
		Blog:       usecases.NewBlogService(&mockBlogRepo{}),
		Complaints: usecases.NewComplaintService(&mockComplaintRepo{}),
		Games:      usecases.NewGameService(&mockGameRepo{}),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func activeCourt(id, owner, name string) domain.Court {
	return domain.Court{
		ID:           id,
		OwnerID:      owner,
		Name:         name,
		Address:      "Jl. Sudirman 1, Jakarta",
		Location:     domain.GeoPoint{Lat: -6.2088, Lon: 106.8456},
		CourtType:    domain.CourtBasketball,
		LocationType: domain.LocationIndoor,
		PricePerHour: 100000,
		IsActive:     true,
	}
}

// ---- Geocode handler tests ----

func TestGeocode_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Geocode = usecases.NewGeocodeService(&mockGeocoder{
			geocodeFn: func(ctx context.Context, address string) (*domain.GeoPoint, error) {
				return &domain.GeoPoint{Lat: -6.2088, Lon: 106.8456}, nil
			},
		}, nil, discardLogger())
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/geocode", strings.NewReader(`{"address":"Senayan, Jakarta"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Latitude != -6.2088 || result.Longitude != 106.8456 {
		t.Errorf("unexpected coordinates: %+v", result)
	}
}

func TestGeocode_RequestIDReachesServices(t *testing.T) {
	var rid string
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Geocode = usecases.NewGeocodeService(&mockGeocoder{
			geocodeFn: func(ctx context.Context, address string) (*domain.GeoPoint, error) {
				rid = logging.RequestID(ctx)
				return &domain.GeoPoint{Lat: -6.2088, Lon: 106.8456}, nil
			},
		}, nil, discardLogger())
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/geocode", strings.NewReader(`{"address":"Senayan"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if rid == "" {
		t.Error("expected the request ID to reach the service context")
	}
	if rid != resp.Header.Get(fiber.HeaderXRequestID) {
		t.Errorf("context request ID %q does not match response header %q", rid, resp.Header.Get(fiber.HeaderXRequestID))
	}
}

func TestGeocode_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/geocode", strings.NewReader(`{"address":"Atlantis"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	// The body keeps the legacy {"error": ...} shape, not the APIError envelope.
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Error != "address not found" {
		t.Errorf("expected legacy error body, got %q", body.Error)
	}
	if body.Code != "" {
		t.Errorf("unexpected envelope field in geocode 404: %q", body.Code)
	}
}

func TestGeocode_EmptyAddress(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/geocode", strings.NewReader(`{"address":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Search handler tests ----

func TestSearchCourts_StringCoordinates(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Search = usecases.NewSearchService(&mockCourtRepo{
			listActiveFn: func(ctx context.Context) ([]domain.Court, error) {
				return []domain.Court{activeCourt("c1", "o1", "GOR Senayan")}, nil
			},
		}, &mockBookmarkRepo{}, discardLogger())
	})
	app := setupApp(deps)

	body := `{"latitude":"-6.2088","longitude":"106.8456"}`
	req := httptest.NewRequest("POST", "/v1/courts/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Courts []struct {
			Name       string   `json:"name"`
			DistanceKm *float64 `json:"distance_km"`
		} `json:"courts"`
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Count != 1 {
		t.Fatalf("expected 1 court, got %d", result.Count)
	}
	if result.Courts[0].DistanceKm == nil {
		t.Error("expected a distance in radius mode")
	}
}

func TestSearchCourts_BracketAlias(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"provinces[]":["p1","p2"],"court_types[]":["futsal"]}`
	req := httptest.NewRequest("POST", "/v1/courts/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSearchCourts_LatWithoutLon(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/courts/search", strings.NewReader(`{"latitude":-6.2}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchCourts_OriginOutsideIndonesia(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"latitude":51.5074,"longitude":-0.1278}`
	req := httptest.NewRequest("POST", "/v1/courts/search", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchCourts_EmptyResultIsOK(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/courts/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Courts []json.RawMessage `json:"courts"`
		Count  int               `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Count != 0 || result.Courts == nil {
		t.Errorf("expected empty courts array with count 0, got %+v", result)
	}
}

// ---- Court management tests ----

func TestCreateCourt_RequiresIdentity(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/courts", strings.NewReader(`{"name":"GOR"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateCourt_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Courts = usecases.NewCourtService(&mockCourtRepo{
			createFn: func(ctx context.Context, c *domain.Court) error {
				c.ID = "c1"
				return nil
			},
		})
	})
	app := setupApp(deps)

	body := `{
		"name": "GOR Senayan",
		"address": "Jl. Pintu Satu Senayan",
		"latitude": "-6.2186",
		"longitude": 106.8021,
		"court_type": "basketball",
		"location_type": "indoor",
		"price_per_hour": "150000"
	}`
	req := httptest.NewRequest("POST", "/v1/courts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "owner-1")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var court domain.Court
	json.NewDecoder(resp.Body).Decode(&court)
	if court.OwnerID != "owner-1" {
		t.Errorf("expected owner-1, got %q", court.OwnerID)
	}
	if court.PricePerHour != 150000 {
		t.Errorf("string price not coerced, got %v", court.PricePerHour)
	}
}

func TestDeleteCourt_AnonymousRejected(t *testing.T) {
	var deleted bool
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Courts = usecases.NewCourtService(&mockCourtRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Court, error) {
				// ownerless court: the guard must fire before any ownership check
				c := activeCourt(id, "", "GOR Senayan")
				return &c, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = true
				return nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("DELETE", "/v1/courts/c1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if deleted {
		t.Error("anonymous caller must not reach the repository")
	}

	var apiErr struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "unauthorized" {
		t.Errorf("expected unauthorized code, got %q", apiErr.Code)
	}
}

func TestUpdateCourt_NonOwnerForbidden(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Courts = usecases.NewCourtService(&mockCourtRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Court, error) {
				c := activeCourt(id, "owner-1", "GOR Senayan")
				return &c, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("PUT", "/v1/courts/c1", strings.NewReader(`{"name":"Taken Over"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "owner-2")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

// ---- Bookmark tests ----

func TestRemoveBookmark_Missing(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("DELETE", "/v1/courts/c1/bookmark", nil)
	req.Header.Set("X-User-ID", "u1")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAddBookmark_Idempotent(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Bookmarks = usecases.NewBookmarkService(&mockBookmarkRepo{}, &mockCourtRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Court, error) {
				c := activeCourt(id, "owner-1", "GOR Senayan")
				return &c, nil
			},
		})
	})
	app := setupApp(deps)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/v1/courts/c1/bookmark", nil)
		req.Header.Set("X-User-ID", "u1")
		resp, _ := app.Test(req, -1)
		if resp.StatusCode != 201 {
			t.Fatalf("attempt %d: expected 201, got %d", i+1, resp.StatusCode)
		}
	}
}

// ---- Blog tests ----

func TestCreatePost_AdminOnly(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"title":"Opening Hours","content":"New schedule."}`

	req := httptest.NewRequest("POST", "/v1/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("POST", "/v1/posts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Role", "admin")
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 for admin, got %d", resp.StatusCode)
	}
}

func TestListPosts_Pagination(t *testing.T) {
	posts := make([]domain.BlogPost, 5)
	for i := range posts {
		posts[i] = domain.BlogPost{ID: string(rune('a' + i)), Title: "Post", Content: "Some words here."}
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Blog = usecases.NewBlogService(&mockBlogRepo{
			listFn: func(ctx context.Context) ([]domain.BlogPost, error) { return posts, nil },
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/posts?offset=2&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 posts in page, got %d", len(result.Data))
	}
}

// ---- Complaint tests ----

func TestDeleteComplaint_LockedConflict(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Complaints = usecases.NewComplaintService(&mockComplaintRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Complaint, error) {
				return &domain.Complaint{ID: id, UserID: "u1", Status: domain.ComplaintInProgress}, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("DELETE", "/v1/complaints/c1", nil)
	req.Header.Set("X-User-ID", "u1")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

// ---- Game tests ----

func TestJoinGame_FullConflict(t *testing.T) {
	full := &domain.Game{
		ID: "g1", Title: "Futsal", CreatorID: "u1",
		Participants: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Games = usecases.NewGameService(&mockGameRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Game, error) {
				return full, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/games/g1/join", nil)
	req.Header.Set("X-User-ID", "u99")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetGame_IncludesOthers(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Games = usecases.NewGameService(&mockGameRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Game, error) {
				return &domain.Game{ID: id, Title: "Main Game", CreatorID: "u1"}, nil
			},
			listFn: func(ctx context.Context, eventType domain.EventType) ([]domain.Game, error) {
				return []domain.Game{
					{ID: "g1", Title: "Main Game"},
					{ID: "g2", Title: "Other 1"},
					{ID: "g3", Title: "Other 2"},
				}, nil
			},
		})
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/games/g1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Game       domain.Game   `json:"game"`
		OtherGames []domain.Game `json:"other_games"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Game.ID != "g1" {
		t.Errorf("expected g1, got %q", result.Game.ID)
	}
	for _, g := range result.OtherGames {
		if g.ID == "g1" {
			t.Error("other games must exclude the requested game")
		}
	}
}

// ---- Deprecated alias ----

func TestLegacySearchAlias_Deprecated(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Deprecation") != "true" {
		t.Error("expected Deprecation header on the legacy path")
	}
	if resp.Header.Get("Sunset") == "" {
		t.Error("expected Sunset header on the legacy path")
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
