package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/geloraapp/gelora/internal/core/domain"
	"github.com/geloraapp/gelora/internal/core/usecases"
)

// --- Geocoding ---

type geocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeHandler resolves a free-text address to coordinates.
func GeocodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req geocodeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		point, err := deps.Geocode.Geocode(c.UserContext(), req.Address)
		if err != nil {
			if errors.Is(err, domain.ErrAddressNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "address not found"})
			}
			return mapDomainError(c, err)
		}

		return c.JSON(fiber.Map{
			"latitude":  point.Lat,
			"longitude": point.Lon,
		})
	}
}

// --- Court search ---

// SearchCourtsHandler runs the radius/filter court search.
func SearchCourtsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		criteria, err := req.criteria(userID(c))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		result, err := deps.Search.Search(c.UserContext(), criteria)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(result)
	}
}

// --- Provinces ---

// ListProvincesHandler returns all provinces, cached upstream.
func ListProvincesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provinces, err := deps.Provinces.List(c.UserContext())
		if err != nil {
			return mapDomainError(c, err)
		}
		if provinces == nil {
			provinces = []domain.Province{}
		}
		return c.JSON(provinces)
	}
}

// --- Court management ---

type courtRequest struct {
	Name             string     `json:"name"`
	Address          string     `json:"address"`
	Latitude         *FlexFloat `json:"latitude"`
	Longitude        *FlexFloat `json:"longitude"`
	CourtType        string     `json:"court_type"`
	LocationType     string     `json:"location_type"`
	PricePerHour     *FlexFloat `json:"price_per_hour"`
	PhoneNumber      string     `json:"phone_number"`
	Description      string     `json:"description"`
	OperationalHours string     `json:"operational_hours"`
	ProvinceIDs      []string   `json:"province_ids"`
}

func (r *courtRequest) court() *domain.Court {
	court := &domain.Court{
		Name:             strings.TrimSpace(r.Name),
		Address:          strings.TrimSpace(r.Address),
		CourtType:        domain.CourtType(r.CourtType),
		LocationType:     domain.LocationType(r.LocationType),
		PhoneNumber:      r.PhoneNumber,
		Description:      r.Description,
		OperationalHours: r.OperationalHours,
	}
	if r.Latitude != nil {
		court.Location.Lat = float64(*r.Latitude)
	}
	if r.Longitude != nil {
		court.Location.Lon = float64(*r.Longitude)
	}
	if r.PricePerHour != nil {
		court.PricePerHour = float64(*r.PricePerHour)
	}
	for _, id := range r.ProvinceIDs {
		court.Provinces = append(court.Provinces, domain.Province{ID: id})
	}
	return court
}

// CreateCourtHandler registers a court owned by the caller.
func CreateCourtHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}

		var req courtRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		court := req.court()
		if err := deps.Courts.Create(c.UserContext(), uid, court); err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(court)
	}
}

// GetCourtHandler returns a single court.
func GetCourtHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		court, err := deps.Courts.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(court)
	}
}

// UpdateCourtHandler replaces a court's attributes, owner-only.
func UpdateCourtHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}

		var req courtRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}

		court, err := deps.Courts.Update(c.UserContext(), uid, c.Params("id"), req.court())
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(court)
	}
}

// DeleteCourtHandler removes a court, owner-only.
func DeleteCourtHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		if err := deps.Courts.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// ListOwnCourtsHandler returns the caller's courts, active or not.
func ListOwnCourtsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		courts, err := deps.Courts.ListOwn(c.UserContext(), uid)
		if err != nil {
			return mapDomainError(c, err)
		}
		if courts == nil {
			courts = []domain.Court{}
		}
		return c.JSON(courts)
	}
}

// --- Bookmarks ---

// AddBookmarkHandler saves a court for the caller. Idempotent.
func AddBookmarkHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		if err := deps.Bookmarks.Add(c.UserContext(), uid, c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(fiber.Map{"bookmarked": true})
	}
}

// RemoveBookmarkHandler drops a saved court.
func RemoveBookmarkHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		if err := deps.Bookmarks.Remove(c.UserContext(), uid, c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// --- Blog ---

type blogPostResponse struct {
	domain.BlogPost
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	SummaryText        string `json:"summary,omitempty"`
}

const summaryWords = 40

func blogResponse(p domain.BlogPost, withSummary bool) blogPostResponse {
	resp := blogPostResponse{
		BlogPost:           p,
		ReadingTimeMinutes: p.ReadingTimeMinutes(),
	}
	if withSummary {
		resp.SummaryText = p.Summary(summaryWords)
		resp.Content = ""
	}
	return resp
}

// ListPostsHandler returns blog posts, newest first, with offset pagination.
func ListPostsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := deps.Blog.List(c.UserContext())
		if err != nil {
			return mapDomainError(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 20)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		total := len(posts)
		if offset >= total {
			posts = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			posts = posts[offset:end]
		}

		data := make([]blogPostResponse, 0, len(posts))
		for _, p := range posts {
			data = append(data, blogResponse(p, true))
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: data, Pagination: pg})
	}
}

// GetPostHandler returns a full blog post.
func GetPostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		post, err := deps.Blog.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(blogResponse(*post, false))
	}
}

// CreatePostHandler publishes a post. Admin-only.
func CreatePostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var post domain.BlogPost
		if err := c.BodyParser(&post); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Blog.Create(c.UserContext(), &post); err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(blogResponse(post, false))
	}
}

// UpdatePostHandler edits a post. Admin-only.
func UpdatePostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var post domain.BlogPost
		if err := c.BodyParser(&post); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		updated, err := deps.Blog.Update(c.UserContext(), c.Params("id"), &post)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(blogResponse(*updated, false))
	}
}

// DeletePostHandler removes a post. Admin-only.
func DeletePostHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Blog.Delete(c.UserContext(), c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// --- Complaints ---

// FileComplaintHandler submits a complaint for the caller.
func FileComplaintHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}

		var complaint domain.Complaint
		if err := c.BodyParser(&complaint); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Complaints.File(c.UserContext(), uid, &complaint); err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(complaint)
	}
}

// ListOwnComplaintsHandler returns the caller's complaints.
func ListOwnComplaintsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		complaints, err := deps.Complaints.ListOwn(c.UserContext(), uid)
		if err != nil {
			return mapDomainError(c, err)
		}
		if complaints == nil {
			complaints = []domain.Complaint{}
		}
		return c.JSON(complaints)
	}
}

// DeleteComplaintHandler removes the caller's own complaint while it is
// still in review.
func DeleteComplaintHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		if err := deps.Complaints.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// ListAllComplaintsHandler returns every complaint. Admin-only.
func ListAllComplaintsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		complaints, err := deps.Complaints.ListAll(c.UserContext())
		if err != nil {
			return mapDomainError(c, err)
		}
		if complaints == nil {
			complaints = []domain.Complaint{}
		}
		return c.JSON(complaints)
	}
}

type complaintStatusRequest struct {
	Status string `json:"status"`
}

// UpdateComplaintStatusHandler advances a complaint's workflow. Admin-only.
func UpdateComplaintStatusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req complaintStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		complaint, err := deps.Complaints.UpdateStatus(c.UserContext(), c.Params("id"), domain.ComplaintStatus(req.Status))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(complaint)
	}
}

// AdminDeleteComplaintHandler removes any complaint. Admin-only.
func AdminDeleteComplaintHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Complaints.AdminDelete(c.UserContext(), c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// --- Games ---

const otherGamesLimit = 3

// ListGamesHandler lists games with event_type, mine, and q filters.
func ListGamesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := usecases.GameFilter{
			Query:    c.Query("q"),
			MineOnly: c.QueryBool("mine", false),
			UserID:   userID(c),
		}
		if et := c.Query("event_type"); et != "" {
			filter.EventType = domain.EventType(et)
		}

		games, err := deps.Games.List(c.UserContext(), filter)
		if err != nil {
			return mapDomainError(c, err)
		}
		if games == nil {
			games = []domain.Game{}
		}
		return c.JSON(games)
	}
}

// GetGameHandler returns one game plus a few other upcoming public games.
func GetGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := deps.Games.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}

		others, err := deps.Games.Others(c.UserContext(), game.ID, otherGamesLimit)
		if err != nil {
			return mapDomainError(c, err)
		}
		if others == nil {
			others = []domain.Game{}
		}

		return c.JSON(fiber.Map{
			"game":        game,
			"other_games": others,
		})
	}
}

// CreateGameHandler schedules a game. The creator joins automatically.
func CreateGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}

		var game domain.Game
		if err := c.BodyParser(&game); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		if err := deps.Games.Create(c.UserContext(), uid, &game); err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(game)
	}
}

// UpdateGameHandler edits a game, creator-only.
func UpdateGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}

		var game domain.Game
		if err := c.BodyParser(&game); err != nil {
			return errBadRequest(c, "invalid JSON body")
		}
		updated, err := deps.Games.Update(c.UserContext(), uid, c.Params("id"), &game)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(updated)
	}
}

// DeleteGameHandler cancels a game, creator-only.
func DeleteGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		if err := deps.Games.Delete(c.UserContext(), uid, c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// JoinGameHandler adds the caller to a game.
func JoinGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		game, err := deps.Games.Join(c.UserContext(), uid, c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(game)
	}
}

// LeaveGameHandler removes the caller from a game.
func LeaveGameHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := requireUser(c)
		if err != nil {
			return mapDomainError(c, err)
		}
		game, err := deps.Games.Leave(c.UserContext(), uid, c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(game)
	}
}
