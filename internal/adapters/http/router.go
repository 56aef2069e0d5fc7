package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/geloraapp/gelora/internal/pkg/metrics"
)

const handlerTimeout = 15 * time.Second

// SetupRoutes registers all REST and GraphQL routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// The old flat search path still gets traffic from pinned app builds.
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/search",
			SunsetDate:  time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/courts/search",
		},
	}))

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")

	// Geocoding & search
	v1.Post("/geocode", timeout.NewWithContext(GeocodeHandler(deps), handlerTimeout))
	v1.Post("/courts/search", timeout.NewWithContext(SearchCourtsHandler(deps), handlerTimeout))
	v1.Post("/search", timeout.NewWithContext(SearchCourtsHandler(deps), handlerTimeout)) // deprecated alias

	// Provinces
	v1.Get("/provinces", timeout.NewWithContext(ListProvincesHandler(deps), handlerTimeout))

	// Court management
	v1.Post("/courts", timeout.NewWithContext(CreateCourtHandler(deps), handlerTimeout))
	v1.Get("/courts/mine", timeout.NewWithContext(ListOwnCourtsHandler(deps), handlerTimeout))
	v1.Get("/courts/:id", timeout.NewWithContext(GetCourtHandler(deps), handlerTimeout))
	v1.Put("/courts/:id", timeout.NewWithContext(UpdateCourtHandler(deps), handlerTimeout))
	v1.Delete("/courts/:id", timeout.NewWithContext(DeleteCourtHandler(deps), handlerTimeout))

	// Bookmarks
	v1.Post("/courts/:id/bookmark", timeout.NewWithContext(AddBookmarkHandler(deps), handlerTimeout))
	v1.Delete("/courts/:id/bookmark", timeout.NewWithContext(RemoveBookmarkHandler(deps), handlerTimeout))

	// Blog
	v1.Get("/posts", timeout.NewWithContext(ListPostsHandler(deps), handlerTimeout))
	v1.Get("/posts/:id", timeout.NewWithContext(GetPostHandler(deps), handlerTimeout))
	v1.Post("/posts", requireAdmin(timeout.NewWithContext(CreatePostHandler(deps), handlerTimeout)))
	v1.Put("/posts/:id", requireAdmin(timeout.NewWithContext(UpdatePostHandler(deps), handlerTimeout)))
	v1.Delete("/posts/:id", requireAdmin(timeout.NewWithContext(DeletePostHandler(deps), handlerTimeout)))

	// Complaints
	v1.Post("/complaints", timeout.NewWithContext(FileComplaintHandler(deps), handlerTimeout))
	v1.Get("/complaints", timeout.NewWithContext(ListOwnComplaintsHandler(deps), handlerTimeout))
	v1.Delete("/complaints/:id", timeout.NewWithContext(DeleteComplaintHandler(deps), handlerTimeout))
	v1.Get("/admin/complaints", requireAdmin(timeout.NewWithContext(ListAllComplaintsHandler(deps), handlerTimeout)))
	v1.Patch("/admin/complaints/:id/status", requireAdmin(timeout.NewWithContext(UpdateComplaintStatusHandler(deps), handlerTimeout)))
	v1.Delete("/admin/complaints/:id", requireAdmin(timeout.NewWithContext(AdminDeleteComplaintHandler(deps), handlerTimeout)))

	// Games
	v1.Get("/games", timeout.NewWithContext(ListGamesHandler(deps), handlerTimeout))
	v1.Get("/games/:id", timeout.NewWithContext(GetGameHandler(deps), handlerTimeout))
	v1.Post("/games", timeout.NewWithContext(CreateGameHandler(deps), handlerTimeout))
	v1.Put("/games/:id", timeout.NewWithContext(UpdateGameHandler(deps), handlerTimeout))
	v1.Delete("/games/:id", timeout.NewWithContext(DeleteGameHandler(deps), handlerTimeout))
	v1.Post("/games/:id/join", timeout.NewWithContext(JoinGameHandler(deps), handlerTimeout))
	v1.Post("/games/:id/leave", timeout.NewWithContext(LeaveGameHandler(deps), handlerTimeout))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)
}
