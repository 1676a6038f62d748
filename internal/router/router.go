package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/cineshelf/internal/handler"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health   *handler.HealthHandler
	Catalog  *handler.CatalogHandler
	Content  *handler.ContentHandler
	Review   *handler.ReviewHandler
	List     *handler.ListHandler
	Comment  *handler.CommentHandler
	User     *handler.UserHandler
	Settings *handler.SettingsHandler
	Stats    *handler.StatsHandler
}

// Options configures the cross-cutting middleware.
type Options struct {
	CORSOrigins string
	// RateLimitStore backs every limiter; a MemoryStore is used when nil.
	RateLimitStore middleware.Store
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, opts Options) {
	store := opts.RateLimitStore
	if store == nil {
		store = middleware.NewMemoryStore()
	}
	mutation := middleware.NewMutationRateLimiter(store).Handler()
	comment := middleware.NewCommentRateLimiter(store).Handler()
	catalog := middleware.NewCatalogRateLimiter(store).Handler()
	search := middleware.NewSearchRateLimiter(store).Handler()
	auth := middleware.RequireActor()

	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestID())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(opts.CORSOrigins))

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api", middleware.OptionalActor())

	api.Get("/stats", h.Stats.GetStats)

	// Catalog routes. Static segments are registered before :kind/:id.
	cat := api.Group("/catalog", catalog)
	cat.Get("/search", search, h.Catalog.Search)
	cat.Get("/trending", h.Catalog.Trending)
	cat.Get("/genres/:kind", h.Catalog.Genres)
	cat.Get("/:kind/popular", h.Catalog.Popular)
	cat.Get("/:kind/discover", h.Catalog.Discover)
	cat.Get("/:kind/:id", h.Catalog.Details)
	cat.Get("/:kind/:id/recommendations", h.Catalog.Recommendations)
	cat.Get("/:kind/:id/similar", h.Catalog.Similar)

	// Content routes
	api.Get("/content/recently-reviewed", h.Content.RecentlyReviewed)
	api.Get("/content/:kind/:id/stats", h.Content.Stats)
	api.Get("/content/:kind/:id/reviews", h.Content.Reviews)
	api.Post("/content", auth, mutation, h.Content.Resolve)
	api.Post("/content/watched", auth, mutation, h.Content.MarkWatched)
	api.Post("/content/ratings", auth, mutation, h.Content.Rate)

	// Review routes
	api.Get("/reviews/popular", h.Review.Popular)
	api.Post("/reviews/:ratingId/like", auth, mutation, h.Review.ToggleLike)

	// List routes
	api.Post("/lists", auth, mutation, h.List.Create)
	api.Get("/lists/popular", h.List.Popular)
	api.Get("/lists/top", h.List.Top)
	api.Get("/lists/search", search, h.List.Search)
	api.Get("/lists/:listId", h.List.Get)
	api.Get("/lists/:listId/items", h.List.Items)
	api.Post("/lists/:listId/items", auth, mutation, h.List.AddItem)
	api.Post("/lists/:listId/like", auth, mutation, h.List.ToggleLike)

	// Comment routes
	api.Get("/lists/:listId/comments", h.Comment.ForList)
	api.Post("/lists/:listId/comments", auth, comment, h.Comment.Add)
	api.Delete("/comments/:commentId", auth, comment, h.Comment.Delete)

	// User routes
	api.Get("/users", h.User.Members)
	api.Get("/users/:username", h.User.Profile)
	api.Get("/users/:username/lists", h.User.Lists)
	api.Get("/users/:username/lists/:slug", h.User.ListBySlug)
	api.Get("/users/:username/activity", h.User.Activity)
	api.Get("/users/:username/top-rated", h.User.TopRated)
	api.Get("/users/:username/reviews", h.User.Reviews)
	api.Post("/users/:username/follow", auth, mutation, h.User.ToggleFollow)

	// Settings routes
	api.Get("/me/settings", auth, h.Settings.Get)
	api.Put("/me/settings", auth, mutation, h.Settings.Update)
}
