package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

// downCatalog fails every call as an unreachable upstream would.
type downCatalog struct{}

func (downCatalog) Search(context.Context, string, string, int) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Trending(context.Context, string, string, int) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Popular(context.Context, model.MediaType, int) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Details(context.Context, model.MediaType, int) (*model.CatalogDetails, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Recommendations(context.Context, model.MediaType, int, int) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Similar(context.Context, model.MediaType, int, int) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Discover(context.Context, model.MediaType, model.DiscoverFilter) (*model.CatalogPage, error) {
	return nil, apperr.ErrUpstreamUnavailable
}
func (downCatalog) Genres(context.Context, model.MediaType) ([]model.Genre, error) {
	return nil, apperr.ErrUpstreamUnavailable
}

func newCatalogApp() *fiber.App {
	content := service.NewContentService(nil, nil, zerolog.Nop())
	h := NewCatalogHandler(service.NewCatalogService(downCatalog{}, content, zerolog.Nop()))

	app := fiber.New()
	app.Use(middleware.OptionalActor())
	app.Get("/catalog/search", h.Search)
	app.Get("/catalog/trending", h.Trending)
	app.Get("/catalog/genres/:kind", h.Genres)
	app.Get("/catalog/:kind/discover", h.Discover)
	app.Get("/catalog/:kind/popular", h.Popular)
	app.Get("/catalog/:kind/:id", h.Details)
	app.Get("/catalog/:kind/:id/similar", h.Similar)
	return app
}

func TestCatalogHandler_UpstreamDown(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"search degrades", "/catalog/search?q=matrix", 200, `"degraded":true`},
		{"trending degrades", "/catalog/trending", 200, `"degraded":true`},
		{"popular degrades", "/catalog/tv/popular", 200, `"degraded":true`},
		{"similar degrades", "/catalog/movie/603/similar", 200, `"degraded":true`},
		{"discover degrades", "/catalog/movie/discover?year=1999", 200, `"degraded":true`},
		{"genres empty", "/catalog/genres/movie", 200, `"genres":[]`},
		{"details unavailable", "/catalog/movie/603", 503, `"UPSTREAM_UNAVAILABLE"`},
		{"bad media type", "/catalog/book/popular", 400, `"VALIDATION_ERROR"`},
		{"bad search type", "/catalog/search?q=x&type=book", 400, `"VALIDATION_ERROR"`},
		{"bad id", "/catalog/movie/abc", 400, `"VALIDATION_ERROR"`},
		{"discover page out of range", "/catalog/movie/discover?page=900", 400, `"VALIDATION_ERROR"`},
		{"empty search", "/catalog/search", 200, `"results":[]`},
	}

	app := newCatalogApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body %s missing %s", body, tt.wantBody)
			}
		})
	}
}

// Validation happens before any store is touched, so nil stores are safe here.
func TestMutationHandlers_RejectBadInput(t *testing.T) {
	lists := service.NewListService(nil, nil)
	engagement := service.NewEngagementService(nil)
	content := service.NewContentService(nil, nil, zerolog.Nop())
	lh := NewListHandler(lists, engagement)
	ch := NewContentHandler(content, nil)
	cm := NewCommentHandler(service.NewCommentService(nil, lists))
	rh := NewReviewHandler(nil, engagement)

	app := fiber.New()
	app.Use(middleware.OptionalActor())
	app.Post("/lists", lh.Create)
	app.Post("/lists/:listId/items", lh.AddItem)
	app.Get("/lists/:listId/items", lh.Items)
	app.Post("/lists/:listId/like", lh.ToggleLike)
	app.Post("/lists/:listId/comments", cm.Add)
	app.Delete("/comments/:commentId", cm.Delete)
	app.Post("/content/ratings", ch.Rate)
	app.Post("/content", ch.Resolve)
	app.Post("/content/watched", ch.MarkWatched)
	app.Post("/reviews/:ratingId/like", rh.ToggleLike)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"blank list name", "POST", "/lists", `{"name":"   "}`, 400, "List name is required"},
		{"long list name", "POST", "/lists", `{"name":"` + strings.Repeat("x", 201) + `"}`, 400, "List name must be 200 characters or fewer"},
		{"malformed json", "POST", "/lists", `{"name":`, 400, "Invalid request body"},
		{"bad list id", "POST", "/lists/abc/items", `{}`, 400, "Invalid listId"},
		{"missing content", "POST", "/lists/1/items", `{}`, 400, "content is required"},
		{"zero list id like", "POST", "/lists/0/like", ``, 400, "Invalid listId"},
		{"empty comment", "POST", "/lists/1/comments", `{"text":"  "}`, 400, "Comment cannot be empty"},
		{"bad comment id", "DELETE", "/comments/x", ``, 400, "Invalid commentId"},
		{"score too high", "POST", "/content/ratings", `{"content":{"tmdbId":603,"mediaType":"movie","title":"The Matrix"},"score":101}`, 400, "score must be at most 100"},
		{"score missing", "POST", "/content/ratings", `{"content":{"tmdbId":603,"mediaType":"movie","title":"The Matrix"}}`, 400, "score is required"},
		{"watch bad media", "POST", "/content/watched", `{"content":{"tmdbId":1,"mediaType":"book","title":"x"}}`, 400, "mediaType must be one of: movie tv"},
		{"bad rating id", "POST", "/reviews/-3/like", ``, 400, "Invalid ratingId"},
		{"resolve missing title", "POST", "/content", `{"content":{"tmdbId":603,"mediaType":"movie"}}`, 400, "title is required"},
		{"resolve id beyond range", "POST", "/content", `{"content":{"tmdbId":3000000000,"mediaType":"movie","title":"x"}}`, 400, "tmdbId must be at most 2147483647"},
		{"items bad list id", "GET", "/lists/x/items", ``, 400, "Invalid listId"},
		{"items bad limit", "GET", "/lists/1/items?limit=abc", ``, 400, "limit must be an integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(middleware.ActorHeader, "1")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
			if !strings.Contains(string(body), tt.wantMsg) {
				t.Errorf("body %s missing %q", body, tt.wantMsg)
			}
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("refused") }

	tests := []struct {
		name       string
		database   Probe
		redis      Probe
		wantStatus int
		wantState  string
	}{
		{"all up", ok, ok, 200, `"status":"healthy"`},
		{"redis disabled", ok, nil, 200, `"status":"disabled"`},
		{"redis down", ok, fail, 503, `"status":"degraded"`},
		{"database down", fail, ok, 503, `"status":"unhealthy"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{database: tt.database, redis: tt.redis}
			app := fiber.New()
			app.Get("/ready", h.Ready)

			resp, err := app.Test(httptest.NewRequest("GET", "/ready", nil))
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(string(body), tt.wantState) {
				t.Errorf("body %s missing %s", body, tt.wantState)
			}
		})
	}
}
