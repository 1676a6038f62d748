package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Search handles GET /api/catalog/search?q=&type=&page=
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.svc.Search(c.Context(), c.Query("q"), c.Query("type"), page, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to search catalog")
	}
	return c.JSON(res)
}

// Trending handles GET /api/catalog/trending?type=&window=&page=
func (h *CatalogHandler) Trending(c fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.svc.Trending(c.Context(), c.Query("type"), c.Query("window"), page, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch trending")
	}
	return c.JSON(res)
}

// Popular handles GET /api/catalog/:kind/popular
func (h *CatalogHandler) Popular(c fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.svc.Popular(c.Context(), model.MediaType(c.Params("kind")), page, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch popular titles")
	}
	return c.JSON(res)
}

// Discover handles GET /api/catalog/:kind/discover
func (h *CatalogHandler) Discover(c fiber.Ctx) error {
	var f model.DiscoverFilter
	if err := middleware.BindQuery(c, &f); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.svc.Discover(c.Context(), model.MediaType(c.Params("kind")), f, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to discover titles")
	}
	return c.JSON(res)
}

// Genres handles GET /api/catalog/genres/:kind
func (h *CatalogHandler) Genres(c fiber.Ctx) error {
	genres, err := h.svc.Genres(c.Context(), model.MediaType(c.Params("kind")))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch genres")
	}
	return c.JSON(fiber.Map{"genres": genres})
}

// Details handles GET /api/catalog/:kind/:id
func (h *CatalogHandler) Details(c fiber.Ctx) error {
	key, err := contentKeyParam(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	d, err := h.svc.Details(c.Context(), key, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch title")
	}
	return c.JSON(d)
}

// Recommendations handles GET /api/catalog/:kind/:id/recommendations
func (h *CatalogHandler) Recommendations(c fiber.Ctx) error {
	return h.related(c, h.svc.Recommendations, "Failed to fetch recommendations")
}

// Similar handles GET /api/catalog/:kind/:id/similar
func (h *CatalogHandler) Similar(c fiber.Ctx) error {
	return h.related(c, h.svc.Similar, "Failed to fetch similar titles")
}

type relatedFunc func(ctx context.Context, key model.ContentKey, page int, viewerID int64) (*service.EnrichedPage, error)

func (h *CatalogHandler) related(c fiber.Ctx, fetch relatedFunc, failMsg string) error {
	key, err := contentKeyParam(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	page, err := pageQuery(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := fetch(c.Context(), key, page, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, failMsg)
	}
	return c.JSON(res)
}
