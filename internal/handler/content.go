package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type ContentHandler struct {
	content *service.ContentService
	feed    *service.FeedService
}

func NewContentHandler(content *service.ContentService, feed *service.FeedService) *ContentHandler {
	return &ContentHandler{content: content, feed: feed}
}

// Stats handles GET /api/content/:kind/:id/stats
func (h *ContentHandler) Stats(c fiber.Ctx) error {
	key, err := contentKeyParam(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	ctx := c.Context()
	viewer := middleware.ViewerID(c)

	stats, err := h.content.Stats(ctx, key)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch content stats")
	}
	resp := fiber.Map{"stats": stats, "watchedByMe": false, "myRating": nil}
	if viewer != 0 {
		watched, err := h.content.HasWatched(ctx, viewer, key)
		if err != nil {
			return middleware.RespondError(c, err, "Failed to fetch content stats")
		}
		rating, err := h.content.UserRating(ctx, viewer, key)
		if err != nil {
			return middleware.RespondError(c, err, "Failed to fetch content stats")
		}
		resp["watchedByMe"] = watched
		resp["myRating"] = rating
	}
	return c.JSON(resp)
}

// Resolve handles POST /api/content
func (h *ContentHandler) Resolve(c fiber.Ctx) error {
	var req model.ResolveContentRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}

	id, err := h.content.Resolve(c.Context(), req.Content)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to resolve content")
	}
	return c.JSON(fiber.Map{"id": id})
}

// MarkWatched handles POST /api/content/watched
func (h *ContentHandler) MarkWatched(c fiber.Ctx) error {
	var req model.WatchRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}

	stats, err := h.content.MarkWatched(c.Context(), actor(c), req.Content)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to mark as watched")
	}
	metrics.Engagement("watch", true)
	return c.JSON(fiber.Map{"stats": stats})
}

// Rate handles POST /api/content/ratings
func (h *ContentHandler) Rate(c fiber.Ctx) error {
	var req model.RatingRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}

	res, err := h.content.Rate(c.Context(), actor(c), req.Content, *req.Score, req.Review)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to save rating")
	}
	metrics.Engagement("rating", true)
	return c.JSON(res)
}

// Reviews handles GET /api/content/:kind/:id/reviews
func (h *ContentHandler) Reviews(c fiber.Ctx) error {
	key, err := contentKeyParam(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	reviews, err := h.content.Reviews(c.Context(), key, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// RecentlyReviewed handles GET /api/content/recently-reviewed
func (h *ContentHandler) RecentlyReviewed(c fiber.Ctx) error {
	items, err := h.feed.RecentlyReviewed(c.Context())
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch recently reviewed content")
	}
	return c.JSON(fiber.Map{"content": items})
}
