package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type ReviewHandler struct {
	feed       *service.FeedService
	engagement *service.EngagementService
}

func NewReviewHandler(feed *service.FeedService, engagement *service.EngagementService) *ReviewHandler {
	return &ReviewHandler{feed: feed, engagement: engagement}
}

// Popular handles GET /api/reviews/popular
func (h *ReviewHandler) Popular(c fiber.Ctx) error {
	reviews, err := h.feed.PopularReviews(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch popular reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// ToggleLike handles POST /api/reviews/:ratingId/like
func (h *ReviewHandler) ToggleLike(c fiber.Ctx) error {
	ratingID, err := middleware.ParamID(c, "ratingId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.engagement.ToggleReviewLike(c.Context(), actor(c), ratingID)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to toggle review like")
	}
	metrics.Engagement("review_like", res.Active)
	return c.JSON(fiber.Map{"liked": res.Active, "likes": res.Count})
}
