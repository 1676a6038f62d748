package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type UserHandler struct {
	users   *service.UserService
	lists   *service.ListService
	feed    *service.FeedService
	follows *service.FollowService
}

func NewUserHandler(users *service.UserService, lists *service.ListService, feed *service.FeedService, follows *service.FollowService) *UserHandler {
	return &UserHandler{users: users, lists: lists, feed: feed, follows: follows}
}

// Members handles GET /api/users?q=&order=
func (h *UserHandler) Members(c fiber.Ctx) error {
	members, err := h.users.Members(c.Context(), c.Query("q"), model.MemberOrder(c.Query("order")))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch members")
	}
	return c.JSON(fiber.Map{"members": members})
}

// Profile handles GET /api/users/:username
func (h *UserHandler) Profile(c fiber.Ctx) error {
	p, err := h.users.Profile(c.Context(), c.Params("username"), middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch profile")
	}
	return c.JSON(p)
}

// Lists handles GET /api/users/:username/lists
func (h *UserHandler) Lists(c fiber.Ctx) error {
	lists, err := h.lists.ListsForUser(c.Context(), c.Params("username"), middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch lists")
	}
	return c.JSON(fiber.Map{"lists": lists})
}

// ListBySlug handles GET /api/users/:username/lists/:slug
func (h *UserHandler) ListBySlug(c fiber.Ctx) error {
	d, err := h.lists.GetBySlug(c.Context(), c.Params("username"), c.Params("slug"), middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list")
	}
	return c.JSON(d)
}

// Activity handles GET /api/users/:username/activity?limit=
func (h *UserHandler) Activity(c fiber.Ctx) error {
	limit, err := middleware.QueryInt(c, "limit", 0)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	events, err := h.feed.RecentActivity(c.Context(), c.Params("username"), limit)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch activity")
	}
	return c.JSON(fiber.Map{"activity": events})
}

// TopRated handles GET /api/users/:username/top-rated
func (h *UserHandler) TopRated(c fiber.Ctx) error {
	items, err := h.feed.TopRated(c.Context(), c.Params("username"))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch top rated")
	}
	return c.JSON(fiber.Map{"content": items})
}

// Reviews handles GET /api/users/:username/reviews?limit=
func (h *UserHandler) Reviews(c fiber.Ctx) error {
	limit, err := middleware.QueryInt(c, "limit", 0)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	reviews, err := h.feed.RecentReviews(c.Context(), c.Params("username"), middleware.ViewerID(c), limit)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// ToggleFollow handles POST /api/users/:username/follow
func (h *UserHandler) ToggleFollow(c fiber.Ctx) error {
	res, err := h.follows.Toggle(c.Context(), actor(c), c.Params("username"))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to toggle follow")
	}
	metrics.Engagement("follow", res.Active)
	return c.JSON(fiber.Map{"following": res.Active, "followers": res.Count})
}
