package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type ListHandler struct {
	lists      *service.ListService
	engagement *service.EngagementService
}

func NewListHandler(lists *service.ListService, engagement *service.EngagementService) *ListHandler {
	return &ListHandler{lists: lists, engagement: engagement}
}

// Create handles POST /api/lists
func (h *ListHandler) Create(c fiber.Ctx) error {
	var req model.CreateListRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	list, err := h.lists.Create(c.Context(), actor(c), req.Name, req.Description, isPublic)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to create list")
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// Get handles GET /api/lists/:listId
func (h *ListHandler) Get(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	d, err := h.lists.Detail(c.Context(), listID, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list")
	}
	return c.JSON(d)
}

// Items handles GET /api/lists/:listId/items?limit=
// Without limit every item is returned; a non-positive limit means the card default.
func (h *ListHandler) Items(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	limit, err := middleware.QueryInt(c, "limit", 0)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	ctx := c.Context()
	viewer := middleware.ViewerID(c)

	var items []model.ListItem
	if c.Query("limit") == "" {
		items, err = h.lists.Items(ctx, listID, viewer)
	} else {
		items, err = h.lists.RecentItems(ctx, listID, viewer, limit)
	}
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list items")
	}
	counts, err := h.lists.ItemCounts(ctx, listID, viewer)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list items")
	}
	owner, err := h.lists.Owns(ctx, viewer, listID)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list items")
	}
	liked, err := h.lists.HasLiked(ctx, viewer, listID)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch list items")
	}
	return c.JSON(fiber.Map{"items": items, "counts": counts, "isOwner": owner, "likedByMe": liked})
}

// Popular handles GET /api/lists/popular
func (h *ListHandler) Popular(c fiber.Ctx) error {
	lists, err := h.lists.Popular(c.Context())
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch popular lists")
	}
	return c.JSON(fiber.Map{"lists": lists})
}

// Top handles GET /api/lists/top
func (h *ListHandler) Top(c fiber.Ctx) error {
	lists, err := h.lists.TopByEngagement(c.Context())
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch top lists")
	}
	return c.JSON(fiber.Map{"lists": lists})
}

// Search handles GET /api/lists/search?q=&page=
func (h *ListHandler) Search(c fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	lists, err := h.lists.Search(c.Context(), c.Query("q"), middleware.ViewerID(c), page)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to search lists")
	}
	return c.JSON(fiber.Map{"lists": lists, "page": page})
}

// AddItem handles POST /api/lists/:listId/items
func (h *ListHandler) AddItem(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	var req model.AddListItemRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}

	item, err := h.lists.AddItem(c.Context(), actor(c), listID, req.Content)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to add list item")
	}
	metrics.Engagement("list_item", true)
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ToggleLike handles POST /api/lists/:listId/like
func (h *ListHandler) ToggleLike(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.engagement.ToggleListLike(c.Context(), actor(c), listID)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to toggle list like")
	}
	metrics.Engagement("list_like", res.Active)
	return c.JSON(fiber.Map{"liked": res.Active, "likes": res.Count})
}
