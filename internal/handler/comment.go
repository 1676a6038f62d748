package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// ForList handles GET /api/lists/:listId/comments
func (h *CommentHandler) ForList(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	comments, err := h.comments.ForList(c.Context(), listID, middleware.ViewerID(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch comments")
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// Add handles POST /api/lists/:listId/comments
func (h *CommentHandler) Add(c fiber.Ctx) error {
	listID, err := middleware.ParamID(c, "listId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	var req model.CommentRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}

	res, err := h.comments.Add(c.Context(), actor(c), listID, req.Text)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to add comment")
	}
	metrics.Engagement("comment", true)
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Delete handles DELETE /api/comments/:commentId
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	commentID, err := middleware.ParamID(c, "commentId")
	if err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	res, err := h.comments.Delete(c.Context(), actor(c), commentID)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to delete comment")
	}
	metrics.Engagement("comment", false)
	return c.JSON(res)
}
