package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/me/settings
func (h *SettingsHandler) Get(c fiber.Ctx) error {
	s, err := h.settings.Get(c.Context(), actor(c))
	if err != nil {
		return middleware.RespondError(c, err, "Failed to fetch settings")
	}
	return c.JSON(s)
}

// Update handles PUT /api/me/settings
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var req model.SettingsRequest
	if err := middleware.BindBody(c, &req); err != nil {
		return middleware.RespondError(c, err, "Invalid request")
	}
	s, err := h.settings.Update(c.Context(), actor(c), req)
	if err != nil {
		return middleware.RespondError(c, err, "Failed to update settings")
	}
	return c.JSON(s)
}
