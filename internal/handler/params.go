package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/middleware"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

// contentKeyParam reads :kind and :id. Range checks happen in the services.
func contentKeyParam(c fiber.Ctx) (model.ContentKey, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return model.ContentKey{}, apperr.Validation("tmdbId", "tmdbId must be a positive integer")
	}
	return model.ContentKey{TMDBID: id, MediaType: model.MediaType(c.Params("kind"))}, nil
}

func pageQuery(c fiber.Ctx) (int, error) {
	return middleware.QueryInt(c, "page", 1)
}

// actor returns the authenticated user id. Routes that call it sit behind
// RequireActor, so a zero id only reaches the services' own checks.
func actor(c fiber.Ctx) int64 {
	return middleware.ViewerID(c)
}
