package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
)

// notFoundIf maps pgx.ErrNoRows to NotFound(entity) and passes other errors through.
func notFoundIf(err error, entity string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return err
}

func validID(field string, id int64) error {
	if id <= 0 {
		return apperr.Validation(field, field+" must be a positive integer")
	}
	return nil
}

func requireActor(actorID int64) error {
	if actorID <= 0 {
		return apperr.Validation("actor", "An authenticated user is required")
	}
	return nil
}
