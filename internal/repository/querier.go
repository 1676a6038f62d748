package repository

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx so the same statements
// run standalone or inside a caller's transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

const foreignKeyViolation = "23503"

// userRefSuffixes match the default names of foreign keys pointing at users.
var userRefSuffixes = []string{"_user_id_fkey", "_follower_id_fkey", "_followee_id_fkey"}

func isUserRefViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return false
	}
	for _, suffix := range userRefSuffixes {
		if strings.HasSuffix(pgErr.ConstraintName, suffix) {
			return true
		}
	}
	return false
}

// writeErr reports a write that referenced an unknown user as NotFound("User")
// and wraps anything else with op.
func writeErr(op string, err error) error {
	if isUserRefViolation(err) {
		return apperr.NotFound("User")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func encodePfp(pfp []byte) string {
	if len(pfp) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(pfp)
}
