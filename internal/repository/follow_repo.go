package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Counters returns the stored and live follow counts of userID, or pgx.ErrNoRows.
func (r *FollowRepo) Counters(ctx context.Context, userID int64) (model.FollowCounters, error) {
	var c model.FollowCounters
	err := r.pool.QueryRow(ctx, `
		SELECT u.followers_count, u.following_count,
		       (SELECT COUNT(*) FROM user_follows WHERE followee_id = u.id)::int,
		       (SELECT COUNT(*) FROM user_follows WHERE follower_id = u.id)::int
		FROM users u WHERE u.id = $1`, userID).Scan(
		&c.StoredFollowers, &c.StoredFollowing, &c.LiveFollowers, &c.LiveFollowing)
	return c, err
}

// IsFollowing reports whether followerID follows followeeID.
func (r *FollowRepo) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID).Scan(&ok)
	return ok, err
}
