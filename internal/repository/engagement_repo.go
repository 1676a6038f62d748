package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

// EngagementRepo flips per-user relations (likes, follows) and keeps their
// aggregate counters in step, each toggle in its own transaction.
type EngagementRepo struct {
	pool *pgxpool.Pool
}

func NewEngagementRepo(pool *pgxpool.Pool) *EngagementRepo {
	return &EngagementRepo{pool: pool}
}

// toggle deletes the relation if present, otherwise inserts it. It reports
// whether the relation exists afterwards.
func toggle(ctx context.Context, q querier, deleteSQL, insertSQL string, args ...any) (bool, error) {
	tag, err := q.Exec(ctx, deleteSQL, args...)
	if err != nil {
		return false, fmt.Errorf("toggle delete: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}
	if _, err := q.Exec(ctx, insertSQL, args...); err != nil {
		return false, writeErr("toggle insert", err)
	}
	return true, nil
}

// lockUserSQL locks a user row without blocking the KEY SHARE locks taken by
// foreign keys, so the user's other writes proceed during a follow toggle.
const lockUserSQL = `SELECT 1 FROM users WHERE id = $1 FOR NO KEY UPDATE`

// lockRow takes a row lock on the subject so concurrent toggles on it
// recompute in sequence. A missing row yields NotFound(entity).
func lockRow(ctx context.Context, q querier, query, entity string, id int64) error {
	var one int
	err := q.QueryRow(ctx, query, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", entity, err)
	}
	return nil
}

// ToggleListLike likes or unlikes a list for userID. authorize receives the
// list's owner and visibility once the list is locked and may veto the toggle.
func (r *EngagementRepo) ToggleListLike(ctx context.Context, userID, listID int64, authorize func(ownerID int64, isPublic bool) error) (model.ToggleResult, error) {
	var res model.ToggleResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	var isPublic bool
	err = tx.QueryRow(ctx, `SELECT user_id, is_public FROM user_lists WHERE id = $1 FOR NO KEY UPDATE`, listID).Scan(&ownerID, &isPublic)
	if errors.Is(err, pgx.ErrNoRows) {
		return res, apperr.NotFound("List")
	}
	if err != nil {
		return res, fmt.Errorf("lock list: %w", err)
	}
	if err := authorize(ownerID, isPublic); err != nil {
		return res, err
	}

	res.Active, err = toggle(ctx, tx,
		`DELETE FROM list_likes WHERE user_id = $1 AND list_id = $2`,
		`INSERT INTO list_likes (user_id, list_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, listID)
	if err != nil {
		return res, err
	}

	if res.Count, err = RecomputeListLikes(ctx, tx, listID); err != nil {
		return res, err
	}
	return res, tx.Commit(ctx)
}

// ToggleRatingLike likes or unlikes a review for userID. The review's
// updated_at is left untouched.
func (r *EngagementRepo) ToggleRatingLike(ctx context.Context, userID, ratingID int64) (model.ToggleResult, error) {
	var res model.ToggleResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, `SELECT 1 FROM user_ratings WHERE id = $1 FOR NO KEY UPDATE`, "Review", ratingID); err != nil {
		return res, err
	}

	res.Active, err = toggle(ctx, tx,
		`DELETE FROM user_rating_likes WHERE user_id = $1 AND rating_id = $2`,
		`INSERT INTO user_rating_likes (user_id, rating_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, ratingID)
	if err != nil {
		return res, err
	}

	if res.Count, err = RecomputeRatingLikes(ctx, tx, ratingID); err != nil {
		return res, err
	}
	return res, tx.Commit(ctx)
}

// ToggleFollow follows or unfollows followeeID. Count is the followee's
// follower count afterwards. Both users' counters are recomputed, lower id
// first, so opposite follows cannot deadlock.
func (r *EngagementRepo) ToggleFollow(ctx context.Context, followerID, followeeID int64) (model.ToggleResult, error) {
	var res model.ToggleResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return res, err
	}
	defer tx.Rollback(ctx)

	// Both users are locked before the membership changes so each recompute
	// counts every committed follow.
	first, second := followerID, followeeID
	if second < first {
		first, second = second, first
	}
	for _, id := range []int64{first, second} {
		if err := lockRow(ctx, tx, lockUserSQL, "User", id); err != nil {
			return res, err
		}
	}

	res.Active, err = toggle(ctx, tx,
		`DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`,
		`INSERT INTO user_follows (follower_id, followee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		followerID, followeeID)
	if err != nil {
		return res, err
	}

	for _, id := range []int64{first, second} {
		followers, _, err := RecomputeFollows(ctx, tx, id)
		if err != nil {
			return res, err
		}
		if id == followeeID {
			res.Count = followers
		}
	}
	return res, tx.Commit(ctx)
}
