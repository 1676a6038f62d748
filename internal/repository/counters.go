package repository

import (
	"context"
	"fmt"
)

// Each Recompute* function rewrites one derived column from its source rows
// and returns the new value. They are idempotent and run inside the caller's
// transaction so the mutation and its aggregate commit together.

func RecomputeWatched(ctx context.Context, q querier, contentID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		UPDATE content
		SET watched_count = (SELECT COUNT(*) FROM user_watched WHERE content_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING watched_count`, contentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("recompute watched_count: %w", err)
	}
	return n, nil
}

func RecomputeListed(ctx context.Context, q querier, contentID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		UPDATE content
		SET list_count = (SELECT COUNT(*) FROM list_items WHERE content_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING list_count`, contentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("recompute list_count: %w", err)
	}
	return n, nil
}

// RecomputeScores sets avg_score (NULL without ratings) and total_scores.
func RecomputeScores(ctx context.Context, q querier, contentID int64) (*float64, int, error) {
	var (
		avg   *float64
		total int
	)
	err := q.QueryRow(ctx, `
		UPDATE content c
		SET avg_score = s.avg, total_scores = s.total, updated_at = NOW()
		FROM (
			SELECT ROUND(AVG(score)::numeric, 2) AS avg, COUNT(*)::int AS total
			FROM user_ratings WHERE content_id = $1
		) s
		WHERE c.id = $1
		RETURNING c.avg_score::float8, c.total_scores`, contentID).Scan(&avg, &total)
	if err != nil {
		return nil, 0, fmt.Errorf("recompute scores: %w", err)
	}
	return avg, total, nil
}

func RecomputeListLikes(ctx context.Context, q querier, listID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		UPDATE user_lists
		SET likes_count = (SELECT COUNT(*) FROM list_likes WHERE list_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING likes_count`, listID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("recompute list likes_count: %w", err)
	}
	return n, nil
}

func RecomputeListComments(ctx context.Context, q querier, listID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		UPDATE user_lists
		SET comments_count = (SELECT COUNT(*) FROM list_comments WHERE list_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING comments_count`, listID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("recompute comments_count: %w", err)
	}
	return n, nil
}

// RecomputeRatingLikes leaves updated_at alone: a like is not an edit of the review.
func RecomputeRatingLikes(ctx context.Context, q querier, ratingID int64) (int, error) {
	var n int
	err := q.QueryRow(ctx, `
		UPDATE user_ratings
		SET likes_count = (SELECT COUNT(*) FROM user_rating_likes WHERE rating_id = $1)
		WHERE id = $1
		RETURNING likes_count`, ratingID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("recompute rating likes_count: %w", err)
	}
	return n, nil
}

// RecomputeFollows rewrites both denormalized follow counters of one user.
func RecomputeFollows(ctx context.Context, q querier, userID int64) (followers, following int, err error) {
	err = q.QueryRow(ctx, `
		UPDATE users
		SET followers_count = (SELECT COUNT(*) FROM user_follows WHERE followee_id = $1),
		    following_count = (SELECT COUNT(*) FROM user_follows WHERE follower_id = $1)
		WHERE id = $1
		RETURNING followers_count, following_count`, userID).Scan(&followers, &following)
	if err != nil {
		return 0, 0, fmt.Errorf("recompute follow counters: %w", err)
	}
	return followers, following, nil
}
