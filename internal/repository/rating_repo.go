package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

const ratingColumns = `r.id, r.user_id, r.content_id, r.score, r.review_text, r.likes_count, r.rated_at, r.updated_at`

func ratingDest(rt *model.Rating) []any {
	return []any{&rt.ID, &rt.UserID, &rt.ContentID, &rt.Score, &rt.ReviewText, &rt.LikesCount, &rt.RatedAt, &rt.UpdatedAt}
}

// hasReview matches ratings carrying non-empty review text.
const hasReview = `r.review_text IS NOT NULL AND r.review_text <> ''`

type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// Upsert stores userID's score and review for ref, replacing any earlier one,
// and refreshes the content's score aggregates.
func (r *RatingRepo) Upsert(ctx context.Context, userID int64, ref model.ContentRef, score int, review *string) (*model.RatingResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	contentID, err := resolveContent(ctx, tx, ref)
	if err != nil {
		return nil, err
	}

	var res model.RatingResult
	err = tx.QueryRow(ctx, `
		INSERT INTO user_ratings AS r (user_id, content_id, score, review_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, content_id) DO UPDATE
		SET score = EXCLUDED.score, review_text = EXCLUDED.review_text, updated_at = NOW()
		RETURNING `+ratingColumns, userID, contentID, score, review).Scan(ratingDest(&res.Rating)...)
	if err != nil {
		return nil, writeErr("upsert rating", err)
	}

	if _, _, err := RecomputeScores(ctx, tx, contentID); err != nil {
		return nil, err
	}
	if res.Stats, err = statsByID(ctx, tx, contentID); err != nil {
		return nil, err
	}
	return &res, tx.Commit(ctx)
}

// ForUser returns userID's rating of key, or pgx.ErrNoRows.
func (r *RatingRepo) ForUser(ctx context.Context, userID int64, key model.ContentKey) (*model.Rating, error) {
	var rt model.Rating
	err := r.pool.QueryRow(ctx, `
		SELECT `+ratingColumns+`
		FROM user_ratings r JOIN content c ON c.id = r.content_id
		WHERE r.user_id = $1 AND c.tmdb_id = $2 AND c.media_type = $3`,
		userID, key.TMDBID, key.MediaType).Scan(ratingDest(&rt)...)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

const reviewSelect = `
	SELECT ` + ratingColumns + `, u.username, u.pfp, ` + contentColumns + `,
	       EXISTS (SELECT 1 FROM user_rating_likes l WHERE l.rating_id = r.id AND l.user_id = $1)
	FROM user_ratings r
	JOIN users u ON u.id = r.user_id
	JOIN content c ON c.id = r.content_id`

func collectReviews(rows pgx.Rows) ([]model.Review, error) {
	defer rows.Close()
	out := []model.Review{}
	for rows.Next() {
		var (
			rv  model.Review
			pfp []byte
		)
		dest := append(ratingDest(&rv.Rating), &rv.Username, &pfp)
		dest = append(dest, contentDest(&rv.Content)...)
		dest = append(dest, &rv.LikedByMe)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		rv.PfpBase64 = encodePfp(pfp)
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ReviewsForContent returns the reviews of key, newest edit first.
// viewerID 0 means anonymous; LikedByMe is then always false.
func (r *RatingRepo) ReviewsForContent(ctx context.Context, key model.ContentKey, viewerID int64) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+`
		WHERE c.tmdb_id = $2 AND c.media_type = $3 AND `+hasReview+`
		ORDER BY r.updated_at DESC`, viewerID, key.TMDBID, key.MediaType)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

// Popular returns the most liked reviews, most recent first on ties.
func (r *RatingRepo) Popular(ctx context.Context, viewerID int64, limit int) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+`
		WHERE `+hasReview+`
		ORDER BY r.likes_count DESC, r.updated_at DESC
		LIMIT $2`, viewerID, limit)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

// RecentForUser returns userID's reviews newest first. A nil limit returns all.
func (r *RatingRepo) RecentForUser(ctx context.Context, userID, viewerID int64, limit *int) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+`
		WHERE r.user_id = $2 AND `+hasReview+`
		ORDER BY r.updated_at DESC
		LIMIT $3`, viewerID, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectReviews(rows)
}

// TopRatedForUser returns userID's highest scored content.
func (r *RatingRepo) TopRatedForUser(ctx context.Context, userID int64, limit int) ([]model.RatedContent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contentColumns+`, r.score, r.updated_at
		FROM user_ratings r JOIN content c ON c.id = r.content_id
		WHERE r.user_id = $1
		ORDER BY r.score DESC, r.updated_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.RatedContent{}
	for rows.Next() {
		var rc model.RatedContent
		dest := append(contentDest(&rc.Content), &rc.Score, &rc.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// RecentlyReviewedContent returns content ordered by its latest review.
func (r *RatingRepo) RecentlyReviewedContent(ctx context.Context, limit int) ([]model.ReviewedContent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+contentColumns+`, MAX(r.updated_at) AS last_reviewed
		FROM user_ratings r JOIN content c ON c.id = r.content_id
		WHERE `+hasReview+`
		GROUP BY c.id
		ORDER BY last_reviewed DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ReviewedContent{}
	for rows.Next() {
		var rc model.ReviewedContent
		dest := append(contentDest(&rc.Content), &rc.LastReviewed)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
