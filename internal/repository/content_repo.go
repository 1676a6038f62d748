package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

const contentColumns = `c.id, c.tmdb_id, c.media_type, c.title, c.poster_path, c.backdrop_path,
	c.release_date, c.watched_count, c.list_count, c.avg_score::float8, c.total_scores,
	c.created_at, c.updated_at`

func contentDest(c *model.Content) []any {
	return []any{
		&c.ID, &c.TMDBID, &c.MediaType, &c.Title, &c.PosterPath, &c.BackdropPath,
		&c.ReleaseDate, &c.WatchedCount, &c.ListCount, &c.AvgScore, &c.TotalScores,
		&c.CreatedAt, &c.UpdatedAt,
	}
}

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

// resolveContent returns the id for ref's natural key, inserting the row on
// first reference. Display metadata from later references is ignored. The row
// stays locked until q's transaction ends, so recomputes on it run one at a time.
func resolveContent(ctx context.Context, q querier, ref model.ContentRef) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO content (tmdb_id, media_type, title, poster_path, backdrop_path, release_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tmdb_id, media_type) DO NOTHING
		RETURNING id`,
		ref.TMDBID, ref.MediaType, ref.Title, ref.PosterPath, ref.BackdropPath, ref.ReleaseDate,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("insert content: %w", err)
	}

	err = q.QueryRow(ctx, `SELECT id FROM content WHERE tmdb_id = $1 AND media_type = $2 FOR NO KEY UPDATE`,
		ref.TMDBID, ref.MediaType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("select content: %w", err)
	}
	return id, nil
}

// ResolveOrCreate maps a catalog reference to its local content id.
func (r *ContentRepo) ResolveOrCreate(ctx context.Context, ref model.ContentRef) (int64, error) {
	return resolveContent(ctx, r.pool, ref)
}

// FindByKey returns the content row for a natural key, or pgx.ErrNoRows.
func (r *ContentRepo) FindByKey(ctx context.Context, key model.ContentKey) (*model.Content, error) {
	var c model.Content
	err := r.pool.QueryRow(ctx, `SELECT `+contentColumns+` FROM content c
		WHERE c.tmdb_id = $1 AND c.media_type = $2`, key.TMDBID, key.MediaType).Scan(contentDest(&c)...)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkWatched records that userID watched ref. Repeat calls are no-ops apart
// from the counter refresh.
func (r *ContentRepo) MarkWatched(ctx context.Context, userID int64, ref model.ContentRef) (model.ContentStats, error) {
	var stats model.ContentStats

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback(ctx)

	contentID, err := resolveContent(ctx, tx, ref)
	if err != nil {
		return stats, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_watched (user_id, content_id) VALUES ($1, $2)
		ON CONFLICT (user_id, content_id) DO NOTHING`, userID, contentID)
	if err != nil {
		return stats, writeErr("insert user_watched", err)
	}

	if _, err := RecomputeWatched(ctx, tx, contentID); err != nil {
		return stats, err
	}

	stats, err = statsByID(ctx, tx, contentID)
	if err != nil {
		return stats, err
	}
	return stats, tx.Commit(ctx)
}

func statsByID(ctx context.Context, q querier, contentID int64) (model.ContentStats, error) {
	var s model.ContentStats
	err := q.QueryRow(ctx, `
		SELECT watched_count, list_count, avg_score::float8, total_scores
		FROM content WHERE id = $1`, contentID).Scan(&s.WatchedCount, &s.ListCount, &s.AvgScore, &s.TotalScores)
	if err != nil {
		return s, fmt.Errorf("read content stats: %w", err)
	}
	return s, nil
}

// Stats returns the aggregates for key. Unknown content has zero stats.
func (r *ContentRepo) Stats(ctx context.Context, key model.ContentKey) (model.ContentStats, error) {
	var s model.ContentStats
	err := r.pool.QueryRow(ctx, `
		SELECT watched_count, list_count, avg_score::float8, total_scores
		FROM content WHERE tmdb_id = $1 AND media_type = $2`,
		key.TMDBID, key.MediaType).Scan(&s.WatchedCount, &s.ListCount, &s.AvgScore, &s.TotalScores)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ContentStats{}, nil
	}
	return s, err
}

// StatsFor returns the aggregates of every known key in one round trip.
// Keys without a content row are absent from the map.
func (r *ContentRepo) StatsFor(ctx context.Context, keys []model.ContentKey) (map[model.ContentKey]model.ContentStats, error) {
	out := make(map[model.ContentKey]model.ContentStats, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	ids, kinds := splitKeys(keys)

	rows, err := r.pool.Query(ctx, `
		SELECT c.tmdb_id, c.media_type, c.watched_count, c.list_count, c.avg_score::float8, c.total_scores
		FROM content c
		JOIN unnest($1::int[], $2::text[]) AS k(tmdb_id, media_type)
		  ON c.tmdb_id = k.tmdb_id AND c.media_type = k.media_type`, ids, kinds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key model.ContentKey
			s   model.ContentStats
		)
		if err := rows.Scan(&key.TMDBID, &key.MediaType, &s.WatchedCount, &s.ListCount, &s.AvgScore, &s.TotalScores); err != nil {
			return nil, err
		}
		out[key] = s
	}
	return out, rows.Err()
}

// ViewerState returns which of keys userID has watched and the scores they gave.
func (r *ContentRepo) ViewerState(ctx context.Context, userID int64, keys []model.ContentKey) (map[model.ContentKey]bool, map[model.ContentKey]int, error) {
	watched := make(map[model.ContentKey]bool)
	scores := make(map[model.ContentKey]int)
	if len(keys) == 0 {
		return watched, scores, nil
	}
	ids, kinds := splitKeys(keys)

	rows, err := r.pool.Query(ctx, `
		SELECT c.tmdb_id, c.media_type,
		       EXISTS (SELECT 1 FROM user_watched w WHERE w.content_id = c.id AND w.user_id = $3),
		       (SELECT ur.score FROM user_ratings ur WHERE ur.content_id = c.id AND ur.user_id = $3)
		FROM content c
		JOIN unnest($1::int[], $2::text[]) AS k(tmdb_id, media_type)
		  ON c.tmdb_id = k.tmdb_id AND c.media_type = k.media_type`, ids, kinds, userID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   model.ContentKey
			seen  bool
			score *int
		)
		if err := rows.Scan(&key.TMDBID, &key.MediaType, &seen, &score); err != nil {
			return nil, nil, err
		}
		if seen {
			watched[key] = true
		}
		if score != nil {
			scores[key] = *score
		}
	}
	return watched, scores, rows.Err()
}

// HasWatched reports whether userID marked key as watched.
func (r *ContentRepo) HasWatched(ctx context.Context, userID int64, key model.ContentKey) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_watched w JOIN content c ON c.id = w.content_id
			WHERE w.user_id = $1 AND c.tmdb_id = $2 AND c.media_type = $3
		)`, userID, key.TMDBID, key.MediaType).Scan(&ok)
	return ok, err
}

// splitKeys drops keys outside the tmdb_id column range; no row can match them.
func splitKeys(keys []model.ContentKey) ([]int32, []string) {
	ids := make([]int32, 0, len(keys))
	kinds := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.TMDBID <= 0 || k.TMDBID > model.MaxTMDBID {
			continue
		}
		ids = append(ids, int32(k.TMDBID))
		kinds = append(kinds, string(k.MediaType))
	}
	return ids, kinds
}
