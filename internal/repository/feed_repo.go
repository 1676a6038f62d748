package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

// FeedRepo reads the event sources of the activity feed. Each source comes
// back already ordered by timestamp (missing timestamps last) then seq.
type FeedRepo struct {
	pool *pgxpool.Pool
}

func NewFeedRepo(pool *pgxpool.Pool) *FeedRepo {
	return &FeedRepo{pool: pool}
}

// WatchEvents returns userID's most recent watch marks.
func (r *FeedRepo) WatchEvents(ctx context.Context, userID int64, limit int) ([]model.ActivityEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.seq, w.watched_at, 0::bigint, '', `+contentColumns+`
		FROM user_watched w JOIN content c ON c.id = w.content_id
		WHERE w.user_id = $1
		ORDER BY COALESCE(w.watched_at, 'epoch'::timestamptz) DESC, w.seq DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows, model.ActivityWatched)
}

// ListAddEvents returns the most recent additions to lists owned by userID.
func (r *FeedRepo) ListAddEvents(ctx context.Context, userID int64, limit int) ([]model.ActivityEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT li.seq, li.added_at, l.id, l.name, `+contentColumns+`
		FROM list_items li
		JOIN user_lists l ON l.id = li.list_id
		JOIN content c ON c.id = li.content_id
		WHERE l.user_id = $1
		ORDER BY COALESCE(li.added_at, 'epoch'::timestamptz) DESC, li.seq DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows, model.ActivityListed)
}

func collectEvents(rows pgx.Rows, kind model.ActivityKind) ([]model.ActivityEvent, error) {
	defer rows.Close()
	out := []model.ActivityEvent{}
	for rows.Next() {
		ev := model.ActivityEvent{Kind: kind}
		dest := append([]any{&ev.Seq, &ev.Timestamp, &ev.ListID, &ev.ListName}, contentDest(&ev.Content)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
