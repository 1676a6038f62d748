package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

const userColumns = `u.id, u.username, u.firstname, u.lastname, u.email, u.pfp,
	u.followers_count, u.following_count, u.created_at`

func userDest(u *model.User) []any {
	return []any{&u.ID, &u.Username, &u.Firstname, &u.Lastname, &u.Email, &u.Pfp,
		&u.FollowersCount, &u.FollowingCount, &u.CreatedAt}
}

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// FindByUsername looks a user up case-insensitively, or returns pgx.ErrNoRows.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u
		WHERE LOWER(u.username) = LOWER($1)`, username).Scan(userDest(&u)...)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user or pgx.ErrNoRows.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id).Scan(userDest(&u)...)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var memberOrders = map[model.MemberOrder]string{
	model.MembersPopular:  `followers DESC, reviews DESC, u.username ASC`,
	model.MembersThisWeek: `reviews_week DESC, followers DESC, u.username ASC`,
	model.MembersPositive: `avg_score DESC NULLS LAST, reviews DESC, followers DESC`,
	model.MembersNegative: `avg_score ASC NULLS LAST, reviews DESC, followers DESC`,
}

// Members ranks users for the members directory. query filters usernames by
// case-insensitive substring when non-empty.
func (r *UserRepo) Members(ctx context.Context, query string, order model.MemberOrder, limit int) ([]model.Member, error) {
	orderBy, ok := memberOrders[order]
	if !ok {
		return nil, fmt.Errorf("unknown member order %q", order)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.username, u.firstname, u.lastname, u.pfp,
		       COALESCE(u.followers_count,
		                (SELECT COUNT(*) FROM user_follows f WHERE f.followee_id = u.id))::int AS followers,
		       (SELECT COUNT(*) FROM user_ratings r
		         WHERE r.user_id = u.id AND r.review_text IS NOT NULL AND r.review_text <> '')::int AS reviews,
		       (SELECT AVG(r.score)::float8 FROM user_ratings r WHERE r.user_id = u.id) AS avg_score,
		       (SELECT COUNT(*) FROM user_ratings r
		         WHERE r.user_id = u.id AND r.updated_at >= NOW() - INTERVAL '7 days')::int AS reviews_week
		FROM users u
		WHERE $1 = '' OR u.username ILIKE '%' || $1 || '%'
		ORDER BY `+orderBy+`
		LIMIT $2`, escapeLike(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Member{}
	for rows.Next() {
		var (
			m   model.Member
			pfp []byte
		)
		if err := rows.Scan(&m.ID, &m.Username, &m.Firstname, &m.Lastname, &pfp,
			&m.Followers, &m.Reviews, &m.AvgScore, &m.ReviewsWeek); err != nil {
			return nil, err
		}
		m.PfpBase64 = encodePfp(pfp)
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetStats returns site-wide totals.
func (r *UserRepo) GetStats(ctx context.Context) (*model.SiteStats, error) {
	var s model.SiteStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM content),
			(SELECT COUNT(*) FROM user_watched),
			(SELECT COUNT(*) FROM user_ratings),
			(SELECT COUNT(*) FROM user_ratings WHERE review_text IS NOT NULL AND review_text <> ''),
			(SELECT COUNT(*) FROM user_lists WHERE is_public),
			(SELECT COUNT(*) FROM user_ratings WHERE updated_at > NOW() - INTERVAL '24 hours')`,
	).Scan(&s.TotalUsers, &s.TotalContent, &s.TotalWatches, &s.TotalRatings,
		&s.TotalReviews, &s.PublicLists, &s.Ratings24h)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
