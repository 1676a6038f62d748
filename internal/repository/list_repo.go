package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

// ErrDuplicateListName is the message for a case-insensitive name clash within one owner.
const ErrDuplicateListName = "You already have a list with that name"

const listColumns = `l.id, l.user_id, l.name, l.description, l.is_public, l.likes_count,
	l.comments_count, l.created_at, l.updated_at`

func listDest(l *model.List) []any {
	return []any{&l.ID, &l.UserID, &l.Name, &l.Description, &l.IsPublic, &l.LikesCount,
		&l.CommentsCount, &l.CreatedAt, &l.UpdatedAt}
}

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

// Create inserts a list for userID. name must already be trimmed and validated.
// A case-insensitive duplicate for the same owner is a ValidationError; the
// unique index on (user_id, LOWER(name)) settles concurrent creates.
func (r *ListRepo) Create(ctx context.Context, userID int64, name, description string, isPublic bool) (*model.List, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_lists WHERE user_id = $1 AND LOWER(name) = LOWER($2))`,
		userID, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check list name: %w", err)
	}
	if exists {
		return nil, apperr.Validation("name", ErrDuplicateListName)
	}

	var l model.List
	err = r.pool.QueryRow(ctx, `
		INSERT INTO user_lists AS l (user_id, name, description, is_public)
		VALUES ($1, $2, $3, $4)
		RETURNING `+listColumns, userID, name, description, isPublic).Scan(listDest(&l)...)
	if isUniqueViolation(err) {
		return nil, apperr.Validation("name", ErrDuplicateListName)
	}
	if err != nil {
		return nil, writeErr("insert list", err)
	}
	return &l, nil
}

// AddItem adds ref to listID. authorize receives the list owner and may veto
// the write; it runs after the list is found and locked. Adding content that
// is already present is a no-op apart from counter and timestamp refresh.
func (r *ListRepo) AddItem(ctx context.Context, listID int64, ref model.ContentRef, authorize func(ownerID int64) error) (*model.ListItem, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	err = tx.QueryRow(ctx, `SELECT user_id FROM user_lists WHERE id = $1 FOR NO KEY UPDATE`, listID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("List")
	}
	if err != nil {
		return nil, fmt.Errorf("lock list: %w", err)
	}
	if err := authorize(ownerID); err != nil {
		return nil, err
	}

	contentID, err := resolveContent(ctx, tx, ref)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO list_items (list_id, content_id) VALUES ($1, $2)
		ON CONFLICT (list_id, content_id) DO NOTHING`, listID, contentID)
	if err != nil {
		return nil, fmt.Errorf("insert list item: %w", err)
	}

	if _, err := RecomputeListed(ctx, tx, contentID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE user_lists SET updated_at = NOW() WHERE id = $1`, listID); err != nil {
		return nil, fmt.Errorf("touch list: %w", err)
	}

	item := model.ListItem{ListID: listID}
	dest := append([]any{&item.ID, &item.AddedAt}, contentDest(&item.Content)...)
	err = tx.QueryRow(ctx, `
		SELECT li.id, li.added_at, `+contentColumns+`
		FROM list_items li JOIN content c ON c.id = li.content_id
		WHERE li.list_id = $1 AND li.content_id = $2`, listID, contentID).Scan(dest...)
	if err != nil {
		return nil, fmt.Errorf("read list item: %w", err)
	}
	return &item, tx.Commit(ctx)
}

// Owns reports whether userID owns listID. A missing list is not owned.
func (r *ListRepo) Owns(ctx context.Context, userID, listID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_lists WHERE id = $1 AND user_id = $2)`, listID, userID).Scan(&ok)
	return ok, err
}

// GetByID returns a list or pgx.ErrNoRows.
func (r *ListRepo) GetByID(ctx context.Context, listID int64) (*model.List, error) {
	var l model.List
	err := r.pool.QueryRow(ctx, `SELECT `+listColumns+` FROM user_lists l WHERE l.id = $1`, listID).Scan(listDest(&l)...)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ByOwnerAndName finds ownerID's list by case-insensitive name, or pgx.ErrNoRows.
func (r *ListRepo) ByOwnerAndName(ctx context.Context, ownerID int64, name string) (*model.List, error) {
	var l model.List
	err := r.pool.QueryRow(ctx, `
		SELECT `+listColumns+` FROM user_lists l
		WHERE l.user_id = $1 AND LOWER(l.name) = LOWER($2)`, ownerID, name).Scan(listDest(&l)...)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ForUser returns userID's lists, most recently updated first.
func (r *ListRepo) ForUser(ctx context.Context, userID int64, publicOnly bool) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+listColumns+` FROM user_lists l
		WHERE l.user_id = $1 AND (NOT $2 OR l.is_public)
		ORDER BY l.updated_at DESC, l.created_at DESC`, userID, publicOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.List{}
	for rows.Next() {
		var l model.List
		if err := rows.Scan(listDest(&l)...); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Items returns the content of listID, most recently added first.
// A nil limit returns every item.
func (r *ListRepo) Items(ctx context.Context, listID int64, limit *int) ([]model.ListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT li.id, li.added_at, `+contentColumns+`
		FROM list_items li JOIN content c ON c.id = li.content_id
		WHERE li.list_id = $1
		ORDER BY li.added_at DESC NULLS LAST, li.seq DESC
		LIMIT $2`, listID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ListItem{}
	for rows.Next() {
		item := model.ListItem{ListID: listID}
		dest := append([]any{&item.ID, &item.AddedAt}, contentDest(&item.Content)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ItemCounts counts listID's items by media kind.
func (r *ListRepo) ItemCounts(ctx context.Context, listID int64) (model.ListItemCounts, error) {
	var c model.ListItemCounts
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE c.media_type = 'movie'),
		       COUNT(*) FILTER (WHERE c.media_type = 'tv')
		FROM list_items li JOIN content c ON c.id = li.content_id
		WHERE li.list_id = $1`, listID).Scan(&c.Total, &c.Movies, &c.Shows)
	return c, err
}

// HasLiked reports whether userID likes listID.
func (r *ListRepo) HasLiked(ctx context.Context, userID, listID int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM list_likes WHERE user_id = $1 AND list_id = $2)`, userID, listID).Scan(&ok)
	return ok, err
}

const summarySelect = `SELECT ` + listColumns + `, u.username, u.pfp
	FROM user_lists l JOIN users u ON u.id = l.user_id`

func collectSummaries(rows pgx.Rows) ([]model.ListSummary, error) {
	defer rows.Close()
	out := []model.ListSummary{}
	for rows.Next() {
		var (
			s   model.ListSummary
			pfp []byte
		)
		if err := rows.Scan(append(listDest(&s.List), &s.Username, &pfp)...); err != nil {
			return nil, err
		}
		s.PfpBase64 = encodePfp(pfp)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Popular returns public lists by like count.
func (r *ListRepo) Popular(ctx context.Context, limit int) ([]model.ListSummary, error) {
	rows, err := r.pool.Query(ctx, summarySelect+`
		WHERE l.is_public
		ORDER BY l.likes_count DESC NULLS LAST, l.updated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

// TopByEngagement returns public lists by likes plus comments.
func (r *ListRepo) TopByEngagement(ctx context.Context, limit int) ([]model.ListSummary, error) {
	rows, err := r.pool.Query(ctx, summarySelect+`
		WHERE l.is_public
		ORDER BY (COALESCE(l.likes_count, 0) + COALESCE(l.comments_count, 0)) DESC,
		         l.likes_count DESC NULLS LAST, l.updated_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

// Search matches query against list name, description and owner username.
// Private lists match only for their owner; viewerID 0 sees public lists only.
func (r *ListRepo) Search(ctx context.Context, query string, viewerID int64, limit, offset int) ([]model.ListSummary, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.pool.Query(ctx, summarySelect+`
		WHERE (l.name ILIKE $1 OR l.description ILIKE $1 OR u.username ILIKE $1)
		  AND (l.is_public OR l.user_id = $2)
		ORDER BY l.likes_count DESC NULLS LAST, l.updated_at DESC
		LIMIT $3 OFFSET $4`, pattern, viewerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectSummaries(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
