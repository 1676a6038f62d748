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

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// Add stores a comment by authorID on listID and refreshes the list's
// comment count. text must already be trimmed and non-empty.
func (r *CommentRepo) Add(ctx context.Context, authorID, listID int64, text string) (*model.CommentResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := lockRow(ctx, tx, `SELECT 1 FROM user_lists WHERE id = $1 FOR NO KEY UPDATE`, "List", listID); err != nil {
		return nil, err
	}

	var res model.CommentResult
	c := &res.Comment
	var pfp []byte
	err = tx.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO list_comments (list_id, user_id, comment_text)
			VALUES ($1, $2, $3)
			RETURNING id, list_id, user_id, comment_text, created_at, updated_at
		)
		SELECT ins.id, ins.list_id, ins.user_id, ins.comment_text, ins.created_at, ins.updated_at,
		       u.username, u.firstname, u.lastname, u.pfp
		FROM ins JOIN users u ON u.id = ins.user_id`, listID, authorID, text).Scan(
		&c.ID, &c.ListID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
		&c.Username, &c.Firstname, &c.Lastname, &pfp)
	if err != nil {
		return nil, writeErr("insert comment", err)
	}
	c.PfpBase64 = encodePfp(pfp)

	if res.CommentsCount, err = RecomputeListComments(ctx, tx, listID); err != nil {
		return nil, err
	}
	return &res, tx.Commit(ctx)
}

// ForList returns listID's comments newest first with author display info.
func (r *CommentRepo) ForList(ctx context.Context, listID int64) ([]model.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lc.id, lc.list_id, lc.user_id, lc.comment_text, lc.created_at, lc.updated_at,
		       u.username, u.firstname, u.lastname, u.pfp
		FROM list_comments lc JOIN users u ON u.id = lc.user_id
		WHERE lc.list_id = $1
		ORDER BY lc.created_at DESC, lc.id DESC`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var (
			c   model.Comment
			pfp []byte
		)
		if err := rows.Scan(&c.ID, &c.ListID, &c.UserID, &c.Text, &c.CreatedAt, &c.UpdatedAt,
			&c.Username, &c.Firstname, &c.Lastname, &pfp); err != nil {
			return nil, err
		}
		c.PfpBase64 = encodePfp(pfp)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes commentID if authorize allows it. Lookup, authorization,
// deletion and the count refresh share one transaction, so a denied or
// failed delete leaves the comment and counter untouched.
func (r *CommentRepo) Delete(ctx context.Context, commentID int64, authorize func(authorID, ownerID int64) error) (*model.DeleteCommentResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var listID, authorID int64
	err = tx.QueryRow(ctx, `
		SELECT list_id, user_id FROM list_comments WHERE id = $1 FOR UPDATE`, commentID).Scan(&listID, &authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("Comment")
	}
	if err != nil {
		return nil, fmt.Errorf("lock comment: %w", err)
	}

	var ownerID int64
	err = tx.QueryRow(ctx, `SELECT user_id FROM user_lists WHERE id = $1 FOR NO KEY UPDATE`, listID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("List")
	}
	if err != nil {
		return nil, fmt.Errorf("lock list: %w", err)
	}

	if err := authorize(authorID, ownerID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM list_comments WHERE id = $1`, commentID); err != nil {
		return nil, fmt.Errorf("delete comment: %w", err)
	}

	res := &model.DeleteCommentResult{Deleted: true, ListID: listID}
	if res.CommentsCount, err = RecomputeListComments(ctx, tx, listID); err != nil {
		return nil, err
	}
	return res, tx.Commit(ctx)
}
