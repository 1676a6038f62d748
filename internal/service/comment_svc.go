package service

import (
	"context"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

type CommentService struct {
	comments commentStore
	lists    *ListService
}

func NewCommentService(comments commentStore, lists *ListService) *CommentService {
	return &CommentService{comments: comments, lists: lists}
}

// Add posts text on listID as authorID. The list must be visible to the author.
func (s *CommentService) Add(ctx context.Context, authorID, listID int64, text string) (*model.CommentResult, error) {
	if err := requireActor(authorID); err != nil {
		return nil, err
	}
	if err := validID("listId", listID); err != nil {
		return nil, err
	}
	text, err := NormalizeComment(text)
	if err != nil {
		return nil, err
	}
	if _, err := s.lists.Get(ctx, listID, authorID); err != nil {
		return nil, err
	}
	return s.comments.Add(ctx, authorID, listID, text)
}

// ForList returns the comments of a list visible to viewerID, newest first.
func (s *CommentService) ForList(ctx context.Context, listID, viewerID int64) ([]model.Comment, error) {
	if _, err := s.lists.Get(ctx, listID, viewerID); err != nil {
		return nil, err
	}
	return s.comments.ForList(ctx, listID)
}

// Delete removes commentID when actorID wrote it or owns its list.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID int64) (*model.DeleteCommentResult, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := validID("commentId", commentID); err != nil {
		return nil, err
	}
	return s.comments.Delete(ctx, commentID, commentDeleteGuard(actorID))
}
