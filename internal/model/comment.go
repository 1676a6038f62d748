package model

import "time"

// Comment is a remark on a list.
type Comment struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"listId"`
	UserID    int64     `json:"userId"`
	Text      string    `json:"text"`
	Username  string    `json:"username,omitempty"`
	Firstname string    `json:"firstname,omitempty"`
	Lastname  string    `json:"lastname,omitempty"`
	PfpBase64 string    `json:"pfp,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentResult is returned after adding a comment.
type CommentResult struct {
	Comment       Comment `json:"comment"`
	CommentsCount int     `json:"commentsCount"`
}

// DeleteCommentResult is returned after deleting a comment.
type DeleteCommentResult struct {
	Deleted       bool  `json:"deleted"`
	CommentsCount int   `json:"commentsCount"`
	ListID        int64 `json:"listId"`
}
