package model

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// Rating is one user's score (and optional review) for a content record.
type Rating struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	ContentID  int64     `json:"contentId"`
	Score      int       `json:"score"`
	ReviewText *string   `json:"reviewText,omitempty"`
	LikesCount int       `json:"likesCount"`
	RatedAt    time.Time `json:"ratedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RatingResult is returned after a rating upsert.
type RatingResult struct {
	Rating Rating       `json:"rating"`
	Stats  ContentStats `json:"stats"`
}

// Review is a rating with text, joined with its author and content.
type Review struct {
	Rating
	Username  string  `json:"username"`
	PfpBase64 string  `json:"pfp,omitempty"`
	Content   Content `json:"content"`
	LikedByMe bool    `json:"likedByMe"`
}

// RatedContent is a content record together with one user's score.
type RatedContent struct {
	Content   Content   `json:"content"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewedContent is a content record with the time of its latest review.
type ReviewedContent struct {
	Content      Content   `json:"content"`
	LastReviewed time.Time `json:"lastReviewed"`
}
