package model

import "time"

// ActivityKind distinguishes the sources of the activity feed.
type ActivityKind string

const (
	ActivityWatched ActivityKind = "watched"
	ActivityListed  ActivityKind = "listed"
)

// ActivityEvent is one entry of a user's recent activity.
// Seq comes from a sequence shared by both sources and breaks timestamp ties.
type ActivityEvent struct {
	Kind      ActivityKind `json:"kind"`
	Seq       int64        `json:"-"`
	Timestamp *time.Time   `json:"timestamp"`
	Content   Content      `json:"content"`
	ListID    int64        `json:"listId,omitempty"`
	ListName  string       `json:"listName,omitempty"`
}
