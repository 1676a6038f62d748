package model

import "time"

// MaxListNameLen matches user_lists.name VARCHAR(200).
const MaxListNameLen = 200

// List is a user-curated collection of content.
type List struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ListSummary is a list card for feeds, search and profiles: the list, its
// owner's display info, the latest items and the item split.
type ListSummary struct {
	List
	Username    string         `json:"username"`
	PfpBase64   string         `json:"pfp,omitempty"`
	RecentItems []ListItem     `json:"recentItems"`
	Counts      ListItemCounts `json:"counts"`
}

// ListItem is a content record inside a list.
type ListItem struct {
	ID      int64     `json:"id"`
	ListID  int64     `json:"listId"`
	Content Content   `json:"content"`
	AddedAt time.Time `json:"addedAt"`
}

// ListItemCounts splits a list's items by media kind.
type ListItemCounts struct {
	Total  int `json:"total"`
	Movies int `json:"movies"`
	Shows  int `json:"shows"`
}

// ToggleResult is the outcome of an engagement toggle.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}
