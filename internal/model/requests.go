package model

// RatingRequest is the API request body for rating content.
type RatingRequest struct {
	Content ContentRef `json:"content" validate:"required"`
	Score   *int       `json:"score" validate:"required,min=0,max=100"`
	Review  *string    `json:"review,omitempty" validate:"omitempty,max=10000"`
}

// ResolveContentRequest is the API request body for registering a catalog item locally.
type ResolveContentRequest struct {
	Content ContentRef `json:"content" validate:"required"`
}

// WatchRequest is the API request body for marking content watched.
type WatchRequest struct {
	Content ContentRef `json:"content" validate:"required"`
}

// CreateListRequest is the API request body for creating a list.
type CreateListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description" validate:"max=2000"`
	IsPublic    *bool  `json:"isPublic"`
}

// AddListItemRequest is the API request body for adding content to a list.
type AddListItemRequest struct {
	Content ContentRef `json:"content" validate:"required"`
}

// CommentRequest is the API request body for commenting on a list.
type CommentRequest struct {
	Text string `json:"text" validate:"max=5000"`
}

// SettingsRequest is the API request body for updating profile settings.
type SettingsRequest struct {
	HideFullname    *bool `json:"hideFullname"`
	HideFollowStats *bool `json:"hideFollowStats"`
}
