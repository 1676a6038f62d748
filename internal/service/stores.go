package service

import (
	"context"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

// The interfaces below are the slices of the repositories each service
// depends on. The concrete *repository.XRepo types satisfy them.

type contentStore interface {
	ResolveOrCreate(ctx context.Context, ref model.ContentRef) (int64, error)
	MarkWatched(ctx context.Context, userID int64, ref model.ContentRef) (model.ContentStats, error)
	Stats(ctx context.Context, key model.ContentKey) (model.ContentStats, error)
	StatsFor(ctx context.Context, keys []model.ContentKey) (map[model.ContentKey]model.ContentStats, error)
	ViewerState(ctx context.Context, userID int64, keys []model.ContentKey) (map[model.ContentKey]bool, map[model.ContentKey]int, error)
	HasWatched(ctx context.Context, userID int64, key model.ContentKey) (bool, error)
}

type ratingStore interface {
	Upsert(ctx context.Context, userID int64, ref model.ContentRef, score int, review *string) (*model.RatingResult, error)
	ForUser(ctx context.Context, userID int64, key model.ContentKey) (*model.Rating, error)
	ReviewsForContent(ctx context.Context, key model.ContentKey, viewerID int64) ([]model.Review, error)
	Popular(ctx context.Context, viewerID int64, limit int) ([]model.Review, error)
	RecentForUser(ctx context.Context, userID, viewerID int64, limit *int) ([]model.Review, error)
	TopRatedForUser(ctx context.Context, userID int64, limit int) ([]model.RatedContent, error)
	RecentlyReviewedContent(ctx context.Context, limit int) ([]model.ReviewedContent, error)
}

type engagementStore interface {
	ToggleListLike(ctx context.Context, userID, listID int64, authorize func(ownerID int64, isPublic bool) error) (model.ToggleResult, error)
	ToggleRatingLike(ctx context.Context, userID, ratingID int64) (model.ToggleResult, error)
	ToggleFollow(ctx context.Context, followerID, followeeID int64) (model.ToggleResult, error)
}

type listStore interface {
	Create(ctx context.Context, userID int64, name, description string, isPublic bool) (*model.List, error)
	AddItem(ctx context.Context, listID int64, ref model.ContentRef, authorize func(ownerID int64) error) (*model.ListItem, error)
	Owns(ctx context.Context, userID, listID int64) (bool, error)
	GetByID(ctx context.Context, listID int64) (*model.List, error)
	ByOwnerAndName(ctx context.Context, ownerID int64, name string) (*model.List, error)
	ForUser(ctx context.Context, userID int64, publicOnly bool) ([]model.List, error)
	Items(ctx context.Context, listID int64, limit *int) ([]model.ListItem, error)
	ItemCounts(ctx context.Context, listID int64) (model.ListItemCounts, error)
	HasLiked(ctx context.Context, userID, listID int64) (bool, error)
	Popular(ctx context.Context, limit int) ([]model.ListSummary, error)
	TopByEngagement(ctx context.Context, limit int) ([]model.ListSummary, error)
	Search(ctx context.Context, query string, viewerID int64, limit, offset int) ([]model.ListSummary, error)
}

type commentStore interface {
	Add(ctx context.Context, authorID, listID int64, text string) (*model.CommentResult, error)
	ForList(ctx context.Context, listID int64) ([]model.Comment, error)
	Delete(ctx context.Context, commentID int64, authorize func(authorID, ownerID int64) error) (*model.DeleteCommentResult, error)
}

type userStore interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Members(ctx context.Context, query string, order model.MemberOrder, limit int) ([]model.Member, error)
	GetStats(ctx context.Context) (*model.SiteStats, error)
}

type followStore interface {
	Counters(ctx context.Context, userID int64) (model.FollowCounters, error)
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
}

type settingsStore interface {
	Get(ctx context.Context, userID int64) (map[string]string, error)
	Set(ctx context.Context, userID int64, values map[string]string) error
}

type feedStore interface {
	WatchEvents(ctx context.Context, userID int64, limit int) ([]model.ActivityEvent, error)
	ListAddEvents(ctx context.Context, userID int64, limit int) ([]model.ActivityEvent, error)
}

// Catalog is the external media catalog. Implementations return
// apperr.ErrUpstreamUnavailable when the upstream cannot serve a request.
type Catalog interface {
	Search(ctx context.Context, query string, kind string, page int) (*model.CatalogPage, error)
	Trending(ctx context.Context, kind, window string, page int) (*model.CatalogPage, error)
	Popular(ctx context.Context, kind model.MediaType, page int) (*model.CatalogPage, error)
	Details(ctx context.Context, kind model.MediaType, id int) (*model.CatalogDetails, error)
	Recommendations(ctx context.Context, kind model.MediaType, id, page int) (*model.CatalogPage, error)
	Similar(ctx context.Context, kind model.MediaType, id, page int) (*model.CatalogPage, error)
	Discover(ctx context.Context, kind model.MediaType, f model.DiscoverFilter) (*model.CatalogPage, error)
	Genres(ctx context.Context, kind model.MediaType) ([]model.Genre, error)
}
