package service

import (
	"context"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

const (
	RecentActivityLimit   = 5
	PopularReviewsLimit   = 8
	RecentlyReviewedLimit = 6
	TopRatedLimit         = 5
)

// FeedService serves the read-only projections shown on home and profile pages.
type FeedService struct {
	feed    feedStore
	ratings ratingStore
	users   userStore
}

func NewFeedService(feed feedStore, ratings ratingStore, users userStore) *FeedService {
	return &FeedService{feed: feed, ratings: ratings, users: users}
}

// RecentActivity merges username's latest watches and list additions.
func (s *FeedService) RecentActivity(ctx context.Context, username string, limit int) ([]model.ActivityEvent, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}
	if limit <= 0 {
		limit = RecentActivityLimit
	}

	watched, err := s.feed.WatchEvents(ctx, u.ID, limit)
	if err != nil {
		return nil, err
	}
	listed, err := s.feed.ListAddEvents(ctx, u.ID, limit)
	if err != nil {
		return nil, err
	}
	return MergeActivity(watched, listed, limit), nil
}

// PopularReviews returns the most liked reviews with viewerID's like flags.
func (s *FeedService) PopularReviews(ctx context.Context, viewerID int64) ([]model.Review, error) {
	return s.ratings.Popular(ctx, viewerID, PopularReviewsLimit)
}

// RecentlyReviewed returns content ordered by its latest review.
func (s *FeedService) RecentlyReviewed(ctx context.Context) ([]model.ReviewedContent, error) {
	return s.ratings.RecentlyReviewedContent(ctx, RecentlyReviewedLimit)
}

// TopRated returns username's highest scored content.
func (s *FeedService) TopRated(ctx context.Context, username string) ([]model.RatedContent, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}
	return s.ratings.TopRatedForUser(ctx, u.ID, TopRatedLimit)
}

// RecentReviews returns username's reviews newest first; limit <= 0 returns all.
func (s *FeedService) RecentReviews(ctx context.Context, username string, viewerID int64, limit int) ([]model.Review, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	return s.ratings.RecentForUser(ctx, u.ID, viewerID, lim)
}
