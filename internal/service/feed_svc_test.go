package service

import (
	"context"
	"testing"
	"time"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

type fakeFeed struct {
	watched []model.ActivityEvent
	listed  []model.ActivityEvent
	limits  []int
}

func (f *fakeFeed) WatchEvents(_ context.Context, _ int64, limit int) ([]model.ActivityEvent, error) {
	f.limits = append(f.limits, limit)
	return f.watched, nil
}

func (f *fakeFeed) ListAddEvents(_ context.Context, _ int64, limit int) ([]model.ActivityEvent, error) {
	f.limits = append(f.limits, limit)
	return f.listed, nil
}

type fakeRatings struct {
	ratingStore
	recentLimit *int
	popularArgs [2]int64
}

func (f *fakeRatings) RecentForUser(_ context.Context, _, _ int64, limit *int) ([]model.Review, error) {
	f.recentLimit = limit
	return []model.Review{}, nil
}

func (f *fakeRatings) Popular(_ context.Context, viewerID int64, limit int) ([]model.Review, error) {
	f.popularArgs = [2]int64{viewerID, int64(limit)}
	return []model.Review{}, nil
}

func newFeedFixture() (*FeedService, *fakeFeed, *fakeRatings) {
	users := &fakeUsers{byName: map[string]*model.User{"alice": {ID: 1, Username: "alice"}}}
	feed := &fakeFeed{}
	ratings := &fakeRatings{}
	return NewFeedService(feed, ratings, users), feed, ratings
}

func TestFeedService_RecentActivity(t *testing.T) {
	svc, feed, _ := newFeedFixture()
	at := func(h int) *time.Time {
		ts := time.Date(2024, 1, 1, h, 0, 0, 0, time.UTC)
		return &ts
	}
	feed.watched = []model.ActivityEvent{
		{Kind: model.ActivityWatched, Seq: 3, Timestamp: at(12)},
		{Kind: model.ActivityWatched, Seq: 1, Timestamp: at(8)},
	}
	feed.listed = []model.ActivityEvent{
		{Kind: model.ActivityListed, Seq: 2, Timestamp: at(10)},
	}

	got, err := svc.RecentActivity(context.Background(), "Alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	wantSeq := []int64{3, 2, 1}
	if len(got) != len(wantSeq) {
		t.Fatalf("events = %d, want %d", len(got), len(wantSeq))
	}
	for i, e := range got {
		if e.Seq != wantSeq[i] {
			t.Errorf("event %d seq = %d, want %d", i, e.Seq, wantSeq[i])
		}
	}
	for _, l := range feed.limits {
		if l != RecentActivityLimit {
			t.Errorf("store limit = %d, want default %d", l, RecentActivityLimit)
		}
	}
}

func TestFeedService_UnknownUser(t *testing.T) {
	svc, _, _ := newFeedFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"activity", func() error { _, err := svc.RecentActivity(ctx, "nobody", 5); return err }},
		{"top rated", func() error { _, err := svc.TopRated(ctx, "nobody"); return err }},
		{"reviews", func() error { _, err := svc.RecentReviews(ctx, "nobody", 0, 0); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !apperr.IsNotFound(err) {
				t.Errorf("err = %v, want not found", err)
			}
		})
	}
}

func TestFeedService_RecentReviewsLimit(t *testing.T) {
	svc, _, ratings := newFeedFixture()
	ctx := context.Background()

	if _, err := svc.RecentReviews(ctx, "alice", 0, 0); err != nil {
		t.Fatal(err)
	}
	if ratings.recentLimit != nil {
		t.Errorf("limit = %d, want nil for all reviews", *ratings.recentLimit)
	}
	if _, err := svc.RecentReviews(ctx, "alice", 0, 3); err != nil {
		t.Fatal(err)
	}
	if ratings.recentLimit == nil || *ratings.recentLimit != 3 {
		t.Errorf("limit = %v, want 3", ratings.recentLimit)
	}
}

func TestFeedService_PopularReviewsPassesViewer(t *testing.T) {
	svc, _, ratings := newFeedFixture()
	if _, err := svc.PopularReviews(context.Background(), 42); err != nil {
		t.Fatal(err)
	}
	if ratings.popularArgs != [2]int64{42, PopularReviewsLimit} {
		t.Errorf("args = %v", ratings.popularArgs)
	}
}
