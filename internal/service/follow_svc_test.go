package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

func ptr(n int) *int { return &n }

func TestResolveFollowStats(t *testing.T) {
	tests := []struct {
		name string
		c    model.FollowCounters
		want model.FollowStats
	}{
		{"stored preferred", model.FollowCounters{StoredFollowers: ptr(5), StoredFollowing: ptr(2), LiveFollowers: 6, LiveFollowing: 3}, model.FollowStats{Followers: 5, Following: 2}},
		{"uninitialized uses live", model.FollowCounters{LiveFollowers: 6, LiveFollowing: 3}, model.FollowStats{Followers: 6, Following: 3}},
		{"mixed", model.FollowCounters{StoredFollowers: ptr(0), LiveFollowers: 1, LiveFollowing: 4}, model.FollowStats{Followers: 0, Following: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFollowStats(tt.c); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFollowCountersDiverge(t *testing.T) {
	tests := []struct {
		name string
		c    model.FollowCounters
		want bool
	}{
		{"agree", model.FollowCounters{StoredFollowers: ptr(2), StoredFollowing: ptr(1), LiveFollowers: 2, LiveFollowing: 1}, false},
		{"followers off", model.FollowCounters{StoredFollowers: ptr(3), StoredFollowing: ptr(1), LiveFollowers: 2, LiveFollowing: 1}, true},
		{"following off", model.FollowCounters{StoredFollowers: ptr(2), StoredFollowing: ptr(0), LiveFollowers: 2, LiveFollowing: 1}, true},
		{"uninitialized never diverges", model.FollowCounters{LiveFollowers: 9, LiveFollowing: 9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FollowCountersDiverge(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func newFollowService(follows *fakeFollows, toggles *fakeToggles) *FollowService {
	users := &fakeUsers{byName: map[string]*model.User{
		"alice": {ID: 1, Username: "alice"},
		"bob":   {ID: 2, Username: "bob"},
	}}
	return NewFollowService(toggles, follows, users, zerolog.Nop())
}

func TestFollowService_Toggle(t *testing.T) {
	toggles := &fakeToggles{}
	svc := newFollowService(&fakeFollows{}, toggles)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, 1, "alice"); !apperr.IsValidation(err) || err.Error() != "Cannot follow yourself" {
		t.Errorf("self follow: err = %v", err)
	}
	if _, err := svc.Toggle(ctx, 1, "nobody"); !apperr.IsNotFound(err) {
		t.Errorf("unknown user: err = %v, want not found", err)
	}
	if _, err := svc.Toggle(ctx, 0, "bob"); !apperr.IsValidation(err) {
		t.Errorf("anonymous: err = %v, want validation", err)
	}
	if toggles.calls != 0 {
		t.Fatalf("store called %d times before a valid toggle", toggles.calls)
	}

	first, err := svc.Toggle(ctx, 1, "Bob")
	if err != nil || !first.Active {
		t.Fatalf("first toggle = %+v, %v", first, err)
	}
	second, err := svc.Toggle(ctx, 1, "bob")
	if err != nil || second.Active {
		t.Fatalf("second toggle = %+v, %v", second, err)
	}
}

func TestFollowService_IsFollowingSelfOrAnonymous(t *testing.T) {
	svc := newFollowService(&fakeFollows{following: true}, &fakeToggles{})
	ctx := context.Background()

	if ok, _ := svc.IsFollowing(ctx, 0, 2); ok {
		t.Error("anonymous viewer should not follow")
	}
	if ok, _ := svc.IsFollowing(ctx, 2, 2); ok {
		t.Error("user should not follow themself")
	}
	if ok, _ := svc.IsFollowing(ctx, 1, 2); !ok {
		t.Error("expected store answer")
	}
}

func TestFollowService_VerifyDoesNotRepair(t *testing.T) {
	follows := &fakeFollows{counters: model.FollowCounters{StoredFollowers: ptr(5), StoredFollowing: ptr(0), LiveFollowers: 3}}
	svc := newFollowService(follows, &fakeToggles{})

	diverged, err := svc.Verify(context.Background(), 1)
	if err != nil || !diverged {
		t.Fatalf("Verify = %v, %v; want divergence", diverged, err)
	}
	st, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if st.Followers != 5 {
		t.Errorf("followers = %d, want stored value 5", st.Followers)
	}
}

func TestFollowService_StatsReportsDivergence(t *testing.T) {
	tests := []struct {
		name     string
		counters model.FollowCounters
		wantInc  float64
	}{
		{"consistent", model.FollowCounters{StoredFollowers: ptr(3), StoredFollowing: ptr(1), LiveFollowers: 3, LiveFollowing: 1}, 0},
		{"uninitialized", model.FollowCounters{LiveFollowers: 4}, 0},
		{"stored ahead of live", model.FollowCounters{StoredFollowers: ptr(5), StoredFollowing: ptr(0), LiveFollowers: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFollowService(&fakeFollows{counters: tt.counters}, &fakeToggles{})
			before := testutil.ToFloat64(metrics.FollowCounterDivergence)
			if _, err := svc.Stats(context.Background(), 1); err != nil {
				t.Fatal(err)
			}
			if got := testutil.ToFloat64(metrics.FollowCounterDivergence) - before; got != tt.wantInc {
				t.Errorf("divergence counter moved by %v, want %v", got, tt.wantInc)
			}
		})
	}
}
