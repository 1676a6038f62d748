package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/metrics"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

type FollowService struct {
	toggles engagementStore
	follows followStore
	users   userStore
	logger  zerolog.Logger
}

func NewFollowService(toggles engagementStore, follows followStore, users userStore, logger zerolog.Logger) *FollowService {
	return &FollowService{toggles: toggles, follows: follows, users: users, logger: logger}
}

// Toggle follows username for actorID if not yet followed, otherwise unfollows.
// Count in the result is the target's follower count afterwards.
func (s *FollowService) Toggle(ctx context.Context, actorID int64, username string) (model.ToggleResult, error) {
	if err := requireActor(actorID); err != nil {
		return model.ToggleResult{}, err
	}
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return model.ToggleResult{}, notFoundIf(err, "User")
	}
	if target.ID == actorID {
		return model.ToggleResult{}, apperr.Validation("username", "Cannot follow yourself")
	}
	return s.toggles.ToggleFollow(ctx, actorID, target.ID)
}

// IsFollowing reports whether followerID follows followeeID.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	if followerID <= 0 || followerID == followeeID {
		return false, nil
	}
	return s.follows.IsFollowing(ctx, followerID, followeeID)
}

// Stats returns userID's follow counts, preferring the stored counters.
func (s *FollowService) Stats(ctx context.Context, userID int64) (model.FollowStats, error) {
	c, err := s.follows.Counters(ctx, userID)
	if err != nil {
		return model.FollowStats{}, notFoundIf(err, "User")
	}
	s.reportDivergence(userID, c)
	return ResolveFollowStats(c), nil
}

// Verify compares the stored counters of userID with live counts. A mismatch
// is logged and reported; the stored values are left as they are.
func (s *FollowService) Verify(ctx context.Context, userID int64) (bool, error) {
	c, err := s.follows.Counters(ctx, userID)
	if err != nil {
		return false, notFoundIf(err, "User")
	}
	return s.reportDivergence(userID, c), nil
}

func (s *FollowService) reportDivergence(userID int64, c model.FollowCounters) bool {
	if !FollowCountersDiverge(c) {
		return false
	}
	metrics.FollowCounterDivergence.Inc()
	s.logger.Warn().
		Int64("user_id", userID).
		Interface("stored_followers", c.StoredFollowers).
		Interface("stored_following", c.StoredFollowing).
		Int("live_followers", c.LiveFollowers).
		Int("live_following", c.LiveFollowing).
		Msg("follow counters diverge from user_follows")
	return true
}

// ResolveFollowStats uses each stored counter when set and the live count otherwise.
func ResolveFollowStats(c model.FollowCounters) model.FollowStats {
	st := model.FollowStats{Followers: c.LiveFollowers, Following: c.LiveFollowing}
	if c.StoredFollowers != nil {
		st.Followers = *c.StoredFollowers
	}
	if c.StoredFollowing != nil {
		st.Following = *c.StoredFollowing
	}
	return st
}

// FollowCountersDiverge reports whether an initialized stored counter disagrees with its live count.
func FollowCountersDiverge(c model.FollowCounters) bool {
	return (c.StoredFollowers != nil && *c.StoredFollowers != c.LiveFollowers) ||
		(c.StoredFollowing != nil && *c.StoredFollowing != c.LiveFollowing)
}
