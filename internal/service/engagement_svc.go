package service

import (
	"context"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

// EngagementService flips likes on lists and reviews.
type EngagementService struct {
	store engagementStore
}

func NewEngagementService(store engagementStore) *EngagementService {
	return &EngagementService{store: store}
}

// ToggleListLike likes listID for actorID if not yet liked, otherwise unlikes it.
// A list the actor cannot see is reported as not found.
func (s *EngagementService) ToggleListLike(ctx context.Context, actorID, listID int64) (model.ToggleResult, error) {
	if err := requireActor(actorID); err != nil {
		return model.ToggleResult{}, err
	}
	if err := validID("listId", listID); err != nil {
		return model.ToggleResult{}, err
	}
	return s.store.ToggleListLike(ctx, actorID, listID, listViewGuard(actorID))
}

// ToggleReviewLike likes or unlikes a review. The review's edit time is unchanged.
func (s *EngagementService) ToggleReviewLike(ctx context.Context, actorID, ratingID int64) (model.ToggleResult, error) {
	if err := requireActor(actorID); err != nil {
		return model.ToggleResult{}, err
	}
	if err := validID("ratingId", ratingID); err != nil {
		return model.ToggleResult{}, err
	}
	return s.store.ToggleRatingLike(ctx, actorID, ratingID)
}
