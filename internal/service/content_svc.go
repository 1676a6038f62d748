package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

type ContentService struct {
	content contentStore
	ratings ratingStore
	logger  zerolog.Logger
}

func NewContentService(content contentStore, ratings ratingStore, logger zerolog.Logger) *ContentService {
	return &ContentService{content: content, ratings: ratings, logger: logger}
}

// Resolve returns the local id for a catalog reference, creating the record on first use.
func (s *ContentService) Resolve(ctx context.Context, ref model.ContentRef) (int64, error) {
	ref, err := ValidateContentRef(ref)
	if err != nil {
		return 0, err
	}
	return s.content.ResolveOrCreate(ctx, ref)
}

// MarkWatched records a watch by actorID and returns the refreshed stats.
func (s *ContentService) MarkWatched(ctx context.Context, actorID int64, ref model.ContentRef) (model.ContentStats, error) {
	if err := requireActor(actorID); err != nil {
		return model.ContentStats{}, err
	}
	ref, err := ValidateContentRef(ref)
	if err != nil {
		return model.ContentStats{}, err
	}
	return s.content.MarkWatched(ctx, actorID, ref)
}

// Rate upserts actorID's score and optional review. Blank reviews are stored as none.
func (s *ContentService) Rate(ctx context.Context, actorID int64, ref model.ContentRef, score int, review *string) (*model.RatingResult, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	ref, err := ValidateContentRef(ref)
	if err != nil {
		return nil, err
	}
	if err := ValidateScore(score); err != nil {
		return nil, err
	}
	return s.ratings.Upsert(ctx, actorID, ref, score, normalizeReview(review))
}

// Stats returns the aggregates of key; unknown content yields zeros.
func (s *ContentService) Stats(ctx context.Context, key model.ContentKey) (model.ContentStats, error) {
	key, err := ValidateContentKey(key)
	if err != nil {
		return model.ContentStats{}, err
	}
	return s.content.Stats(ctx, key)
}

// HasWatched reports whether userID marked key watched.
func (s *ContentService) HasWatched(ctx context.Context, userID int64, key model.ContentKey) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	return s.content.HasWatched(ctx, userID, key)
}

// UserRating returns userID's rating of key, or nil when there is none.
func (s *ContentService) UserRating(ctx context.Context, userID int64, key model.ContentKey) (*model.Rating, error) {
	if userID <= 0 {
		return nil, nil
	}
	r, err := s.ratings.ForUser(ctx, userID, key)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

// Reviews returns the reviews of key with the viewer's like flags.
func (s *ContentService) Reviews(ctx context.Context, key model.ContentKey, viewerID int64) ([]model.Review, error) {
	key, err := ValidateContentKey(key)
	if err != nil {
		return nil, err
	}
	return s.ratings.ReviewsForContent(ctx, key, viewerID)
}

// Enrich attaches local stats, and the viewer's watch and score state when
// viewerID is set, to catalog items. Items of unknown media kind default to
// movie. Lookup failures are logged and leave zero stats.
func (s *ContentService) Enrich(ctx context.Context, viewerID int64, items []model.CatalogItem) []model.EnrichedItem {
	out := make([]model.EnrichedItem, len(items))
	keys := make([]model.ContentKey, 0, len(items))
	for i, it := range items {
		if !it.MediaType.Valid() {
			it.MediaType = model.MediaMovie
		}
		out[i] = model.EnrichedItem{CatalogItem: it}
		keys = append(keys, it.Key())
	}

	stats, err := s.content.StatsFor(ctx, keys)
	if err != nil {
		s.logger.Warn().Err(err).Int("items", len(items)).Msg("enrich: stats lookup failed")
		return out
	}
	for i := range out {
		out[i].Stats = stats[out[i].Key()]
	}

	if viewerID <= 0 {
		return out
	}
	watched, scores, err := s.content.ViewerState(ctx, viewerID, keys)
	if err != nil {
		s.logger.Warn().Err(err).Msg("enrich: viewer state lookup failed")
		return out
	}
	for i := range out {
		k := out[i].Key()
		out[i].WatchedByMe = watched[k]
		if sc, ok := scores[k]; ok {
			out[i].MyScore = &sc
		}
	}
	return out
}
