package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/pkg/slug"
)

// EnrichedPage is a catalog page whose items carry local stats.
type EnrichedPage struct {
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"totalPages"`
	TotalResults int                  `json:"totalResults"`
	Results      []model.EnrichedItem `json:"results"`
	// Degraded is set when the catalog could not be reached.
	Degraded bool `json:"degraded,omitempty"`
}

// CatalogService proxies the external catalog and merges in local engagement
// data. When the catalog is unavailable, browse calls return empty pages
// instead of failing.
type CatalogService struct {
	catalog Catalog
	content *ContentService
	logger  zerolog.Logger
}

func NewCatalogService(catalog Catalog, content *ContentService, logger zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, content: content, logger: logger}
}

func (s *CatalogService) enrich(ctx context.Context, viewerID int64, page *model.CatalogPage, err error, op string) (*EnrichedPage, error) {
	if err != nil {
		if errors.Is(err, apperr.ErrUpstreamUnavailable) {
			s.logger.Warn().Err(err).Str("op", op).Msg("catalog unavailable, returning empty page")
			return &EnrichedPage{Page: 1, Results: []model.EnrichedItem{}, Degraded: true}, nil
		}
		return nil, err
	}
	for i := range page.Results {
		it := &page.Results[i]
		it.Slug = slug.Title(it.Title, slug.Year(it.ReleaseDate))
	}
	return &EnrichedPage{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Results:      s.content.Enrich(ctx, viewerID, page.Results),
	}, nil
}

// Search runs a catalog search. kind is "multi", "movie" or "tv".
func (s *CatalogService) Search(ctx context.Context, query, kind string, page int, viewerID int64) (*EnrichedPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &EnrichedPage{Page: 1, Results: []model.EnrichedItem{}}, nil
	}
	switch kind {
	case "", "multi":
		kind = "multi"
	case string(model.MediaMovie), string(model.MediaTV):
	default:
		return nil, apperr.Validation("type", "type must be multi, movie or tv")
	}
	p, err := s.catalog.Search(ctx, query, kind, normalizePage(page))
	return s.enrich(ctx, viewerID, p, err, "search")
}

// Trending returns trending items. kind is "all", "movie" or "tv"; window is "day" or "week".
func (s *CatalogService) Trending(ctx context.Context, kind, window string, page int, viewerID int64) (*EnrichedPage, error) {
	if kind == "" {
		kind = "all"
	}
	if window == "" {
		window = "week"
	}
	if kind != "all" && !model.MediaType(kind).Valid() {
		return nil, apperr.Validation("type", "type must be all, movie or tv")
	}
	if window != "day" && window != "week" {
		return nil, apperr.Validation("window", "window must be day or week")
	}
	p, err := s.catalog.Trending(ctx, kind, window, normalizePage(page))
	return s.enrich(ctx, viewerID, p, err, "trending")
}

// Popular returns popular movies or shows.
func (s *CatalogService) Popular(ctx context.Context, kind model.MediaType, page int, viewerID int64) (*EnrichedPage, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("mediaType", "mediaType must be movie or tv")
	}
	p, err := s.catalog.Popular(ctx, kind, normalizePage(page))
	return s.enrich(ctx, viewerID, p, err, "popular")
}

// Recommendations returns the catalog's recommendations for an item.
func (s *CatalogService) Recommendations(ctx context.Context, key model.ContentKey, page int, viewerID int64) (*EnrichedPage, error) {
	key, err := ValidateContentKey(key)
	if err != nil {
		return nil, err
	}
	p, err := s.catalog.Recommendations(ctx, key.MediaType, key.TMDBID, normalizePage(page))
	return s.enrich(ctx, viewerID, p, err, "recommendations")
}

// Similar returns items the catalog considers similar.
func (s *CatalogService) Similar(ctx context.Context, key model.ContentKey, page int, viewerID int64) (*EnrichedPage, error) {
	key, err := ValidateContentKey(key)
	if err != nil {
		return nil, err
	}
	p, err := s.catalog.Similar(ctx, key.MediaType, key.TMDBID, normalizePage(page))
	return s.enrich(ctx, viewerID, p, err, "similar")
}

// Discover browses the catalog with filters.
func (s *CatalogService) Discover(ctx context.Context, kind model.MediaType, f model.DiscoverFilter, viewerID int64) (*EnrichedPage, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("mediaType", "mediaType must be movie or tv")
	}
	f.Page = normalizePage(f.Page)
	if f.SortBy == "" {
		f.SortBy = "popularity.desc"
	}
	p, err := s.catalog.Discover(ctx, kind, f)
	return s.enrich(ctx, viewerID, p, err, "discover")
}

// Genres lists catalog genres for kind; an unavailable catalog yields none.
func (s *CatalogService) Genres(ctx context.Context, kind model.MediaType) ([]model.Genre, error) {
	if !kind.Valid() {
		return nil, apperr.Validation("mediaType", "mediaType must be movie or tv")
	}
	g, err := s.catalog.Genres(ctx, kind)
	if errors.Is(err, apperr.ErrUpstreamUnavailable) {
		s.logger.Warn().Err(err).Msg("catalog unavailable, returning no genres")
		return []model.Genre{}, nil
	}
	return g, err
}

// Details returns an item's detail record with local stats and the viewer's
// watch and rating state. Unlike browse calls, an unavailable catalog is an
// error here because there is nothing to show without the record.
func (s *CatalogService) Details(ctx context.Context, key model.ContentKey, viewerID int64) (*model.EnrichedDetails, error) {
	key, err := ValidateContentKey(key)
	if err != nil {
		return nil, err
	}
	d, err := s.catalog.Details(ctx, key.MediaType, key.TMDBID)
	if err != nil {
		return nil, err
	}
	d.Slug = slug.Title(d.Title, slug.Year(d.ReleaseDate))

	out := &model.EnrichedDetails{CatalogDetails: *d}
	if out.Stats, err = s.content.Stats(ctx, key); err != nil {
		return nil, err
	}
	if out.WatchedByMe, err = s.content.HasWatched(ctx, viewerID, key); err != nil {
		return nil, err
	}
	if out.MyRating, err = s.content.UserRating(ctx, viewerID, key); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	if page > 500 {
		return 500
	}
	return page
}
