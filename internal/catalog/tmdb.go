package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

type tmdbItem struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
}

type tmdbPage struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []tmdbItem `json:"results"`
}

type tmdbDetails struct {
	tmdbItem
	Runtime        int           `json:"runtime"`
	EpisodeRunTime []int         `json:"episode_run_time"`
	Genres         []model.Genre `json:"genres"`
	Tagline        string        `json:"tagline"`
	Status         string        `json:"status"`
}

// toItem converts a raw result. Movies carry title and release_date, shows
// carry name and first_air_date. ok is false for non-title results such as people.
func (c *Client) toItem(it tmdbItem, fallback model.MediaType) (model.CatalogItem, bool) {
	kind := fallback
	if it.MediaType != "" {
		kind = model.MediaType(it.MediaType)
	}
	if !kind.Valid() {
		return model.CatalogItem{}, false
	}

	title, date := it.Title, it.ReleaseDate
	if kind == model.MediaTV || title == "" {
		if it.Name != "" {
			title = it.Name
		}
		if it.FirstAirDate != "" {
			date = it.FirstAirDate
		}
	}

	return model.CatalogItem{
		TMDBID:       it.ID,
		MediaType:    kind,
		Title:        title,
		Overview:     it.Overview,
		PosterPath:   it.PosterPath,
		BackdropPath: it.BackdropPath,
		PosterURL:    c.PosterURL(it.PosterPath, ""),
		BackdropURL:  c.BackdropURL(it.BackdropPath, ""),
		ReleaseDate:  date,
		VoteAverage:  it.VoteAverage,
		GenreIDs:     it.GenreIDs,
	}, true
}

func (c *Client) page(ctx context.Context, endpoint string, params url.Values, fallback model.MediaType) (*model.CatalogPage, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var raw tmdbPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", apperr.ErrUpstreamUnavailable, endpoint, err)
	}

	out := &model.CatalogPage{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Results:      make([]model.CatalogItem, 0, len(raw.Results)),
	}
	for _, it := range raw.Results {
		if item, ok := c.toItem(it, fallback); ok {
			out.Results = append(out.Results, item)
		}
	}
	return out, nil
}

func pageParams(page int) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	return v
}

// Search queries multi, movie or tv search.
func (c *Client) Search(ctx context.Context, query, kind string, page int) (*model.CatalogPage, error) {
	v := pageParams(page)
	v.Set("query", query)
	return c.page(ctx, "/search/"+kind, v, model.MediaType(kind))
}

// Trending returns trending titles; kind "all" mixes movies and shows.
func (c *Client) Trending(ctx context.Context, kind, window string, page int) (*model.CatalogPage, error) {
	return c.page(ctx, "/trending/"+kind+"/"+window, pageParams(page), model.MediaType(kind))
}

func (c *Client) Popular(ctx context.Context, kind model.MediaType, page int) (*model.CatalogPage, error) {
	return c.page(ctx, "/"+string(kind)+"/popular", pageParams(page), kind)
}

func (c *Client) Recommendations(ctx context.Context, kind model.MediaType, id, page int) (*model.CatalogPage, error) {
	return c.page(ctx, fmt.Sprintf("/%s/%d/recommendations", kind, id), pageParams(page), kind)
}

func (c *Client) Similar(ctx context.Context, kind model.MediaType, id, page int) (*model.CatalogPage, error) {
	return c.page(ctx, fmt.Sprintf("/%s/%d/similar", kind, id), pageParams(page), kind)
}

// Discover browses with filters. Movies filter by primary release year,
// shows by first air year; keyword filters apply to shows only.
func (c *Client) Discover(ctx context.Context, kind model.MediaType, f model.DiscoverFilter) (*model.CatalogPage, error) {
	v := pageParams(max(f.Page, 1))
	v.Set("sort_by", f.SortBy)
	if f.Year > 0 {
		if kind == model.MediaTV {
			v.Set("first_air_date_year", strconv.Itoa(f.Year))
		} else {
			v.Set("primary_release_year", strconv.Itoa(f.Year))
		}
	}
	if f.MinRating > 0 {
		v.Set("vote_average.gte", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.GenreID > 0 {
		v.Set("with_genres", strconv.Itoa(f.GenreID))
	}
	if kind == model.MediaTV {
		if f.Keywords != "" {
			v.Set("with_keywords", f.Keywords)
		}
		if f.WithoutGenres != "" {
			v.Set("without_genres", f.WithoutGenres)
		}
	}
	return c.page(ctx, "/discover/"+string(kind), v, kind)
}

// Details returns a title's detail record.
func (c *Client) Details(ctx context.Context, kind model.MediaType, id int) (*model.CatalogDetails, error) {
	body, err := c.get(ctx, fmt.Sprintf("/%s/%d", kind, id), nil)
	if err != nil {
		return nil, err
	}

	var raw tmdbDetails
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode details: %v", apperr.ErrUpstreamUnavailable, err)
	}
	item, _ := c.toItem(raw.tmdbItem, kind)
	item.MediaType = kind

	d := &model.CatalogDetails{
		CatalogItem: item,
		Runtime:     raw.Runtime,
		Genres:      raw.Genres,
		Tagline:     raw.Tagline,
		Status:      raw.Status,
	}
	if d.Runtime == 0 && len(raw.EpisodeRunTime) > 0 {
		d.Runtime = raw.EpisodeRunTime[0]
	}
	return d, nil
}

// Genres lists the genres for kind.
func (c *Client) Genres(ctx context.Context, kind model.MediaType) ([]model.Genre, error) {
	body, err := c.get(ctx, "/genre/"+string(kind)+"/list", nil)
	if err != nil {
		return nil, err
	}
	var raw struct {
		Genres []model.Genre `json:"genres"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode genres: %v", apperr.ErrUpstreamUnavailable, err)
	}
	return raw.Genres, nil
}
