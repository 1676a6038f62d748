package model

// CatalogItem is a search or browse result from the external catalog.
type CatalogItem struct {
	TMDBID       int       `json:"tmdbId"`
	MediaType    MediaType `json:"mediaType"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview,omitempty"`
	PosterPath   string    `json:"posterPath,omitempty"`
	BackdropPath string    `json:"backdropPath,omitempty"`
	PosterURL    string    `json:"posterUrl,omitempty"`
	BackdropURL  string    `json:"backdropUrl,omitempty"`
	ReleaseDate  string    `json:"releaseDate,omitempty"`
	VoteAverage  float64   `json:"voteAverage"`
	GenreIDs     []int     `json:"genreIds,omitempty"`
	Slug         string    `json:"slug"`
}

// Key returns the natural key of the item.
func (i CatalogItem) Key() ContentKey {
	return ContentKey{TMDBID: i.TMDBID, MediaType: i.MediaType}
}

// CatalogPage is one page of catalog results.
type CatalogPage struct {
	Page         int           `json:"page"`
	TotalPages   int           `json:"totalPages"`
	TotalResults int           `json:"totalResults"`
	Results      []CatalogItem `json:"results"`
}

// CatalogDetails is the detail record of a single catalog item.
type CatalogDetails struct {
	CatalogItem
	Runtime int     `json:"runtime,omitempty"`
	Genres  []Genre `json:"genres,omitempty"`
	Tagline string  `json:"tagline,omitempty"`
	Status  string  `json:"status,omitempty"`
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DiscoverFilter narrows a discover query.
type DiscoverFilter struct {
	Year          int     `query:"year" validate:"omitempty,min=1870,max=2100"`
	MinRating     float64 `query:"minRating" validate:"omitempty,min=0,max=10"`
	GenreID       int     `query:"genre" validate:"omitempty,gt=0"`
	SortBy        string  `query:"sortBy" validate:"omitempty,max=40"`
	Keywords      string  `query:"keywords" validate:"omitempty,max=200"`
	WithoutGenres string  `query:"withoutGenres" validate:"omitempty,max=200"`
	Page          int     `query:"page" validate:"omitempty,min=1,max=500"`
}

// EnrichedItem is a catalog item with local stats and viewer flags.
type EnrichedItem struct {
	CatalogItem
	Stats       ContentStats `json:"stats"`
	WatchedByMe bool         `json:"watchedByMe"`
	MyScore     *int         `json:"myScore,omitempty"`
}

// EnrichedDetails is a detail record with local stats and viewer state.
type EnrichedDetails struct {
	CatalogDetails
	Stats       ContentStats `json:"stats"`
	WatchedByMe bool         `json:"watchedByMe"`
	MyRating    *Rating      `json:"myRating,omitempty"`
}
