package model

import (
	"math"
	"time"
)

// MaxTMDBID matches content.tmdb_id INTEGER.
const MaxTMDBID = math.MaxInt32

// MediaType is the catalog media kind.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// Valid reports whether m is a known media kind.
func (m MediaType) Valid() bool {
	return m == MediaMovie || m == MediaTV
}

// ParseMediaType maps a loose value to a MediaType. Empty input falls back to movie.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case "":
		return MediaMovie, true
	case MediaMovie, MediaTV:
		return MediaType(s), true
	}
	return "", false
}

// ContentKey is the natural key of a catalog item.
type ContentKey struct {
	TMDBID    int       `json:"tmdbId"`
	MediaType MediaType `json:"mediaType"`
}

// ContentRef carries the identity plus display metadata captured on first reference.
type ContentRef struct {
	TMDBID       int       `json:"tmdbId" validate:"required,gt=0,max=2147483647"`
	MediaType    MediaType `json:"mediaType" validate:"omitempty,oneof=movie tv"`
	Title        string    `json:"title" validate:"required,max=500"`
	PosterPath   string    `json:"posterPath,omitempty" validate:"max=255"`
	BackdropPath string    `json:"backdropPath,omitempty" validate:"max=255"`
	ReleaseDate  string    `json:"releaseDate,omitempty" validate:"max=32"`
}

// Key returns the natural key of the reference.
func (r ContentRef) Key() ContentKey {
	return ContentKey{TMDBID: r.TMDBID, MediaType: r.MediaType}
}

// Content is the local record for a catalog item.
type Content struct {
	ID           int64     `json:"id"`
	TMDBID       int       `json:"tmdbId"`
	MediaType    MediaType `json:"mediaType"`
	Title        string    `json:"title"`
	PosterPath   string    `json:"posterPath,omitempty"`
	BackdropPath string    `json:"backdropPath,omitempty"`
	ReleaseDate  string    `json:"releaseDate,omitempty"`
	ContentStats
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContentStats are the derived aggregates of a content record.
// AvgScore is nil when nobody has rated the item.
type ContentStats struct {
	WatchedCount int      `json:"watchedCount"`
	ListCount    int      `json:"listCount"`
	AvgScore     *float64 `json:"avgScore"`
	TotalScores  int      `json:"totalScores"`
}
