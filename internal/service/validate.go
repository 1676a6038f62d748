package service

import (
	"strings"
	"unicode/utf8"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

// ValidateListName trims name and checks it is non-empty and within the column limit.
func ValidateListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("name", "List name is required")
	}
	if utf8.RuneCountInString(name) > model.MaxListNameLen {
		return "", apperr.Validation("name", "List name must be 200 characters or fewer")
	}
	return name, nil
}

// ValidateScore checks score lies within the rating scale.
func ValidateScore(score int) error {
	if score < model.MinScore || score > model.MaxScore {
		return apperr.Validation("score", "Score must be between 0 and 100")
	}
	return nil
}

// ValidateContentRef normalizes and checks a catalog reference.
func ValidateContentRef(ref model.ContentRef) (model.ContentRef, error) {
	if err := validTMDBID(ref.TMDBID); err != nil {
		return ref, err
	}
	mt, ok := model.ParseMediaType(string(ref.MediaType))
	if !ok {
		return ref, apperr.Validation("mediaType", "mediaType must be movie or tv")
	}
	ref.MediaType = mt
	ref.Title = strings.TrimSpace(ref.Title)
	if ref.Title == "" {
		return ref, apperr.Validation("title", "title is required")
	}
	return ref, nil
}

// ValidateContentKey checks a natural key.
func ValidateContentKey(key model.ContentKey) (model.ContentKey, error) {
	if err := validTMDBID(key.TMDBID); err != nil {
		return key, err
	}
	if !key.MediaType.Valid() {
		return key, apperr.Validation("mediaType", "mediaType must be movie or tv")
	}
	return key, nil
}

func validTMDBID(id int) error {
	if id <= 0 || id > model.MaxTMDBID {
		return apperr.Validation("tmdbId", "tmdbId must be a positive 32-bit integer")
	}
	return nil
}

// NormalizeComment trims text and rejects empty comments.
func NormalizeComment(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.Validation("text", "Comment cannot be empty")
	}
	return text, nil
}

// normalizeReview maps blank review text to no review.
func normalizeReview(review *string) *string {
	if review == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*review)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
