package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

func TestContentService_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		ref       model.ContentRef
		wantField string
		wantRef   model.ContentRef
	}{
		{"movie", model.ContentRef{TMDBID: 603, MediaType: "movie", Title: "The Matrix"}, "",
			model.ContentRef{TMDBID: 603, MediaType: model.MediaMovie, Title: "The Matrix"}},
		{"title trimmed", model.ContentRef{TMDBID: 1399, MediaType: "tv", Title: "  Game of Thrones "}, "",
			model.ContentRef{TMDBID: 1399, MediaType: model.MediaTV, Title: "Game of Thrones"}},
		{"missing media kind is movie", model.ContentRef{TMDBID: 27205, Title: "Inception"}, "",
			model.ContentRef{TMDBID: 27205, MediaType: model.MediaMovie, Title: "Inception"}},
		{"zero id", model.ContentRef{TMDBID: 0, MediaType: "movie", Title: "x"}, "tmdbId", model.ContentRef{}},
		{"id beyond column range", model.ContentRef{TMDBID: model.MaxTMDBID + 1, MediaType: "movie", Title: "x"}, "tmdbId", model.ContentRef{}},
		{"unknown media kind", model.ContentRef{TMDBID: 1, MediaType: "book", Title: "x"}, "mediaType", model.ContentRef{}},
		{"blank title", model.ContentRef{TMDBID: 1, MediaType: "movie", Title: "   "}, "title", model.ContentRef{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeContent{}
			svc := NewContentService(store, nil, zerolog.Nop())
			id, err := svc.Resolve(context.Background(), tt.ref)
			if tt.wantField != "" {
				var ve *apperr.ValidationError
				if !errors.As(err, &ve) || ve.Field != tt.wantField {
					t.Fatalf("err = %v, want validation on %s", err, tt.wantField)
				}
				if len(store.resolved) != 0 {
					t.Errorf("store reached with invalid ref %+v", store.resolved)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != 1 || len(store.resolved) != 1 || store.resolved[0] != tt.wantRef {
				t.Errorf("id = %d, stored = %+v, want %+v", id, store.resolved, tt.wantRef)
			}
		})
	}
}
