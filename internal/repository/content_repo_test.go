package repository

import (
	"slices"
	"testing"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

func TestSplitKeys_DropsOutOfRangeIDs(t *testing.T) {
	keys := []model.ContentKey{
		{TMDBID: 603, MediaType: model.MediaMovie},
		{TMDBID: model.MaxTMDBID + 1, MediaType: model.MediaMovie},
		{TMDBID: 1399, MediaType: model.MediaTV},
		{TMDBID: 0, MediaType: model.MediaTV},
	}
	ids, kinds := splitKeys(keys)
	if !slices.Equal(ids, []int32{603, 1399}) {
		t.Errorf("ids = %v", ids)
	}
	if !slices.Equal(kinds, []string{"movie", "tv"}) {
		t.Errorf("kinds = %v", kinds)
	}
}
