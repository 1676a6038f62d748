package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

// Each fake embeds its interface so unexercised methods panic if reached.

type fakeUsers struct {
	userStore
	byName map[string]*model.User
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.byName[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) Members(_ context.Context, _ string, order model.MemberOrder, _ int) ([]model.Member, error) {
	return []model.Member{{Username: string(order)}}, nil
}

type fakeLists struct {
	listStore
	lists      map[int64]*model.List
	items      map[int64][]model.ListItem
	created    int
	nameLookup []string
	itemLimits []int
}

func (f *fakeLists) Create(_ context.Context, userID int64, name, description string, isPublic bool) (*model.List, error) {
	f.created++
	return &model.List{ID: int64(100 + f.created), UserID: userID, Name: name, Description: description, IsPublic: isPublic}, nil
}

func (f *fakeLists) GetByID(_ context.Context, id int64) (*model.List, error) {
	if l, ok := f.lists[id]; ok {
		return l, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLists) ByOwnerAndName(_ context.Context, ownerID int64, name string) (*model.List, error) {
	f.nameLookup = append(f.nameLookup, name)
	for _, l := range f.lists {
		if l.UserID == ownerID && strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLists) Owns(_ context.Context, userID, listID int64) (bool, error) {
	l, ok := f.lists[listID]
	return ok && l.UserID == userID, nil
}

// Items records the requested limit; nil is recorded as -1.
func (f *fakeLists) Items(_ context.Context, listID int64, limit *int) ([]model.ListItem, error) {
	items := append([]model.ListItem{}, f.items[listID]...)
	if limit == nil {
		f.itemLimits = append(f.itemLimits, -1)
		return items, nil
	}
	f.itemLimits = append(f.itemLimits, *limit)
	if len(items) > *limit {
		items = items[:*limit]
	}
	return items, nil
}

func (f *fakeLists) ItemCounts(_ context.Context, listID int64) (model.ListItemCounts, error) {
	var c model.ListItemCounts
	for _, it := range f.items[listID] {
		c.Total++
		if it.Content.MediaType == model.MediaTV {
			c.Shows++
		} else {
			c.Movies++
		}
	}
	return c, nil
}

func (f *fakeLists) ForUser(_ context.Context, userID int64, publicOnly bool) ([]model.List, error) {
	out := []model.List{}
	for id := int64(0); id < 100; id++ {
		if l, ok := f.lists[id]; ok && l.UserID == userID && (l.IsPublic || !publicOnly) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLists) Popular(_ context.Context, limit int) ([]model.ListSummary, error) {
	out := []model.ListSummary{}
	for id := int64(0); id < 100 && len(out) < limit; id++ {
		if l, ok := f.lists[id]; ok && l.IsPublic {
			out = append(out, model.ListSummary{List: *l})
		}
	}
	return out, nil
}

func (f *fakeLists) HasLiked(context.Context, int64, int64) (bool, error) {
	return true, nil
}

func (f *fakeLists) AddItem(_ context.Context, listID int64, ref model.ContentRef, authorize func(ownerID int64) error) (*model.ListItem, error) {
	l, ok := f.lists[listID]
	if !ok {
		return nil, apperr.NotFound("List")
	}
	if err := authorize(l.UserID); err != nil {
		return nil, err
	}
	return &model.ListItem{ListID: listID}, nil
}

// fakeComments runs the delete guard the way the repository transaction does.
type fakeComments struct {
	commentStore
	authorID, ownerID, listID int64
	deleted                   bool
	added                     []string
}

func (f *fakeComments) Delete(_ context.Context, _ int64, authorize func(authorID, ownerID int64) error) (*model.DeleteCommentResult, error) {
	if err := authorize(f.authorID, f.ownerID); err != nil {
		return nil, err
	}
	f.deleted = true
	return &model.DeleteCommentResult{Deleted: true, ListID: f.listID}, nil
}

func (f *fakeComments) Add(_ context.Context, authorID, listID int64, text string) (*model.CommentResult, error) {
	f.added = append(f.added, text)
	return &model.CommentResult{Comment: model.Comment{UserID: authorID, ListID: listID, Text: text}, CommentsCount: len(f.added)}, nil
}

type fakeFollows struct {
	followStore
	counters  model.FollowCounters
	following bool
}

func (f *fakeFollows) Counters(context.Context, int64) (model.FollowCounters, error) {
	return f.counters, nil
}

func (f *fakeFollows) IsFollowing(context.Context, int64, int64) (bool, error) {
	return f.following, nil
}

type fakeToggles struct {
	engagementStore
	calls int
	lists map[int64]*model.List
	likes map[[2]int64]bool
}

func (f *fakeToggles) ToggleListLike(_ context.Context, userID, listID int64, authorize func(ownerID int64, isPublic bool) error) (model.ToggleResult, error) {
	l, ok := f.lists[listID]
	if !ok {
		return model.ToggleResult{}, apperr.NotFound("List")
	}
	if err := authorize(l.UserID, l.IsPublic); err != nil {
		return model.ToggleResult{}, err
	}
	if f.likes == nil {
		f.likes = map[[2]int64]bool{}
	}
	k := [2]int64{userID, listID}
	f.likes[k] = !f.likes[k]
	if f.likes[k] {
		l.LikesCount++
	} else {
		l.LikesCount--
	}
	return model.ToggleResult{Active: f.likes[k], Count: l.LikesCount}, nil
}

func (f *fakeToggles) ToggleFollow(context.Context, int64, int64) (model.ToggleResult, error) {
	f.calls++
	return model.ToggleResult{Active: f.calls%2 == 1, Count: f.calls % 2}, nil
}

type fakeSettings struct {
	values map[int64]map[string]string
}

func (f *fakeSettings) Get(_ context.Context, userID int64) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.values[userID] {
		out[k] = v
	}
	return out, nil
}

func (f *fakeSettings) Set(_ context.Context, userID int64, values map[string]string) error {
	if f.values == nil {
		f.values = map[int64]map[string]string{}
	}
	if f.values[userID] == nil {
		f.values[userID] = map[string]string{}
	}
	for k, v := range values {
		f.values[userID][k] = v
	}
	return nil
}

type fakeContent struct {
	contentStore
	stats    map[model.ContentKey]model.ContentStats
	resolved []model.ContentRef
}

func (f *fakeContent) ResolveOrCreate(_ context.Context, ref model.ContentRef) (int64, error) {
	f.resolved = append(f.resolved, ref)
	return int64(len(f.resolved)), nil
}

func (f *fakeContent) StatsFor(_ context.Context, keys []model.ContentKey) (map[model.ContentKey]model.ContentStats, error) {
	out := make(map[model.ContentKey]model.ContentStats, len(keys))
	for _, k := range keys {
		if st, ok := f.stats[k]; ok {
			out[k] = st
		}
	}
	return out, nil
}
