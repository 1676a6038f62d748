package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
	"github.com/mathieu-neron/cineshelf/pkg/slug"
)

const (
	PopularListsLimit    = 12
	TopListsLimit        = 6
	SearchListsPageSize  = 24
	RecentListItemsLimit = 5
)

type ListService struct {
	lists listStore
	users userStore
}

func NewListService(lists listStore, users userStore) *ListService {
	return &ListService{lists: lists, users: users}
}

// ListDetail is a list with its owner, items and the viewer's like state.
type ListDetail struct {
	model.List
	Username  string               `json:"username"`
	Slug      string               `json:"slug"`
	Items     []model.ListItem     `json:"items"`
	Counts    model.ListItemCounts `json:"counts"`
	LikedByMe bool                 `json:"likedByMe"`
	IsOwner   bool                 `json:"isOwner"`
}

// Create makes a new list for ownerID.
func (s *ListService) Create(ctx context.Context, ownerID int64, name, description string, isPublic bool) (*model.List, error) {
	if err := requireActor(ownerID); err != nil {
		return nil, err
	}
	name, err := ValidateListName(name)
	if err != nil {
		return nil, err
	}
	return s.lists.Create(ctx, ownerID, name, strings.TrimSpace(description), isPublic)
}

// AddItem puts ref on listID. Only the list owner may add.
func (s *ListService) AddItem(ctx context.Context, actorID, listID int64, ref model.ContentRef) (*model.ListItem, error) {
	if err := requireActor(actorID); err != nil {
		return nil, err
	}
	if err := validID("listId", listID); err != nil {
		return nil, err
	}
	ref, err := ValidateContentRef(ref)
	if err != nil {
		return nil, err
	}
	return s.lists.AddItem(ctx, listID, ref, listModifyGuard(actorID))
}

// Owns reports whether userID owns listID. A missing list is owned by nobody.
func (s *ListService) Owns(ctx context.Context, userID, listID int64) (bool, error) {
	if userID <= 0 || listID <= 0 {
		return false, nil
	}
	return s.lists.Owns(ctx, userID, listID)
}

// ListsForUser returns username's list cards. Viewers other than the owner see public lists only.
func (s *ListService) ListsForUser(ctx context.Context, username string, viewerID int64) ([]model.ListSummary, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}
	lists, err := s.lists.ForUser(ctx, u.ID, u.ID != viewerID)
	if err != nil {
		return nil, err
	}
	cards := make([]model.ListSummary, len(lists))
	for i, l := range lists {
		cards[i] = model.ListSummary{List: l, Username: u.Username}
	}
	return s.withPreviews(ctx, cards)
}

// withPreviews attaches the latest items and the item split to each card.
func (s *ListService) withPreviews(ctx context.Context, cards []model.ListSummary) ([]model.ListSummary, error) {
	limit := RecentListItemsLimit
	for i := range cards {
		items, err := s.lists.Items(ctx, cards[i].ID, &limit)
		if err != nil {
			return nil, err
		}
		counts, err := s.lists.ItemCounts(ctx, cards[i].ID)
		if err != nil {
			return nil, err
		}
		cards[i].RecentItems = items
		cards[i].Counts = counts
	}
	return cards, nil
}

// Get returns a list visible to viewerID. Private lists of other users are reported as missing.
func (s *ListService) Get(ctx context.Context, listID, viewerID int64) (*model.List, error) {
	if err := validID("listId", listID); err != nil {
		return nil, err
	}
	l, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, notFoundIf(err, "List")
	}
	if !CanViewList(viewerID, l.UserID, l.IsPublic) {
		return nil, apperr.NotFound("List")
	}
	return l, nil
}

// GetBySlug resolves username's list from a URL slug. The slug is first
// matched as a name verbatim, then with hyphens read as spaces.
func (s *ListService) GetBySlug(ctx context.Context, username, listSlug string, viewerID int64) (*ListDetail, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}

	l, err := s.lists.ByOwnerAndName(ctx, u.ID, listSlug)
	if errors.Is(err, pgx.ErrNoRows) {
		l, err = s.lists.ByOwnerAndName(ctx, u.ID, slug.ListName(listSlug))
	}
	if err != nil {
		return nil, notFoundIf(err, "List")
	}
	if !CanViewList(viewerID, l.UserID, l.IsPublic) {
		return nil, apperr.NotFound("List")
	}

	return s.detail(ctx, l, u.Username, viewerID)
}

// Detail returns listID with its items as seen by viewerID.
func (s *ListService) Detail(ctx context.Context, listID, viewerID int64) (*ListDetail, error) {
	l, err := s.Get(ctx, listID, viewerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.FindByID(ctx, l.UserID)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}
	return s.detail(ctx, l, owner.Username, viewerID)
}

func (s *ListService) detail(ctx context.Context, l *model.List, username string, viewerID int64) (*ListDetail, error) {
	var err error
	d := &ListDetail{List: *l, Username: username, Slug: slug.List(l.Name), IsOwner: viewerID == l.UserID}
	if d.Items, err = s.lists.Items(ctx, l.ID, nil); err != nil {
		return nil, err
	}
	if d.Counts, err = s.lists.ItemCounts(ctx, l.ID); err != nil {
		return nil, err
	}
	if viewerID > 0 {
		if d.LikedByMe, err = s.lists.HasLiked(ctx, viewerID, l.ID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Items returns every item of a list visible to viewerID, newest first.
func (s *ListService) Items(ctx context.Context, listID, viewerID int64) ([]model.ListItem, error) {
	if _, err := s.Get(ctx, listID, viewerID); err != nil {
		return nil, err
	}
	return s.lists.Items(ctx, listID, nil)
}

// RecentItems returns the latest additions to a list; limit <= 0 means the default of 5.
func (s *ListService) RecentItems(ctx context.Context, listID, viewerID int64, limit int) ([]model.ListItem, error) {
	if _, err := s.Get(ctx, listID, viewerID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = RecentListItemsLimit
	}
	return s.lists.Items(ctx, listID, &limit)
}

// ItemCounts returns the movie and show split of a list.
func (s *ListService) ItemCounts(ctx context.Context, listID, viewerID int64) (model.ListItemCounts, error) {
	if _, err := s.Get(ctx, listID, viewerID); err != nil {
		return model.ListItemCounts{}, err
	}
	return s.lists.ItemCounts(ctx, listID)
}

// HasLiked reports whether userID likes listID.
func (s *ListService) HasLiked(ctx context.Context, userID, listID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	return s.lists.HasLiked(ctx, userID, listID)
}

// Popular returns the most liked public lists.
func (s *ListService) Popular(ctx context.Context) ([]model.ListSummary, error) {
	cards, err := s.lists.Popular(ctx, PopularListsLimit)
	if err != nil {
		return nil, err
	}
	return s.withPreviews(ctx, cards)
}

// TopByEngagement returns public lists ranked by likes plus comments.
func (s *ListService) TopByEngagement(ctx context.Context) ([]model.ListSummary, error) {
	cards, err := s.lists.TopByEngagement(ctx, TopListsLimit)
	if err != nil {
		return nil, err
	}
	return s.withPreviews(ctx, cards)
}

// Search finds lists matching query that viewerID may see. page starts at 1.
func (s *ListService) Search(ctx context.Context, query string, viewerID int64, page int) ([]model.ListSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.ListSummary{}, nil
	}
	if page < 1 {
		page = 1
	}
	cards, err := s.lists.Search(ctx, query, viewerID, SearchListsPageSize, (page-1)*SearchListsPageSize)
	if err != nil {
		return nil, err
	}
	return s.withPreviews(ctx, cards)
}
