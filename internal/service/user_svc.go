package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

const MembersLimit = 50

type UserService struct {
	users    userStore
	follows  *FollowService
	settings *SettingsService
}

func NewUserService(users userStore, follows *FollowService, settings *SettingsService) *UserService {
	return &UserService{users: users, follows: follows, settings: settings}
}

// Profile returns username's public profile as seen by viewerID. Hidden
// fields are withheld from everyone but the user themself.
func (s *UserService) Profile(ctx context.Context, username string, viewerID int64) (*model.Profile, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFoundIf(err, "User")
	}

	settings, err := s.settings.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	p := &model.Profile{
		ID:       u.ID,
		Username: u.Username,
		IsSelf:   viewerID == u.ID,
		Settings: settings,
	}
	if len(u.Pfp) > 0 {
		p.PfpBase64 = base64.StdEncoding.EncodeToString(u.Pfp)
	}
	if p.IsSelf || !settings.HideFullname {
		p.Firstname, p.Lastname = u.Firstname, u.Lastname
	}
	if p.IsSelf || !settings.HideFollowStats {
		st, err := s.follows.Stats(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		p.FollowStats = &st
	}
	if p.IsFollowing, err = s.follows.IsFollowing(ctx, viewerID, u.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// Members ranks users for the directory; an empty order means popular.
func (s *UserService) Members(ctx context.Context, query string, order model.MemberOrder) ([]model.Member, error) {
	if order == "" {
		order = model.MembersPopular
	}
	switch order {
	case model.MembersPopular, model.MembersThisWeek, model.MembersPositive, model.MembersNegative:
	default:
		return nil, apperr.Validation("order", "order must be one of popular, week, positive, negative")
	}
	return s.users.Members(ctx, strings.TrimSpace(query), order, MembersLimit)
}

// GetStats returns site-wide totals.
func (s *UserService) GetStats(ctx context.Context) (*model.SiteStats, error) {
	return s.users.GetStats(ctx)
}
