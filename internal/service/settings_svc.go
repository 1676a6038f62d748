package service

import (
	"context"
	"strings"

	"github.com/mathieu-neron/cineshelf/internal/model"
)

const (
	SettingHideFullname    = "hide_fullname"
	SettingHideFollowStats = "hide_follow_stats"
)

type SettingsService struct {
	store settingsStore
}

func NewSettingsService(store settingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns userID's profile settings; unset keys are false.
func (s *SettingsService) Get(ctx context.Context, userID int64) (model.ProfileSettings, error) {
	raw, err := s.store.Get(ctx, userID)
	if err != nil {
		return model.ProfileSettings{}, err
	}
	return model.ProfileSettings{
		HideFullname:    ParseBoolSetting(raw[SettingHideFullname]),
		HideFollowStats: ParseBoolSetting(raw[SettingHideFollowStats]),
	}, nil
}

// Update stores the settings present in req and returns the full set.
func (s *SettingsService) Update(ctx context.Context, actorID int64, req model.SettingsRequest) (model.ProfileSettings, error) {
	if err := requireActor(actorID); err != nil {
		return model.ProfileSettings{}, err
	}
	values := make(map[string]string, 2)
	if req.HideFullname != nil {
		values[SettingHideFullname] = formatBoolSetting(*req.HideFullname)
	}
	if req.HideFollowStats != nil {
		values[SettingHideFollowStats] = formatBoolSetting(*req.HideFollowStats)
	}
	if len(values) > 0 {
		if err := s.store.Set(ctx, actorID, values); err != nil {
			return model.ProfileSettings{}, err
		}
	}
	return s.Get(ctx, actorID)
}

// ParseBoolSetting accepts 1, true, yes and on in any case.
func ParseBoolSetting(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func formatBoolSetting(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
