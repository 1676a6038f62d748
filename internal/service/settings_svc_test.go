package service

import (
	"context"
	"testing"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
	"github.com/mathieu-neron/cineshelf/internal/model"
)

func TestParseBoolSetting(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true}, {"true", true}, {"TRUE", true}, {"yes", true}, {" on ", true},
		{"0", false}, {"false", false}, {"no", false}, {"", false}, {"2", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseBoolSetting(tt.in); got != tt.want {
				t.Errorf("ParseBoolSetting(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSettingsService_Update(t *testing.T) {
	store := &fakeSettings{}
	svc := NewSettingsService(store)
	ctx := context.Background()
	yes, no := true, false

	got, err := svc.Get(ctx, 1)
	if err != nil || got != (model.ProfileSettings{}) {
		t.Fatalf("defaults = %+v, %v", got, err)
	}

	got, err = svc.Update(ctx, 1, model.SettingsRequest{HideFullname: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if !got.HideFullname || got.HideFollowStats {
		t.Errorf("after first update = %+v", got)
	}
	if store.values[1][SettingHideFullname] != "1" {
		t.Errorf("stored value = %q, want 1", store.values[1][SettingHideFullname])
	}

	// Omitted keys are left untouched.
	got, err = svc.Update(ctx, 1, model.SettingsRequest{HideFollowStats: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if !got.HideFullname || !got.HideFollowStats {
		t.Errorf("after second update = %+v", got)
	}

	got, _ = svc.Update(ctx, 1, model.SettingsRequest{HideFullname: &no})
	if got.HideFullname {
		t.Error("hide_fullname should be cleared")
	}

	if _, err := svc.Update(ctx, 0, model.SettingsRequest{HideFullname: &yes}); !apperr.IsValidation(err) {
		t.Errorf("anonymous update: err = %v", err)
	}
}
