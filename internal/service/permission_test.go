package service

import (
	"testing"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
)

func TestCanDeleteComment(t *testing.T) {
	const author, owner, stranger = 1, 2, 3
	tests := []struct {
		name  string
		actor int64
		want  bool
	}{
		{"author", author, true},
		{"list owner", owner, true},
		{"stranger", stranger, false},
		{"anonymous", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDeleteComment(tt.actor, author, owner); got != tt.want {
				t.Errorf("CanDeleteComment(%d) = %v, want %v", tt.actor, got, tt.want)
			}
		})
	}
}

func TestCanDeleteComment_OwnerIsAuthor(t *testing.T) {
	if !CanDeleteComment(5, 5, 5) {
		t.Error("owner commenting on own list should be able to delete")
	}
	if CanDeleteComment(6, 5, 5) {
		t.Error("other user should not delete")
	}
}

func TestCanViewList(t *testing.T) {
	tests := []struct {
		name     string
		viewer   int64
		isPublic bool
		want     bool
	}{
		{"public anonymous", 0, true, true},
		{"public stranger", 9, true, true},
		{"private owner", 1, false, true},
		{"private stranger", 9, false, false},
		{"private anonymous", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewList(tt.viewer, 1, tt.isPublic); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuards(t *testing.T) {
	if err := commentDeleteGuard(3)(1, 2); !apperr.IsPermission(err) {
		t.Errorf("comment guard: err = %v, want permission", err)
	}
	if err := commentDeleteGuard(2)(1, 2); err != nil {
		t.Errorf("comment guard owner: err = %v", err)
	}
	if err := listModifyGuard(3)(2); !apperr.IsPermission(err) {
		t.Errorf("list guard: err = %v, want permission", err)
	}
	if err := listModifyGuard(2)(2); err != nil {
		t.Errorf("list guard owner: err = %v", err)
	}
}
