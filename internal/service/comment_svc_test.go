package service

import (
	"context"
	"testing"

	"github.com/mathieu-neron/cineshelf/internal/apperr"
)

func TestCommentService_Delete(t *testing.T) {
	const author, owner, stranger = 5, 1, 7
	tests := []struct {
		name        string
		actor       int64
		wantDeleted bool
		wantErr     func(error) bool
	}{
		{"author deletes", author, true, nil},
		{"list owner deletes", owner, true, nil},
		{"stranger denied", stranger, false, apperr.IsPermission},
		{"anonymous rejected", 0, false, apperr.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeComments{authorID: author, ownerID: owner, listID: 10}
			lists, _ := newListFixture()
			svc := NewCommentService(store, lists)

			res, err := svc.Delete(context.Background(), tt.actor, 42)
			if tt.wantErr != nil {
				if !tt.wantErr(err) {
					t.Fatalf("err = %v", err)
				}
			} else if err != nil || !res.Deleted || res.ListID != 10 {
				t.Fatalf("res = %+v, err = %v", res, err)
			}
			if store.deleted != tt.wantDeleted {
				t.Errorf("deleted = %v, want %v", store.deleted, tt.wantDeleted)
			}
		})
	}
}

func TestCommentService_Add(t *testing.T) {
	lists, _ := newListFixture()
	store := &fakeComments{}
	svc := NewCommentService(store, lists)
	ctx := context.Background()

	res, err := svc.Add(ctx, 2, 10, "  nice picks  ")
	if err != nil {
		t.Fatal(err)
	}
	if res.Comment.Text != "nice picks" || res.CommentsCount != 1 {
		t.Errorf("res = %+v", res)
	}

	if _, err := svc.Add(ctx, 2, 10, "   "); !apperr.IsValidation(err) {
		t.Errorf("blank: err = %v", err)
	}
	// Private lists are invisible to non-owners, so commenting reports not found.
	if _, err := svc.Add(ctx, 2, 11, "hi"); !apperr.IsNotFound(err) {
		t.Errorf("private list: err = %v", err)
	}
	if len(store.added) != 1 {
		t.Errorf("store received %d comments, want 1", len(store.added))
	}
}
