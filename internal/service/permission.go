package service

import "github.com/mathieu-neron/cineshelf/internal/apperr"

// CanDeleteComment reports whether actorID may delete a comment written by
// authorID on a list owned by ownerID: the author and the list owner may.
func CanDeleteComment(actorID, authorID, ownerID int64) bool {
	return actorID == authorID || actorID == ownerID
}

// CanModifyList reports whether actorID may change the contents of a list owned by ownerID.
func CanModifyList(actorID, ownerID int64) bool {
	return actorID == ownerID
}

// CanViewList reports whether viewerID (0 for anonymous) may read a list.
func CanViewList(viewerID, ownerID int64, isPublic bool) bool {
	return isPublic || (viewerID != 0 && viewerID == ownerID)
}

func commentDeleteGuard(actorID int64) func(authorID, ownerID int64) error {
	return func(authorID, ownerID int64) error {
		if !CanDeleteComment(actorID, authorID, ownerID) {
			return apperr.Forbidden("Not allowed to delete this comment")
		}
		return nil
	}
}

func listViewGuard(viewerID int64) func(ownerID int64, isPublic bool) error {
	return func(ownerID int64, isPublic bool) error {
		if !CanViewList(viewerID, ownerID, isPublic) {
			return apperr.NotFound("List")
		}
		return nil
	}
}

func listModifyGuard(actorID int64) func(ownerID int64) error {
	return func(ownerID int64) error {
		if !CanModifyList(actorID, ownerID) {
			return apperr.Forbidden("Not allowed to modify this list")
		}
		return nil
	}
}
