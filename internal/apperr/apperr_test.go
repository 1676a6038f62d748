package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds_SurviveWrapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		permission bool
	}{
		{"validation", Validation("name", "List name is required"), true, false, false},
		{"not found", NotFound("Comment"), false, true, false},
		{"permission", Forbidden("Not allowed to delete this comment"), false, false, true},
		{"wrapped not found", fmt.Errorf("delete comment: %w", NotFound("List")), false, true, false},
		{"plain", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound = %v, want %v", got, tt.notFound)
			}
			if got := IsPermission(tt.err); got != tt.permission {
				t.Errorf("IsPermission = %v, want %v", got, tt.permission)
			}
		})
	}
}

func TestNotFound_Message(t *testing.T) {
	if got := NotFound("List").Error(); got != "List not found" {
		t.Errorf("message = %q, want %q", got, "List not found")
	}
}
