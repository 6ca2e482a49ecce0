package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	plain := NotFound("skill %s not found", "demo")
	if plain.Error() != "skill demo not found" {
		t.Errorf("Error() = %q", plain.Error())
	}

	cause := errors.New("disk full")
	wrapped := IO("failed to write ledger", cause)
	if wrapped.Error() != "failed to write ledger: disk full" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestErrorIsMatchesKind(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{NotFound("missing"), ErrNotFound},
		{AlreadyExists("dup"), ErrAlreadyExists},
		{InvalidPath("bad"), ErrInvalidPath},
		{IO("io", nil), ErrIO},
		{Parse("parse", nil), ErrParse},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
		}
	}

	if errors.Is(NotFound("missing"), ErrAlreadyExists) {
		t.Error("kinds should not cross-match")
	}
}

func TestErrorIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading registry: %w", Parse("invalid manifest", nil))
	if !errors.Is(err, ErrParse) {
		t.Error("kind should survive fmt.Errorf wrapping")
	}
}
