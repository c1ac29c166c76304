package repository

import (
	"errors"
	"fmt"
	"testing"
)

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{Remaining: 3}
	if err.Error() != "only 3 seats available" {
		t.Errorf("message = %q", err.Error())
	}

	// Handlers unwrap via errors.As to recover the remaining count.
	wrapped := fmt.Errorf("reserve: %w", err)
	var capErr *CapacityError
	if !errors.As(wrapped, &capErr) {
		t.Fatal("errors.As failed to match CapacityError")
	}
	if capErr.Remaining != 3 {
		t.Errorf("Remaining = %d, want 3", capErr.Remaining)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'x' for key 'uq'")) {
		t.Error("mysql 1062 error not detected")
	}
	if isDuplicateKey(errors.New("Error 1452: foreign key constraint fails")) {
		t.Error("non-duplicate error detected as duplicate")
	}
	if isDuplicateKey(nil) {
		t.Error("nil error detected as duplicate")
	}
}
