package utils

import (
	"regexp"
	"strings"
	"testing"
)

var referenceFormat = regexp.MustCompile(`^ES-[0-9A-Z]+-[0-9A-Z]{5}$`)

func TestNewBookingReferenceFormat(t *testing.T) {
	ref, err := NewBookingReference()
	if err != nil {
		t.Fatalf("NewBookingReference: %v", err)
	}
	if !referenceFormat.MatchString(ref) {
		t.Errorf("reference %q does not match ES-<base36 ts>-<5 base36> format", ref)
	}
	if ref != strings.ToUpper(ref) {
		t.Errorf("reference %q is not upper-cased", ref)
	}
}

func TestNewBookingReferenceUniqueness(t *testing.T) {
	// The random suffix should keep same-millisecond generations distinct.
	// The unique index is the real guarantee; this catches a broken RNG.
	const n = 2000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		ref, err := NewBookingReference()
		if err != nil {
			t.Fatalf("NewBookingReference: %v", err)
		}
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference generated: %q", ref)
		}
		seen[ref] = struct{}{}
	}
}

func TestRandomBase36Alphabet(t *testing.T) {
	s, err := randomBase36(64)
	if err != nil {
		t.Fatalf("randomBase36: %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("expected 64 chars, got %d", len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(base36Alphabet, r) {
			t.Errorf("character %q outside base36 alphabet", r)
		}
	}
}
