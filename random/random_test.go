package random

import (
	"strings"
	"testing"
)

func TestStringSecure(t *testing.T) {
	a, err := StringSecure(48)
	if err != nil {
		t.Fatal(err)
	}
	b, err := StringSecure(48)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != 48 {
		t.Fatalf("expected 48 characters, got %d", len(a))
	}
	if a == b {
		t.Fatal("two secure strings should not collide")
	}
	for _, c := range a {
		if !strings.ContainsRune(charset, c) {
			t.Fatalf("unexpected character %q", c)
		}
	}
}
