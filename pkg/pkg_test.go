package pkg

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "inox"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	// Version is embedded from the VERSION file next to this source file.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain ardnew")
	}
}

func TestErrorWrapMatchesSentinel(t *testing.T) {
	cause := errors.New("no such file")
	err := ErrLoadRules.Wrap(cause)

	if !errors.Is(err, ErrLoadRules) {
		t.Error("wrapped error should match its sentinel")
	}

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}

	if errors.Is(err, ErrJournal) {
		t.Error("wrapped error should not match an unrelated sentinel")
	}

	if got, want := err.Error(), "failed to load rules: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	// Wrapping must not mutate the sentinel.
	if len(ErrLoadRules) != 1 {
		t.Errorf("sentinel mutated: %v", ErrLoadRules)
	}
}

func TestUnwrapErrorsOrder(t *testing.T) {
	inner := errors.New("inner")
	outer := errors.Join(inner)

	chain := UnwrapErrors(outer)
	if len(chain) != 2 || chain[0] != inner {
		t.Errorf("expected innermost first, got %v", chain)
	}
}
