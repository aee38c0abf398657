package diagnostics

import (
	"strings"
	"testing"

	"github.com/Happy-Ferret/futhark/internal/token"
)

func TestErrorRendering(t *testing.T) {
	err := NewErrorf(ErrS001, token.At("foo", 3, 14), "unknown name %q", "foo")
	want := `3:14: [S001] unknown name "foo"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.IsInternal() {
		t.Errorf("S001 should not be internal")
	}
	if !NewError(ErrI001, token.Token{}, "boom").IsInternal() {
		t.Errorf("I001 should be internal")
	}
}

func TestWarningsSortedByPosition(t *testing.T) {
	w := NewWarnings()
	w.Add(token.At("b", 5, 1), "second")
	w.Add(token.At("a", 1, 8), "first")
	w.Add(token.At("c", 5, 1), "also second")
	w.Add(token.At("a", 1, 2), "zeroth")

	got := w.Sorted()
	if len(got) != 4 {
		t.Fatalf("expected 4 warnings, got %d", len(got))
	}
	order := []string{"zeroth", "first", "second", "also second"}
	for i, want := range order {
		if got[i].Message != want {
			t.Errorf("warning %d = %q, want %q", i, got[i].Message, want)
		}
	}
	// Accumulation is monotonic: sorting must not drop duplicates at
	// distinct locations.
	if w.Len() != 4 {
		t.Errorf("Len() = %d, want 4", w.Len())
	}
}

func TestFormatWithoutColor(t *testing.T) {
	e := NewError(ErrS005, token.At("m", 2, 3), "cannot use parameterized module here")
	s := FormatError(e, false)
	if strings.Contains(s, "\033[") {
		t.Errorf("color escape in plain output: %q", s)
	}
	if !strings.HasPrefix(s, "2:3: error:") {
		t.Errorf("unexpected prefix: %q", s)
	}

	internal := FormatError(NewError(ErrI001, token.Token{}, "incongruent types"), false)
	if !strings.Contains(internal, "internal error:") {
		t.Errorf("internal errors must be labeled distinctly: %q", internal)
	}

	warn := FormatWarning(Warning{Token: token.At("x", 1, 1), Message: "unused"}, true)
	if !strings.Contains(warn, "warning:") {
		t.Errorf("missing warning label: %q", warn)
	}
}
