package alphabet

import (
	"testing"

	"github.com/coregx/outlines-go/internal/primitives"
)

func TestFromGroupsAndGet(t *testing.T) {
	a := FromGroups([][]Symbol{{"a", "b"}, {"c"}})

	if a.Get("a") != a.Get("b") {
		t.Error("expected 'a' and 'b' to share a transition key")
	}
	if a.Get("a") == a.Get("c") {
		t.Error("expected 'a' and 'c' to have distinct transition keys")
	}
	if a.Get("z") != primitives.AnythingElse {
		t.Errorf("expected an unclassified symbol to map to AnythingElse, got %v", a.Get("z"))
	}
	if !a.Contains("a") || a.Contains("z") {
		t.Error("Contains disagrees with Get's classification")
	}
	if a.Size() != 2 {
		t.Errorf("expected 2 explicit keys, got %d", a.Size())
	}
}

func TestKeysIncludesAnythingElseLast(t *testing.T) {
	a := FromGroups([][]Symbol{{"a"}, {"b"}})
	keys := a.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 2 explicit keys + AnythingElse, got %d", len(keys))
	}
	if keys[len(keys)-1] != primitives.AnythingElse {
		t.Errorf("expected AnythingElse last, got %v", keys)
	}
}

func TestUnionProducesCoarsestCommonAlphabet(t *testing.T) {
	// a1 distinguishes {a,b} from {c}; a2 distinguishes {a} from {b,c}.
	a1 := FromGroups([][]Symbol{{"a", "b"}, {"c"}})
	a2 := FromGroups([][]Symbol{{"a"}, {"b", "c"}})

	unified, inv := Union([]*Alphabet{a1, a2})

	if len(inv) != 2 {
		t.Fatalf("expected one inverse table per input, got %d", len(inv))
	}

	// a and b must now be split, since a2 told them apart.
	if unified.Get("a") == unified.Get("b") {
		t.Error("expected 'a' and 'b' to be split in the unified alphabet")
	}
	// b and c must also be split, since a1 told them apart.
	if unified.Get("b") == unified.Get("c") {
		t.Error("expected 'b' and 'c' to be split in the unified alphabet")
	}

	// The inverse table must decompose each unified key back to the
	// originating input's own key for that symbol.
	for _, sym := range []Symbol{"a", "b", "c"} {
		uk := unified.Get(sym)
		if got := inv[0][uk]; got != a1.Get(sym) {
			t.Errorf("inv[0] for %q (unified key %v): got %v, want %v", sym, uk, got, a1.Get(sym))
		}
		if got := inv[1][uk]; got != a2.Get(sym) {
			t.Errorf("inv[1] for %q (unified key %v): got %v, want %v", sym, uk, got, a2.Get(sym))
		}
	}
}

func TestUnionHandlesAnythingElseConsistently(t *testing.T) {
	a1 := FromGroups([][]Symbol{{"a"}})
	a2 := FromGroups([][]Symbol{{"b"}})

	unified, inv := Union([]*Alphabet{a1, a2})

	// 'z' is AnythingElse in both inputs; its unified key must decompose
	// back to AnythingElse for both inputs.
	uk := unified.Get("z")
	if got := inv[0][uk]; got != primitives.AnythingElse {
		t.Errorf("inv[0] for the shared-AnythingElse unified key: got %v, want AnythingElse", got)
	}
	if got := inv[1][uk]; got != primitives.AnythingElse {
		t.Errorf("inv[1] for the shared-AnythingElse unified key: got %v, want AnythingElse", got)
	}

	// 'b' is explicit in a2 but AnythingElse in a1; its unified key must
	// decompose to AnythingElse for a1 specifically, not to whatever key
	// happens to also be AnythingElse-derived elsewhere.
	ukB := unified.Get("b")
	if got := inv[0][ukB]; got != primitives.AnythingElse {
		t.Errorf("inv[0] for 'b' (a1 has no explicit class for it): got %v, want AnythingElse", got)
	}
	if got := inv[1][ukB]; got != a2.Get("b") {
		t.Errorf("inv[1] for 'b': got %v, want %v", got, a2.Get("b"))
	}
	if ukB == uk {
		t.Error("expected 'b' and the wholly-unclassified 'z' to land in distinct unified classes")
	}
}
