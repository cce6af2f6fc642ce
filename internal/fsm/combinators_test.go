package fsm

import (
	"testing"

	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/primitives"
)

// lit builds a 2-state DFA over alph accepting exactly the one-character
// string sym.
func lit(alph *alphabet.Alphabet, sym alphabet.Symbol) *DFA {
	k := alph.Get(sym)
	return &DFA{
		Alphabet:  alph,
		NumStates: 2,
		Initial:   0,
		Finals:    map[primitives.State]struct{}{1: {}},
		Trans:     map[TransKey]primitives.State{{0, k}: 1},
	}
}

func threeSymAlphabet() *alphabet.Alphabet {
	return alphabet.FromGroups([][]alphabet.Symbol{{"a"}, {"b"}, {"c"}})
}

func TestUnion(t *testing.T) {
	alph := threeSymAlphabet()
	a, b := lit(alph, "a"), lit(alph, "b")
	u := Union(a, b)

	if !u.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" accepted`)
	}
	if !u.Accepts([]alphabet.Symbol{"b"}) {
		t.Error(`expected "b" accepted`)
	}
	if u.Accepts([]alphabet.Symbol{"c"}) {
		t.Error(`expected "c" rejected`)
	}
}

func TestIntersection(t *testing.T) {
	alph := threeSymAlphabet()
	a := lit(alph, "a")
	ab := Concatenate(lit(alph, "a"), lit(alph, "b"))

	inter := Intersection(a, ab)
	if inter.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" alone rejected (ab does not accept it)`)
	}
	if !inter.IsEmpty() {
		t.Error("expected the intersection of disjoint-length languages to be empty")
	}

	sameLang := Intersection(a, lit(alph, "a"))
	if !sameLang.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" accepted by the intersection of two copies of itself`)
	}
}

func TestDifference(t *testing.T) {
	alph := threeSymAlphabet()
	ab := Union(lit(alph, "a"), lit(alph, "b"))
	diff := Difference(ab, lit(alph, "a"))

	if diff.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" excluded from the difference`)
	}
	if !diff.Accepts([]alphabet.Symbol{"b"}) {
		t.Error(`expected "b" to survive the difference`)
	}
}

func TestSymmetricDifference(t *testing.T) {
	alph := threeSymAlphabet()
	ab := Union(lit(alph, "a"), lit(alph, "b"))
	bc := Union(lit(alph, "b"), lit(alph, "c"))
	sd := SymmetricDifference(ab, bc)

	if !sd.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" (only in ab) accepted`)
	}
	if !sd.Accepts([]alphabet.Symbol{"c"}) {
		t.Error(`expected "c" (only in bc) accepted`)
	}
	if sd.Accepts([]alphabet.Symbol{"b"}) {
		t.Error(`expected "b" (in both) rejected`)
	}
}

func TestConcatenate(t *testing.T) {
	alph := threeSymAlphabet()
	c := Concatenate(lit(alph, "a"), lit(alph, "b"), lit(alph, "c"))

	if !c.Accepts([]alphabet.Symbol{"a", "b", "c"}) {
		t.Error(`expected "abc" accepted`)
	}
	if c.Accepts([]alphabet.Symbol{"a", "b"}) {
		t.Error(`expected "ab" (incomplete) rejected`)
	}
	if c.Accepts([]alphabet.Symbol{"a", "b", "c", "a"}) {
		t.Error(`expected "abca" rejected`)
	}
}

func TestConcatenateWithEpsilon(t *testing.T) {
	alph := threeSymAlphabet()
	c := Concatenate(Epsilon(alph), lit(alph, "a"), Epsilon(alph))
	if !c.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" still accepted when concatenated with Epsilon on both sides`)
	}
}

func TestStar(t *testing.T) {
	alph := threeSymAlphabet()
	star := Star(lit(alph, "a"))

	if !star.Accepts(nil) {
		t.Error("expected Star to accept the empty string")
	}
	if !star.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" accepted`)
	}
	if !star.Accepts([]alphabet.Symbol{"a", "a", "a"}) {
		t.Error(`expected "aaa" accepted`)
	}
	if star.Accepts([]alphabet.Symbol{"b"}) {
		t.Error(`expected "b" rejected`)
	}
}

func TestTimesExactCount(t *testing.T) {
	alph := threeSymAlphabet()
	times3 := Times(lit(alph, "a"), 3)

	if times3.Accepts([]alphabet.Symbol{"a", "a", "a"}) != true {
		t.Error(`expected "aaa" accepted for Times(a, 3)`)
	}
	if times3.Accepts([]alphabet.Symbol{"a", "a"}) {
		t.Error(`expected "aa" rejected for Times(a, 3)`)
	}
	if times3.Accepts([]alphabet.Symbol{"a", "a", "a", "a"}) {
		t.Error(`expected "aaaa" rejected for Times(a, 3)`)
	}
}

func TestTimesUnitAcceptsEmpty(t *testing.T) {
	alph := threeSymAlphabet()
	unit := withEmptyAccepted(lit(alph, "a"))
	times2 := Times(unit, 2)

	// A unit that can match empty means the exact-count constraint
	// collapses: zero repetitions is also accepted, per the fixed-point
	// behavior documented on Times.
	if !times2.Accepts(nil) {
		t.Error("expected the empty string to be accepted when the unit itself accepts empty")
	}
}

func withEmptyAccepted(d *DFA) *DFA {
	finals := make(map[primitives.State]struct{}, len(d.Finals)+1)
	for s := range d.Finals {
		finals[s] = struct{}{}
	}
	finals[d.Initial] = struct{}{}
	return &DFA{Alphabet: d.Alphabet, NumStates: d.NumStates, Initial: d.Initial, Finals: finals, Trans: d.Trans}
}

func TestEverythingBut(t *testing.T) {
	alph := threeSymAlphabet()
	a := lit(alph, "a")
	comp := EverythingBut(a)

	if comp.Accepts([]alphabet.Symbol{"a"}) {
		t.Error(`expected "a" rejected by the complement`)
	}
	if !comp.Accepts(nil) {
		t.Error("expected the empty string accepted by the complement (it is not \"a\")")
	}
	if !comp.Accepts([]alphabet.Symbol{"b"}) {
		t.Error(`expected "b" accepted by the complement`)
	}
	if !comp.Accepts([]alphabet.Symbol{"a", "a"}) {
		t.Error(`expected "aa" accepted by the complement`)
	}
}

func TestReverse(t *testing.T) {
	alph := threeSymAlphabet()
	abc := Concatenate(lit(alph, "a"), lit(alph, "b"), lit(alph, "c"))
	rev := Reverse(abc)

	if !rev.Accepts([]alphabet.Symbol{"c", "b", "a"}) {
		t.Error(`expected "cba" accepted by the reverse of "abc"`)
	}
	if rev.Accepts([]alphabet.Symbol{"a", "b", "c"}) {
		t.Error(`expected "abc" rejected by the reverse`)
	}
}

func TestReduceMinimizesWithoutChangingLanguage(t *testing.T) {
	alph := threeSymAlphabet()
	abc := Concatenate(lit(alph, "a"), lit(alph, "b"), lit(alph, "c"))
	reduced := Reduce(abc)

	if !reduced.Accepts([]alphabet.Symbol{"a", "b", "c"}) {
		t.Error(`expected "abc" still accepted after minimization`)
	}
	if reduced.Accepts([]alphabet.Symbol{"a", "b"}) {
		t.Error(`expected "ab" still rejected after minimization`)
	}
}

func TestStringsEnumeratesShortestFirst(t *testing.T) {
	alph := threeSymAlphabet()
	lang := Union(lit(alph, "a"), Concatenate(lit(alph, "a"), lit(alph, "b")))

	var results [][]alphabet.Symbol
	for s := range lang.Strings() {
		results = append(results, append([]alphabet.Symbol(nil), s...))
		if len(results) == 2 {
			break
		}
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 strings enumerated, got %d", len(results))
	}
	if len(results[0]) != 1 {
		t.Errorf("expected the shortest accepted string first, got %v", results[0])
	}
}
