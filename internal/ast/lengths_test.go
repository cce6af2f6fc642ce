package ast

import "testing"

func TestLengthsLiteralAndCharGroup(t *testing.T) {
	min, max := Literal('a').Lengths()
	if min != 1 || max != 1 {
		t.Errorf("Literal: got (%d,%d), want (1,1)", min, max)
	}
	min, max = CharGroup(map[rune]struct{}{'a': {}}, false).Lengths()
	if min != 1 || max != 1 {
		t.Errorf("CharGroup: got (%d,%d), want (1,1)", min, max)
	}
}

func TestLengthsRepeated(t *testing.T) {
	unit := Literal('a')
	min, max := Repeated(unit, 2, 5).Lengths()
	if min != 2 || max != 5 {
		t.Errorf("Repeated{2,5}: got (%d,%d), want (2,5)", min, max)
	}
	min, max = Repeated(unit, 1, -1).Lengths()
	if min != 1 || max != -1 {
		t.Errorf("Repeated{1,}: got (%d,%d), want (1,-1)", min, max)
	}
}

func TestLengthsConcatenation(t *testing.T) {
	n := Concatenation([]*Node{Literal('a'), Repeated(Literal('b'), 1, 3)})
	min, max := n.Lengths()
	if min != 2 || max != 4 {
		t.Errorf("got (%d,%d), want (2,4)", min, max)
	}
}

func TestLengthsConcatenationUnboundedPropagates(t *testing.T) {
	n := Concatenation([]*Node{Literal('a'), Repeated(Literal('b'), 0, -1)})
	min, max := n.Lengths()
	if min != 1 || max != -1 {
		t.Errorf("got (%d,%d), want (1,-1)", min, max)
	}
}

func TestLengthsAlternation(t *testing.T) {
	n := Alternation([]*Node{
		Literal('a'),
		Repeated(Literal('b'), 2, 4),
	})
	min, max := n.Lengths()
	if min != 1 || max != 4 {
		t.Errorf("got (%d,%d), want (1,4)", min, max)
	}
}
