package ast

import "testing"

func mustParse(t *testing.T, pattern string) *Node {
	t.Helper()
	n, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", pattern, err)
	}
	return n
}

func TestParseLiteral(t *testing.T) {
	n := mustParse(t, "a")
	// start -> Alternation[Concatenation[CharGroup{'a'}]]; the parser
	// represents every bare literal character as a singleton
	// non-inverted CharGroup rather than a KindLiteral node.
	if n.Kind != KindAlternation || len(n.Children) != 1 {
		t.Fatalf("unexpected top-level shape: %+v", n)
	}
	conc := n.Children[0]
	if conc.Kind != KindConcatenation || len(conc.Children) != 1 {
		t.Fatalf("unexpected conc shape: %+v", conc)
	}
	lit := conc.Children[0]
	if lit.Kind != KindCharGroup || lit.Inverted || len(lit.Chars) != 1 {
		t.Fatalf("expected a singleton char group for 'a', got %+v", lit)
	}
	if _, ok := lit.Chars['a']; !ok {
		t.Fatalf("expected 'a' in the char group, got %+v", lit.Chars)
	}
}

func TestParseAlternation(t *testing.T) {
	n := mustParse(t, "a|b|c")
	if n.Kind != KindAlternation || len(n.Children) != 3 {
		t.Fatalf("expected 3-way alternation, got %+v", n)
	}
}

func TestParseRepetition(t *testing.T) {
	cases := []struct {
		pattern  string
		min, max int
	}{
		{"a*", 0, -1},
		{"a+", 1, -1},
		{"a?", 0, 1},
		{"a{2,5}", 2, 5},
		{"a{3}", 3, 3},
		{"a{2,}", 2, -1},
		{"a*?", 0, -1},
	}
	for _, c := range cases {
		n := mustParse(t, c.pattern)
		rep := n.Children[0].Children[0]
		if rep.Kind != KindRepeated {
			t.Fatalf("%s: expected KindRepeated, got %+v", c.pattern, rep)
		}
		if rep.Min != c.min || rep.Max != c.max {
			t.Errorf("%s: got min=%d max=%d, want min=%d max=%d", c.pattern, rep.Min, rep.Max, c.min, c.max)
		}
	}
}

func TestParseCharGroup(t *testing.T) {
	n := mustParse(t, "[a-c]")
	cg := n.Children[0].Children[0]
	if cg.Kind != KindCharGroup {
		t.Fatalf("expected KindCharGroup, got %+v", cg)
	}
	for _, c := range []rune{'a', 'b', 'c'} {
		if _, ok := cg.Chars[c]; !ok {
			t.Errorf("expected %q in char group", c)
		}
	}
	if cg.Inverted {
		t.Errorf("expected non-inverted group")
	}
}

func TestParseNegatedCharGroup(t *testing.T) {
	n := mustParse(t, "[^a]")
	cg := n.Children[0].Children[0]
	if !cg.Inverted {
		t.Fatalf("expected inverted group")
	}
	if _, ok := cg.Chars['a']; !ok {
		t.Errorf("expected 'a' recorded as the excluded member")
	}
}

func TestParseEscapeClassesNegation(t *testing.T) {
	// \D, \S, \W must be true negations: they must NOT contain the
	// characters their positive counterpart (\d, \s, \w) contains.
	dNode := mustParse(t, `\d`).Children[0].Children[0]
	bigDNode := mustParse(t, `\D`).Children[0].Children[0]

	if dNode.Inverted {
		t.Fatalf(`\d should not be inverted`)
	}
	if !bigDNode.Inverted {
		t.Fatalf(`\D should be inverted`)
	}
	for c := range dNode.Chars {
		if _, ok := bigDNode.Chars[c]; !ok {
			t.Errorf(`\D does not record digit %q as excluded`, c)
		}
	}
}

func TestParseNonCapturingGroupAndFlags(t *testing.T) {
	n := mustParse(t, "(?:abc)")
	grp := n.Children[0].Children[0]
	if grp.Kind != KindGroup {
		t.Fatalf("expected KindGroup, got %+v", grp)
	}

	n2 := mustParse(t, "(?i:abc)")
	flagNode := n2.Children[0].Children[0]
	if flagNode.Kind != KindFlag {
		t.Fatalf("expected KindFlag, got %+v", flagNode)
	}
	found := false
	for _, f := range flagNode.Added {
		if f == FlagCaseInsensitive {
			found = true
		}
	}
	if !found {
		t.Errorf("expected FlagCaseInsensitive recorded in Added")
	}
}

func TestParseCapture(t *testing.T) {
	n := mustParse(t, "(abc)")
	cap := n.Children[0].Children[0]
	if cap.Kind != KindCapture {
		t.Fatalf("expected KindCapture, got %+v", cap)
	}
}

func TestParseDotIsInvertedNewlineGroup(t *testing.T) {
	n := mustParse(t, ".")
	cg := n.Children[0].Children[0]
	if cg.Kind != KindCharGroup || !cg.Inverted {
		t.Fatalf("expected inverted char group for '.', got %+v", cg)
	}
	if _, ok := cg.Chars['\n']; !ok {
		t.Errorf("expected '.' to exclude '\\n'")
	}
}

func TestParseInvalidPatternReturnsNoMatch(t *testing.T) {
	_, err := Parse("(abc")
	if err == nil {
		t.Fatal("expected an error for an unterminated group")
	}
	if _, ok := err.(*NoMatch); !ok {
		t.Fatalf("expected *NoMatch, got %T", err)
	}
}

func TestParseBackreferenceUnsupported(t *testing.T) {
	_, err := Parse(`(a)\1`)
	if err == nil {
		t.Fatal("expected numeric backreferences to be rejected")
	}
}

func TestParseHexAndOctalEscapes(t *testing.T) {
	n := mustParse(t, `\x41`)
	cg := n.Children[0].Children[0]
	if cg.Kind != KindCharGroup || cg.Inverted || len(cg.Chars) != 1 {
		t.Fatalf(`expected \x41 to parse as a singleton char group, got %+v`, cg)
	}
	if _, ok := cg.Chars['A']; !ok {
		t.Fatalf(`expected \x41 to decode to 'A', got %+v`, cg.Chars)
	}
}
