package litprefilter

import (
	"strings"

	"github.com/coregx/outlines-go/internal/ast"
)

// LiteralSet is a structural detector plus fast substring check for a
// pattern that is nothing but a literal alternation — the shape JSON
// Schema enum/const lowering produces (spec scenario: a bounded set of
// exact strings). When the AST has this shape, vocabulary tokens that
// cannot possibly contribute to any member of the literal set can be
// short-circuited before paying for a full DFA walk; the DFA walk
// remains the authoritative accept/reject and end-state decision in
// every case.
type LiteralSet struct {
	literals []string
}

// DetectLiteralSet reports whether n is an alternation of literal
// concatenations (or a single literal/concatenation), and if so returns
// a LiteralSet covering its exact member strings.
func DetectLiteralSet(n *ast.Node) (*LiteralSet, bool) {
	var literals []string
	var walk func(n *ast.Node) (string, bool)
	walk = func(n *ast.Node) (string, bool) {
		switch n.Kind {
		case ast.KindLiteral:
			return string(n.Char), true
		case ast.KindCharGroup:
			// The parser emits a singleton non-inverted CharGroup for
			// every ordinary literal character rather than KindLiteral;
			// treat that shape as a one-character literal too.
			if n.Inverted || len(n.Chars) != 1 {
				return "", false
			}
			for c := range n.Chars {
				return string(c), true
			}
			return "", false
		case ast.KindConcatenation:
			s := ""
			for _, c := range n.Children {
				part, ok := walk(c)
				if !ok {
					return "", false
				}
				s += part
			}
			return s, true
		case ast.KindCapture, ast.KindGroup:
			return walk(n.Child)
		default:
			return "", false
		}
	}

	top := n
	for top.Kind == ast.KindCapture || top.Kind == ast.KindGroup {
		top = top.Child
	}

	switch top.Kind {
	case ast.KindAlternation:
		for _, c := range top.Children {
			s, ok := walk(c)
			if !ok {
				return nil, false
			}
			literals = append(literals, s)
		}
	default:
		s, ok := walk(top)
		if !ok {
			return nil, false
		}
		literals = append(literals, s)
	}

	return &LiteralSet{literals: literals}, true
}

// MayContain reports whether s could possibly be part of a match against
// the literal set. A vocabulary token is walked against the DFA one
// character at a time, so it need not be an exact literal itself — it
// only has to land somewhere inside one, the way "Ma" is a legitimate
// first step towards completing the literal "Marc". A false result is
// authoritative (s can never advance any walk of this literal set); a
// true result still requires the caller's DFA walk to confirm both
// validity and the resulting state.
func (l *LiteralSet) MayContain(s string) bool {
	if s == "" {
		return true
	}
	for _, lit := range l.literals {
		if strings.Contains(lit, s) {
			return true
		}
	}
	return false
}

// Literals returns the exact member strings.
func (l *LiteralSet) Literals() []string { return l.literals }
