// Package lower implements regex AST → DFA lowering: computing the
// alphabet a pattern needs, then building the DFA for its language one
// AST node at a time, bottom-up, via the fsm package's combinators.
package lower

import (
	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/ast"
	"github.com/coregx/outlines-go/internal/fsm"
	"github.com/coregx/outlines-go/internal/primitives"
)

// GetAlphabet computes the alphabet n's own sub-FSMs need: each
// CharGroup contributes one equivalence class covering exactly its
// explicit character set (its own invertedness does not split the
// class — see ToFSM); composite nodes union their children's alphabets.
func GetAlphabet(n *ast.Node) *alphabet.Alphabet {
	switch n.Kind {
	case ast.KindLiteral:
		return alphabet.FromGroups([][]alphabet.Symbol{{alphabet.Symbol(string(n.Char))}})
	case ast.KindCharGroup:
		group := make([]alphabet.Symbol, 0, len(n.Chars))
		for c := range n.Chars {
			group = append(group, alphabet.Symbol(string(c)))
		}
		return alphabet.FromGroups([][]alphabet.Symbol{group})
	case ast.KindRepeated:
		return GetAlphabet(n.Child)
	case ast.KindConcatenation, ast.KindAlternation:
		alphas := make([]*alphabet.Alphabet, 0, len(n.Children))
		for _, c := range n.Children {
			alphas = append(alphas, GetAlphabet(c))
		}
		if len(alphas) == 0 {
			return alphabet.New()
		}
		unified, _ := alphabet.Union(alphas)
		return unified
	case ast.KindCapture, ast.KindGroup, ast.KindFlag:
		return GetAlphabet(n.Child)
	case ast.KindAnchor:
		return alphabet.New()
	}
	return alphabet.New()
}

// ToFSM lowers n into a DFA over alph. alph must be (at least) the
// alphabet GetAlphabet(n) would compute — callers building a DFA for an
// entire pattern compute the alphabet once at the root and thread it
// through every recursive call so every sub-FSM speaks the same
// compressed alphabet and can be combined directly.
func ToFSM(n *ast.Node, alph *alphabet.Alphabet) *fsm.DFA {
	switch n.Kind {
	case ast.KindLiteral:
		return literalFSM(n.Char, alph)

	case ast.KindCharGroup:
		return charGroupFSM(n, alph)

	case ast.KindRepeated:
		return repeatedFSM(n, alph)

	case ast.KindConcatenation:
		if len(n.Children) == 0 {
			return fsm.Epsilon(alph)
		}
		parts := make([]*fsm.DFA, len(n.Children))
		for i, c := range n.Children {
			parts[i] = ToFSM(c, alph)
		}
		return fsm.Concatenate(parts...)

	case ast.KindAlternation:
		if len(n.Children) == 0 {
			return fsm.Null(alph)
		}
		parts := make([]*fsm.DFA, len(n.Children))
		for i, c := range n.Children {
			parts[i] = ToFSM(c, alph)
		}
		return fsm.Union(parts...)

	case ast.KindCapture, ast.KindGroup, ast.KindFlag:
		return ToFSM(n.Child, alph)

	case ast.KindAnchor:
		// Zero-width assertions are not evaluated against surrounding
		// context in a symbol-consuming DFA walk; treated as matching
		// the empty string unconditionally. See DESIGN.md.
		return fsm.Epsilon(alph)
	}
	return fsm.Null(alph)
}

func literalFSM(c rune, alph *alphabet.Alphabet) *fsm.DFA {
	k := alph.Get(alphabet.Symbol(string(c)))
	return twoStateFSM(alph, k)
}

func charGroupFSM(n *ast.Node, alph *alphabet.Alphabet) *fsm.DFA {
	// n's own explicit set shares one key under GetAlphabet(n), but once
	// combined into a shared global alphabet that key may have been
	// split further; collect every key any member char now maps to.
	keys := map[primitives.TransitionKey]struct{}{}
	for c := range n.Chars {
		keys[alph.Get(alphabet.Symbol(string(c)))] = struct{}{}
	}

	trans := map[fsm.TransKey]primitives.State{}
	for _, k := range alph.Keys() {
		_, explicit := keys[k]
		if explicit != n.Inverted {
			trans[fsm.TransKey{S: 0, K: k}] = 1
		}
	}

	return &fsm.DFA{
		Alphabet:  alph,
		NumStates: 2,
		Initial:   0,
		Finals:    map[primitives.State]struct{}{1: {}},
		Trans:     trans,
	}
}

func twoStateFSM(alph *alphabet.Alphabet, acceptKey primitives.TransitionKey) *fsm.DFA {
	trans := map[fsm.TransKey]primitives.State{
		{S: 0, K: acceptKey}: 1,
	}
	return &fsm.DFA{
		Alphabet:  alph,
		NumStates: 2,
		Initial:   0,
		Finals:    map[primitives.State]struct{}{1: {}},
		Trans:     trans,
	}
}

// repeatedFSM implements the mandatory-then-optional decomposition:
// min required copies of the unit, concatenated with up to (max-min)
// further optional copies (or a Kleene star if unbounded).
func repeatedFSM(n *ast.Node, alph *alphabet.Alphabet) *fsm.DFA {
	unit := ToFSM(n.Child, alph)

	mandatory := fsm.Epsilon(alph)
	for i := 0; i < n.Min; i++ {
		mandatory = fsm.Concatenate(mandatory, unit)
	}

	if n.Max < 0 {
		return fsm.Concatenate(mandatory, fsm.Star(unit))
	}

	optionalUnit := withEmptyAccepted(unit)
	optional := fsm.Epsilon(alph)
	for i := 0; i < n.Max-n.Min; i++ {
		optional = fsm.Concatenate(optional, optionalUnit)
	}

	return fsm.Concatenate(mandatory, optional)
}

// withEmptyAccepted returns a DFA identical to d but whose initial state
// is also final, without mutating d.
func withEmptyAccepted(d *fsm.DFA) *fsm.DFA {
	finals := make(map[primitives.State]struct{}, len(d.Finals)+1)
	for s := range d.Finals {
		finals[s] = struct{}{}
	}
	finals[d.Initial] = struct{}{}
	return &fsm.DFA{
		Alphabet:  d.Alphabet,
		NumStates: d.NumStates,
		Initial:   d.Initial,
		Finals:    finals,
		Trans:     d.Trans,
	}
}
