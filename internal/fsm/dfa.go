// Package fsm implements the DFA kernel: the deterministic automaton
// type, the shared subset-construction ("crawl") engine every combinator
// builds on, and the combinators themselves (union, intersection,
// concatenation, star, bounded repetition, complement, reverse).
package fsm

import (
	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/primitives"
)

// DFA is a deterministic finite automaton over a compressed alphabet.
// States are numbered densely from 0; Trans is a partial map — a missing
// entry means no transition, not a transition to a dead state, except
// where a combinator has explicitly totalized the automaton (see
// Totalize/EverythingBut).
type DFA struct {
	Alphabet  *alphabet.Alphabet
	NumStates int
	Initial   primitives.State
	Finals    map[primitives.State]struct{}
	Trans     map[TransKey]primitives.State
}

type TransKey struct {
	S primitives.State
	K primitives.TransitionKey
}

// IsFinal reports whether s is an accepting state.
func (d *DFA) IsFinal(s primitives.State) bool {
	_, ok := d.Finals[s]
	return ok
}

// Step follows the transition from s on key k, if one exists.
func (d *DFA) Step(s primitives.State, k primitives.TransitionKey) (primitives.State, bool) {
	ns, ok := d.Trans[TransKey{s, k}]
	return ns, ok
}

// Accepts simulates the DFA over a symbol sequence from the initial
// state; a missing transition anywhere rejects immediately.
func (d *DFA) Accepts(symbols []alphabet.Symbol) bool {
	s := d.Initial
	for _, sym := range symbols {
		k := d.Alphabet.Get(sym)
		ns, ok := d.Step(s, k)
		if !ok {
			return false
		}
		s = ns
	}
	return d.IsFinal(s)
}

// IsLive reports whether any final state is reachable from s.
func (d *DFA) IsLive(s primitives.State) bool {
	seen := map[primitives.State]struct{}{s: {}}
	queue := []primitives.State{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if d.IsFinal(cur) {
			return true
		}
		for _, k := range d.Alphabet.Keys() {
			if ns, ok := d.Step(cur, k); ok {
				if _, visited := seen[ns]; !visited {
					seen[ns] = struct{}{}
					queue = append(queue, ns)
				}
			}
		}
	}
	return false
}

// IsEmpty reports whether the DFA's language is empty.
func (d *DFA) IsEmpty() bool { return !d.IsLive(d.Initial) }

// Null builds a non-accepting DFA that self-loops on every key of
// alph, including AnythingElse — it accepts nothing.
func Null(alph *alphabet.Alphabet) *DFA {
	trans := make(map[TransKey]primitives.State)
	for _, k := range alph.Keys() {
		trans[TransKey{0, k}] = 0
	}
	return &DFA{Alphabet: alph, NumStates: 1, Initial: 0, Finals: map[primitives.State]struct{}{}, Trans: trans}
}

// Epsilon builds a DFA accepting only the empty string.
func Epsilon(alph *alphabet.Alphabet) *DFA {
	return &DFA{
		Alphabet:  alph,
		NumStates: 1,
		Initial:   0,
		Finals:    map[primitives.State]struct{}{0: {}},
		Trans:     map[TransKey]primitives.State{},
	}
}

// crawlSpec parameterizes the shared subset-construction engine: a
// composite state is any comparable value the caller chooses to encode
// as a string key; follow computes the successor composite (and whether
// one exists) for a given key and transition; isFinal decides acceptance
// for a composite key.
type crawlSpec struct {
	Alphabet   *alphabet.Alphabet
	InitialKey string
	IsFinal    func(key string) bool
	Follow     func(key string, k primitives.TransitionKey) (string, bool)
}

// crawl is the single shared BFS subset-construction engine every
// combinator below is built from: a composite→id memo backs the BFS
// queue so lookups are O(1) rather than the linear scan of a naive port.
func crawl(spec crawlSpec) *DFA {
	idOf := map[string]primitives.State{spec.InitialKey: 0}
	queue := []string{spec.InitialKey}
	trans := make(map[TransKey]primitives.State)
	finals := make(map[primitives.State]struct{})

	for i := 0; i < len(queue); i++ {
		key := queue[i]
		s := primitives.State(i)
		if spec.IsFinal(key) {
			finals[s] = struct{}{}
		}
		for _, k := range spec.Alphabet.Keys() {
			next, ok := spec.Follow(key, k)
			if !ok {
				continue
			}
			nid, seen := idOf[next]
			if !seen {
				nid = primitives.State(len(queue))
				idOf[next] = nid
				queue = append(queue, next)
			}
			trans[TransKey{s, k}] = nid
		}
	}

	return &DFA{
		Alphabet:  spec.Alphabet,
		NumStates: len(queue),
		Initial:   0,
		Finals:    finals,
		Trans:     trans,
	}
}
