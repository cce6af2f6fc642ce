package fsm

import "github.com/coregx/outlines-go/internal/primitives"

// Totalize returns a DFA equivalent to d but with every missing
// transition redirected to a fresh, non-final, self-looping dead state,
// so every (state, key) pair has a defined successor.
func Totalize(d *DFA) *DFA {
	deadState := primitives.State(d.NumStates)
	trans := make(map[TransKey]primitives.State, len(d.Trans)+d.NumStates*d.Alphabet.Size())
	for k, v := range d.Trans {
		trans[k] = v
	}
	finals := make(map[primitives.State]struct{}, len(d.Finals))
	for s := range d.Finals {
		finals[s] = struct{}{}
	}

	keys := d.Alphabet.Keys()
	for s := primitives.State(0); int(s) < d.NumStates; s++ {
		for _, k := range keys {
			if _, ok := trans[TransKey{s, k}]; !ok {
				trans[TransKey{s, k}] = deadState
			}
		}
	}
	for _, k := range keys {
		trans[TransKey{deadState, k}] = deadState
	}

	return &DFA{
		Alphabet:  d.Alphabet,
		NumStates: d.NumStates + 1,
		Initial:   d.Initial,
		Finals:    finals,
		Trans:     trans,
	}
}

// EverythingBut builds the complement of d's language: every string NOT
// accepted by d, over the same alphabet. The input is first totalized
// (see Totalize) so the complement is well defined everywhere, then
// every state's final/non-final designation is flipped. This is a true
// automaton complement, wider than the narrower same-initial-state
// behavior of the source this module was ported from; see DESIGN.md.
func EverythingBut(d *DFA) *DFA {
	total := Totalize(d)
	finals := make(map[primitives.State]struct{})
	for s := primitives.State(0); int(s) < total.NumStates; s++ {
		if !total.IsFinal(s) {
			finals[s] = struct{}{}
		}
	}
	return &DFA{
		Alphabet:  total.Alphabet,
		NumStates: total.NumStates,
		Initial:   total.Initial,
		Finals:    finals,
		Trans:     total.Trans,
	}
}
