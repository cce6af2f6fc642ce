package fsm

import "github.com/coregx/outlines-go/internal/primitives"

// connectAll inserts (i, substate) into set, and — whenever substate is
// final in dfas[i] and i is not the last automaton — also auto-advances
// by inserting (i+1, initial of dfas[i+1]), and so on, so that reaching
// the end of one sub-pattern with nothing left to match is indistinguishable
// from having already started the next one.
func connectAll(dfas []*DFA, set map[pair]struct{}, i, substate int) {
	set[pair{i, substate}] = struct{}{}
	for i < len(dfas)-1 && dfas[i].IsFinal(primitives.State(substate)) {
		i++
		substate = int(dfas[i].Initial)
		set[pair{i, substate}] = struct{}{}
	}
}

// Concatenate builds the DFA for the language L(dfas[0])·L(dfas[1])·...
func Concatenate(dfas ...*DFA) *DFA {
	if len(dfas) == 0 {
		return Epsilon(nil)
	}
	unified, inv := unify(dfas)
	n := len(dfas)
	last := n - 1

	initialSet := map[pair]struct{}{}
	connectAll(dfas, initialSet, 0, int(dfas[0].Initial))
	initialKey := encodePairSet(initialSet)

	isFinal := func(key string) bool {
		for p := range decodePairSet(key) {
			if p.A == last && dfas[last].IsFinal(primitives.State(p.B)) {
				return true
			}
		}
		return false
	}

	follow := func(key string, k primitives.TransitionKey) (string, bool) {
		set := decodePairSet(key)
		next := map[pair]struct{}{}
		any := false
		for p := range set {
			i, substate := p.A, p.B
			oldKey := inv[i][k]
			ns, ok := dfas[i].Step(primitives.State(substate), oldKey)
			if !ok {
				continue
			}
			connectAll(dfas, next, i, int(ns))
			any = true
		}
		if !any {
			return "", false
		}
		return encodePairSet(next), true
	}

	return crawl(crawlSpec{Alphabet: unified, InitialKey: initialKey, IsFinal: isFinal, Follow: follow})
}
