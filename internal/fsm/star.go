package fsm

import "github.com/coregx/outlines-go/internal/primitives"

// Star builds the Kleene closure of d: zero or more repetitions. The
// composite state is the set of currently-live substates of d; whenever
// a substate accepts, the walk also restarts from d's own initial state
// on the same symbol (restart-on-accept), and the result always accepts
// the empty string regardless of whether d itself does.
func Star(d *DFA) *DFA {
	initialSet := map[int]struct{}{int(d.Initial): {}}
	initialKey := encodeIntSet(initialSet)

	isFinal := func(key string) bool {
		for s := range decodeIntSet(key) {
			if d.IsFinal(primitives.State(s)) {
				return true
			}
		}
		return false
	}

	follow := func(key string, k primitives.TransitionKey) (string, bool) {
		set := decodeIntSet(key)
		next := map[int]struct{}{}
		any := false
		for s := range set {
			if ns, ok := d.Step(primitives.State(s), k); ok {
				next[int(ns)] = struct{}{}
				any = true
			}
			if d.IsFinal(primitives.State(s)) {
				if ns, ok := d.Step(d.Initial, k); ok {
					next[int(ns)] = struct{}{}
					any = true
				}
			}
		}
		if !any {
			return "", false
		}
		return encodeIntSet(next), true
	}

	result := crawl(crawlSpec{Alphabet: d.Alphabet, InitialKey: initialKey, IsFinal: isFinal, Follow: follow})
	result.Finals[result.Initial] = struct{}{}
	return result
}

// Times builds the language of exactly multiplier repetitions of L(d).
// If d itself accepts the empty string, the result accepts at any
// repetition count down to zero — k copies of an empty match is the same
// fixed point as any other count — which is intentional, not a bug; see
// DESIGN.md.
func Times(d *DFA, multiplier int) *DFA {
	initialSet := map[pair]struct{}{{int(d.Initial), 0}: {}}
	initialKey := encodePairSet(initialSet)

	unitAcceptsEmpty := d.IsFinal(d.Initial)

	isFinal := func(key string) bool {
		for p := range decodePairSet(key) {
			if p.A == int(d.Initial) && (p.B == multiplier || unitAcceptsEmpty) {
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
			substate, iter := p.A, p.B
			if iter >= multiplier {
				continue
			}
			ns, ok := d.Step(primitives.State(substate), k)
			if !ok {
				continue
			}
			next[pair{int(ns), iter}] = struct{}{}
			any = true
			if d.IsFinal(ns) {
				next[pair{int(d.Initial), iter + 1}] = struct{}{}
			}
		}
		if !any {
			return "", false
		}
		return encodePairSet(next), true
	}

	return crawl(crawlSpec{Alphabet: d.Alphabet, InitialKey: initialKey, IsFinal: isFinal, Follow: follow})
}
