package fsm

import "github.com/coregx/outlines-go/internal/primitives"

type revKey struct {
	Next primitives.State
	K    primitives.TransitionKey
}

// Reverse builds the DFA (as a subset construction over the reversed
// NFA) accepting the reverse of d's language: final states become the
// new start set, d's own initial state becomes the new acceptance test,
// and every transition is followed backwards.
func Reverse(d *DFA) *DFA {
	rev := make(map[revKey]map[primitives.State]struct{})
	for tk, ns := range d.Trans {
		rk := revKey{ns, tk.K}
		if rev[rk] == nil {
			rev[rk] = make(map[primitives.State]struct{})
		}
		rev[rk][tk.S] = struct{}{}
	}

	initialSet := map[int]struct{}{}
	for s := range d.Finals {
		initialSet[int(s)] = struct{}{}
	}
	initialKey := encodeIntSet(initialSet)

	isFinal := func(key string) bool {
		for s := range decodeIntSet(key) {
			if primitives.State(s) == d.Initial {
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
			if preds, ok := rev[revKey{primitives.State(s), k}]; ok {
				for p := range preds {
					next[int(p)] = struct{}{}
					any = true
				}
			}
		}
		if !any {
			return "", false
		}
		return encodeIntSet(next), true
	}

	return crawl(crawlSpec{Alphabet: d.Alphabet, InitialKey: initialKey, IsFinal: isFinal, Follow: follow})
}

// Reduce minimizes d via the reverse∘reverse (Brzozowski)
// construction: reversing twice, each time through the deterministic
// subset construction, discards unreachable and indistinguishable states.
func Reduce(d *DFA) *DFA {
	return Reverse(Reverse(d))
}
