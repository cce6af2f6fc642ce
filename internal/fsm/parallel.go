package fsm

import (
	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/primitives"
)

// unify builds the coarsest common alphabet across dfas, plus the
// per-input new→old key table alphabet.Union returns (each input's own
// key for every unified key, decomposed per input).
func unify(dfas []*DFA) (*alphabet.Alphabet, []map[primitives.TransitionKey]primitives.TransitionKey) {
	alphas := make([]*alphabet.Alphabet, len(dfas))
	for i, d := range dfas {
		alphas[i] = d.Alphabet
	}
	return alphabet.Union(alphas)
}

const dead = -1

// parallel is the generic N-way combinator every boolean set operation
// (Union, Intersection, SymmetricDifference, Difference) is an instance
// of: it walks all inputs side by side over the unified alphabet, and at
// each composite state applies test to the per-input acceptance vector
// to decide finality. A component with no transition for the current
// key becomes permanently "dead" (eliminated) rather than blocking the
// other components from continuing.
func parallel(dfas []*DFA, test func(accept []bool) bool) *DFA {
	unified, inv := unify(dfas)
	n := len(dfas)

	initial := make([]int, n)
	for i, d := range dfas {
		initial[i] = int(d.Initial)
	}
	initialKey := encodeIntVec(initial)

	isFinal := func(key string) bool {
		vec := decodeIntVec(key, n)
		accept := make([]bool, n)
		for i, v := range vec {
			if v != dead {
				accept[i] = dfas[i].IsFinal(primitives.State(v))
			}
		}
		return test(accept)
	}

	follow := func(key string, k primitives.TransitionKey) (string, bool) {
		vec := decodeIntVec(key, n)
		next := make([]int, n)
		any := false
		for i, v := range vec {
			if v == dead {
				next[i] = dead
				continue
			}
			oldKey := inv[i][k]
			ns, ok := dfas[i].Step(primitives.State(v), oldKey)
			if !ok {
				next[i] = dead
				continue
			}
			next[i] = int(ns)
			any = true
		}
		if !any {
			return "", false
		}
		return encodeIntVec(next), true
	}

	return crawl(crawlSpec{Alphabet: unified, InitialKey: initialKey, IsFinal: isFinal, Follow: follow})
}

func anyTrue(accept []bool) bool {
	for _, a := range accept {
		if a {
			return true
		}
	}
	return false
}

func allTrue(accept []bool) bool {
	for _, a := range accept {
		if !a {
			return false
		}
	}
	return true
}

func oddTrue(accept []bool) bool {
	count := 0
	for _, a := range accept {
		if a {
			count++
		}
	}
	return count%2 == 1
}

// Union accepts iff at least one input accepts.
func Union(dfas ...*DFA) *DFA { return parallel(dfas, anyTrue) }

// Intersection accepts iff every input accepts.
func Intersection(dfas ...*DFA) *DFA { return parallel(dfas, allTrue) }

// SymmetricDifference accepts iff an odd number of inputs accept.
func SymmetricDifference(dfas ...*DFA) *DFA { return parallel(dfas, oddTrue) }

// Difference accepts iff the first input accepts and none of the rest do.
func Difference(first *DFA, rest ...*DFA) *DFA {
	all := append([]*DFA{first}, rest...)
	return parallel(all, func(accept []bool) bool {
		if !accept[0] {
			return false
		}
		for _, a := range accept[1:] {
			if a {
				return false
			}
		}
		return true
	})
}
