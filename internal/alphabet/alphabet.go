// Package alphabet builds the compressed input alphabet that the DFA
// kernel crawls over: a grouping of the underlying input symbols (runes,
// or multi-rune frozen-token symbols) into the coarsest set of
// equivalence classes a collection of regexes can tell apart.
package alphabet

import (
	"sort"

	"github.com/coregx/outlines-go/internal/primitives"
)

// Symbol is anything the alphabet can classify: an ordinary rune, or a
// frozen multi-rune token treated as a single atomic symbol.
type Symbol string

// Alphabet maps symbols to transition keys and back. Symbols absent from
// symbolMapping belong to the reserved primitives.AnythingElse class.
type Alphabet struct {
	symbolMapping map[Symbol]primitives.TransitionKey
	byTransition  map[primitives.TransitionKey][]Symbol
}

// New builds an empty alphabet; every symbol maps to AnythingElse.
func New() *Alphabet {
	return &Alphabet{
		symbolMapping: make(map[Symbol]primitives.TransitionKey),
		byTransition:  make(map[primitives.TransitionKey][]Symbol),
	}
}

// Get returns the transition key for sym, or primitives.AnythingElse if
// sym was never classified.
func (a *Alphabet) Get(sym Symbol) primitives.TransitionKey {
	if k, ok := a.symbolMapping[sym]; ok {
		return k
	}
	return primitives.AnythingElse
}

// Contains reports whether sym has an explicit (non-AnythingElse) class.
func (a *Alphabet) Contains(sym Symbol) bool {
	_, ok := a.symbolMapping[sym]
	return ok
}

// Keys returns every transition key this alphabet assigns explicitly,
// plus primitives.AnythingElse, in a stable order (explicit keys first,
// by ascending value, AnythingElse last). The crawl engine iterates this
// set once per composite state.
func (a *Alphabet) Keys() []primitives.TransitionKey {
	keys := make([]primitives.TransitionKey, 0, len(a.byTransition)+1)
	for k := range a.byTransition {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	keys = append(keys, primitives.AnythingElse)
	return keys
}

// Symbols returns the symbols classified under key k.
func (a *Alphabet) Symbols(k primitives.TransitionKey) []Symbol {
	return a.byTransition[k]
}

// Size returns the number of explicit transition keys (excluding
// AnythingElse).
func (a *Alphabet) Size() int {
	return len(a.byTransition)
}

func (a *Alphabet) set(sym Symbol, k primitives.TransitionKey) {
	a.symbolMapping[sym] = k
	a.byTransition[k] = append(a.byTransition[k], sym)
}

// FromGroups builds an alphabet where each element of groups becomes one
// transition key, assigned in slice order. Symbols absent from every
// group fall back to AnythingElse.
func FromGroups(groups [][]Symbol) *Alphabet {
	a := New()
	for i, group := range groups {
		k := primitives.TransitionKey(i)
		for _, sym := range group {
			a.set(sym, k)
		}
	}
	return a
}

// Union computes the coarsest alphabet that every input alphabet can be
// losslessly remapped into: two symbols share a class in the result iff
// they receive the same transition key (or both AnythingElse) in every
// input alphabet. It returns the unified alphabet plus, for each input in
// order, an inverse table from a unified key back to that input's own
// key — callers use it to reinterpret an existing DFA's transitions
// under the new alphabet without rebuilding it.
//
// The table is keyed by the unified (new) key rather than the input's own
// (old) key: AnythingElse is not injective under the split a coarser
// input forces — two concrete symbols can both be AnythingElse in one
// input yet land in different unified classes because another input
// tells them apart — so "old key AnythingElse" alone cannot name a
// single unified key, only the reverse direction is well-defined.
func Union(alphabets []*Alphabet) (*Alphabet, []map[primitives.TransitionKey]primitives.TransitionKey) {
	result := New()
	inv := make([]map[primitives.TransitionKey]primitives.TransitionKey, len(alphabets))
	for i := range inv {
		inv[i] = make(map[primitives.TransitionKey]primitives.TransitionKey)
	}

	// Every symbol appearing in any input alphabet, visited in a
	// deterministic order (sorted) so the result is reproducible.
	seen := make(map[Symbol]struct{})
	var allSymbols []Symbol
	for _, alph := range alphabets {
		for sym := range alph.symbolMapping {
			if _, ok := seen[sym]; !ok {
				seen[sym] = struct{}{}
				allSymbols = append(allSymbols, sym)
			}
		}
	}
	sort.Slice(allSymbols, func(i, j int) bool { return allSymbols[i] < allSymbols[j] })

	type tupleKey string
	tupleToNewKey := make(map[tupleKey]primitives.TransitionKey)
	nextNewKey := primitives.TransitionKey(0)

	tupleOf := func(sym Symbol) tupleKey {
		var b []byte
		for _, alph := range alphabets {
			k := alph.Get(sym)
			b = append(b, byte(k), byte(k>>8), byte(k>>16), byte(k>>24), 0)
		}
		return tupleKey(b)
	}

	assign := func(sym Symbol) primitives.TransitionKey {
		t := tupleOf(sym)
		newKey, ok := tupleToNewKey[t]
		if !ok {
			newKey = nextNewKey
			nextNewKey++
			tupleToNewKey[t] = newKey
			result.set(sym, newKey)
			for i, alph := range alphabets {
				inv[i][newKey] = alph.Get(sym)
			}
		} else {
			result.set(sym, newKey)
		}
		return newKey
	}

	for _, sym := range allSymbols {
		assign(sym)
	}

	// Every input's AnythingElse class must also map somewhere in the
	// unified alphabet. Symbols that no input classifies stay in the
	// unified AnythingElse class, which maps back to AnythingElse in every
	// input; an explicit symbol realizing the all-AnythingElse tuple would
	// map there too.
	anyTuple := func() tupleKey {
		var b []byte
		for range alphabets {
			k := primitives.AnythingElse
			b = append(b, byte(k), byte(k>>8), byte(k>>16), byte(k>>24), 0)
		}
		return tupleKey(b)
	}()
	if newKey, ok := tupleToNewKey[anyTuple]; ok {
		for i := range alphabets {
			inv[i][newKey] = primitives.AnythingElse
		}
	} else {
		for i := range alphabets {
			inv[i][primitives.AnythingElse] = primitives.AnythingElse
		}
	}

	return result, inv
}
