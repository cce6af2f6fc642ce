// Package litprefilter provides fast membership checks for large
// literal sets — frozen vocabulary tokens treated as atomic symbols, and
// literal-alternation patterns such as those produced by JSON Schema
// enum/const lowering — ahead of paying for a full DFA walk.
package litprefilter

import "github.com/coregx/ahocorasick"

// acThreshold is the largest pattern count for which a plain Go map is
// used instead of building an Aho-Corasick automaton, matching
// coregx-coregex/meta/compile.go's own ">32 patterns" cutover for its
// literal-alternation strategy (buildStrategyEngines).
const acThreshold = 32

// FrozenMatcher answers "is this exact byte string one of the frozen
// tokens" in O(1) expected time for small sets and via a single
// Aho-Corasick automaton scan for large ones.
type FrozenMatcher struct {
	small map[string]struct{}
	ac    *ahocorasick.Automaton
}

// NewFrozenMatcher builds a matcher over the given frozen token set.
func NewFrozenMatcher(frozen []string) (*FrozenMatcher, error) {
	if len(frozen) <= acThreshold {
		small := make(map[string]struct{}, len(frozen))
		for _, f := range frozen {
			small[f] = struct{}{}
		}
		return &FrozenMatcher{small: small}, nil
	}

	b := ahocorasick.NewBuilder()
	for _, f := range frozen {
		b.AddPattern([]byte(f))
	}
	automaton, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &FrozenMatcher{ac: automaton}, nil
}

// Contains reports whether token is exactly one of the frozen tokens.
func (m *FrozenMatcher) Contains(token string) bool {
	if m.small != nil {
		_, ok := m.small[token]
		return ok
	}
	match := m.ac.Find([]byte(token), 0)
	return match != nil && match.Start == 0 && match.End == len(token)
}
