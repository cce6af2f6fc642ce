// Package walk implements token-walking: stepping a DFA through one
// token's precomputed transition-key sequence, either in full-match mode
// (the whole token must be consumed and land on a final state) or in
// longest-accepting-prefix mode.
package walk

import (
	"github.com/coregx/outlines-go/internal/fsm"
	"github.com/coregx/outlines-go/internal/primitives"
)

// Walk steps d from start through keys. If fullMatch, the entire key
// sequence must be consumable and the final state reached must be an
// accepting state, or Walk returns nil (rejected). If not fullMatch,
// Walk returns the longest prefix of states ending on the last position
// at which the walk was in an accepting state — it tracks the highest
// such index seen rather than stopping at the first one, since later
// positions can re-enter acceptance after leaving it — or nil if the
// walk was never in an accepting state.
func Walk(d *fsm.DFA, keys []primitives.TransitionKey, start primitives.State, fullMatch bool) []primitives.State {
	states := make([]primitives.State, 0, len(keys))
	cur := start
	lastFinalIdx := -1

	for i, k := range keys {
		ns, ok := d.Step(cur, k)
		if !ok {
			break
		}
		cur = ns
		states = append(states, ns)
		if d.IsFinal(ns) {
			lastFinalIdx = i
		}
	}

	if fullMatch {
		if len(states) == len(keys) && lastFinalIdx == len(keys)-1 {
			return states
		}
		return nil
	}

	if lastFinalIdx < 0 {
		return nil
	}
	return states[:lastFinalIdx+1]
}

// TokenKeys pairs a vocabulary token id with its precomputed
// transition-key sequence, the unit StateScanTokens iterates over.
type TokenKeys struct {
	ID   primitives.TokenId
	Keys []primitives.TransitionKey
}

// StateScanTokens walks every token in tokens from start and returns the
// (token id -> end state) pairs for tokens that fully match, i.e. whose
// entire transition-key sequence is consumed and lands on an accepting
// state. Tokens that only partially match (a non-empty but incomplete
// prefix) are dropped entirely — prefix matches are never edges in the
// resulting index unless a caller explicitly opts into a different
// policy upstream of this function.
func StateScanTokens(d *fsm.DFA, start primitives.State, tokens []TokenKeys) map[primitives.TokenId]primitives.State {
	result := make(map[primitives.TokenId]primitives.State)
	for _, t := range tokens {
		traj := Walk(d, t.Keys, start, true)
		if traj == nil {
			continue
		}
		result[t.ID] = traj[len(traj)-1]
	}
	return result
}
