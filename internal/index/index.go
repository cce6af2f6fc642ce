package index

import (
	"encoding/json"
	"sort"

	"github.com/coregx/outlines-go/internal/primitives"
)

// Index is the built token-level index: for every reachable DFA state,
// which vocabulary tokens can be emitted there and the state each one
// leads to.
type Index struct {
	initial primitives.State
	finals  map[primitives.State]struct{}
	subsets map[primitives.State]map[primitives.TokenId]primitives.State
	eos     primitives.TokenId
}

// Initial returns the index's start state.
func (idx *Index) Initial() primitives.State { return idx.initial }

// IsFinal reports whether s is an accepting state of the underlying DFA.
func (idx *Index) IsFinal(s primitives.State) bool {
	_, ok := idx.finals[s]
	return ok
}

// AllowedTokens returns the token ids (including the EOS id, where
// applicable) that may be emitted from s, in ascending order, and
// whether s has any entry in the index at all.
func (idx *Index) AllowedTokens(s primitives.State) ([]primitives.TokenId, bool) {
	pairs, ok := idx.subsets[s]
	if !ok {
		return nil, false
	}
	out := make([]primitives.TokenId, 0, len(pairs))
	for id := range pairs {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true
}

// NextState returns the state reached from s by emitting tok. Emitting
// the EOS token id always signals completion rather than a further
// state transition, so NextState returns (0, false) for it regardless
// of s.
func (idx *Index) NextState(s primitives.State, tok primitives.TokenId) (primitives.State, bool) {
	if tok == idx.eos {
		return 0, false
	}
	pairs, ok := idx.subsets[s]
	if !ok {
		return 0, false
	}
	ns, ok := pairs[tok]
	return ns, ok
}

// EosTokenID returns the token id Build was given for end-of-sequence.
func (idx *Index) EosTokenID() primitives.TokenId { return idx.eos }

type wireIndex struct {
	Initial    primitives.State                                `json:"initial"`
	Finals     []primitives.State                               `json:"finals"`
	Edges      map[string]map[primitives.TokenId]primitives.State `json:"edges"`
	EosTokenID primitives.TokenId                               `json:"eos_token_id"`
}

// MarshalJSON serializes the index as {initial, finals, edges,
// eos_token_id}, where edges maps each state (as a decimal string key,
// since JSON object keys must be strings) to its token->next-state map.
func (idx *Index) MarshalJSON() ([]byte, error) {
	w := wireIndex{
		Initial:    idx.initial,
		EosTokenID: idx.eos,
		Edges:      make(map[string]map[primitives.TokenId]primitives.State, len(idx.subsets)),
	}
	for s := range idx.finals {
		w.Finals = append(w.Finals, s)
	}
	sort.Slice(w.Finals, func(i, j int) bool { return w.Finals[i] < w.Finals[j] })

	for s, pairs := range idx.subsets {
		w.Edges[stateKey(s)] = pairs
	}

	return json.Marshal(w)
}

// UnmarshalJSON restores an index previously written by MarshalJSON.
func (idx *Index) UnmarshalJSON(data []byte) error {
	var w wireIndex
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	idx.initial = w.Initial
	idx.eos = w.EosTokenID
	idx.finals = make(map[primitives.State]struct{}, len(w.Finals))
	for _, s := range w.Finals {
		idx.finals[s] = struct{}{}
	}
	idx.subsets = make(map[primitives.State]map[primitives.TokenId]primitives.State, len(w.Edges))
	for key, pairs := range w.Edges {
		idx.subsets[parseStateKey(key)] = pairs
	}
	return nil
}

func stateKey(s primitives.State) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func parseStateKey(key string) primitives.State {
	var s primitives.State
	_ = json.Unmarshal([]byte(key), &s)
	return s
}
