// Package vocabulary holds a tokenizer's token→id mapping and computes
// the per-token transition-key sequences the index builder and the
// token-walk need, threading each token through an alphabet lookup
// character by character (or, for frozen tokens, as a single atomic
// symbol).
package vocabulary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/primitives"
)

// Vocabulary maps token text to the (possibly several) ids a tokenizer
// assigns it, plus an optional end-of-sequence id. BuildIndex does not
// read this id; its caller passes one explicitly.
type Vocabulary struct {
	tokens map[primitives.Token][]primitives.TokenId
	eos    *primitives.TokenId
}

// New builds an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{tokens: make(map[primitives.Token][]primitives.TokenId)}
}

// FromMap builds a vocabulary directly from a token→ids map.
func FromMap(m map[primitives.Token][]primitives.TokenId) *Vocabulary {
	v := New()
	for t, ids := range m {
		v.tokens[t] = append([]primitives.TokenId(nil), ids...)
	}
	return v
}

// SetEosTokenID records the end-of-sequence token id.
func (v *Vocabulary) SetEosTokenID(id primitives.TokenId) { v.eos = &id }

// EosTokenID returns the end-of-sequence id and whether one was set.
func (v *Vocabulary) EosTokenID() (primitives.TokenId, bool) {
	if v.eos == nil {
		return 0, false
	}
	return *v.eos, true
}

// Insert adds id under token, appending to any existing ids for that
// token, in place.
func (v *Vocabulary) Insert(token primitives.Token, id primitives.TokenId) {
	v.tokens[token] = append(v.tokens[token], id)
}

// Extend merges other into v in place.
func (v *Vocabulary) Extend(other map[primitives.Token][]primitives.TokenId) {
	for t, ids := range other {
		v.tokens[t] = append(v.tokens[t], ids...)
	}
}

// WithInsert returns a copy of v with id added under token, leaving v
// unmodified.
func (v *Vocabulary) WithInsert(token primitives.Token, id primitives.TokenId) *Vocabulary {
	out := v.clone()
	out.Insert(token, id)
	return out
}

// WithExtend returns a copy of v merged with other, leaving v unmodified.
func (v *Vocabulary) WithExtend(other map[primitives.Token][]primitives.TokenId) *Vocabulary {
	out := v.clone()
	out.Extend(other)
	return out
}

func (v *Vocabulary) clone() *Vocabulary {
	out := New()
	for t, ids := range v.tokens {
		out.tokens[t] = append([]primitives.TokenId(nil), ids...)
	}
	out.eos = v.eos
	return out
}

// TokenToIds returns the ids registered for token.
func (v *Vocabulary) TokenToIds(token primitives.Token) ([]primitives.TokenId, bool) {
	ids, ok := v.tokens[token]
	return ids, ok
}

// Len returns the number of distinct token strings.
func (v *Vocabulary) Len() int { return len(v.tokens) }

// Each calls fn once per (token, id) pair, in a deterministic
// token-then-id order.
func (v *Vocabulary) Each(fn func(token primitives.Token, id primitives.TokenId)) {
	toks := make([]string, 0, len(v.tokens))
	for t := range v.tokens {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	for _, t := range toks {
		ids := append([]primitives.TokenId(nil), v.tokens[t]...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			fn(t, id)
		}
	}
}

// String renders one "token -> ids" line per entry, sorted by token.
func (v *Vocabulary) String() string {
	var b strings.Builder
	toks := make([]string, 0, len(v.tokens))
	for t := range v.tokens {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	for _, t := range toks {
		fmt.Fprintf(&b, "%q -> %v\n", t, v.tokens[t])
	}
	return b.String()
}

// TransitionKeys walks token character by character through alph,
// returning the per-character transition-key sequence a DFA walk would
// consume. A NUL character followed by at least two more characters is
// treated, together with the next two characters, as one three-character
// composite symbol (mirroring the escape-sequence convention some
// tokenizer byte-maps use to represent raw control bytes) — this only
// ever matters for vocabularies whose processor emits NUL-headed
// composite tokens; ordinary text never triggers it.
func TransitionKeys(token primitives.Token, alph *alphabet.Alphabet) []primitives.TransitionKey {
	runes := []rune(token)
	keys := make([]primitives.TransitionKey, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if runes[i] == 0 && i+2 < len(runes) {
			sym := alphabet.Symbol(string(runes[i : i+3]))
			keys = append(keys, alph.Get(sym))
			i += 2
			continue
		}
		keys = append(keys, alph.Get(alphabet.Symbol(string(runes[i]))))
	}
	return keys
}

// FrozenTransitionKeys returns the single-element key sequence for a
// frozen token: the whole token text is looked up as one atomic symbol,
// rather than being walked character by character.
func FrozenTransitionKeys(token primitives.Token, alph *alphabet.Alphabet) []primitives.TransitionKey {
	return []primitives.TransitionKey{alph.Get(alphabet.Symbol(token))}
}
