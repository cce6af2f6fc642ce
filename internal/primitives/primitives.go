// Package primitives declares the small value types shared by every layer
// of the compilation pipeline: automaton states, the compressed input
// alphabet's transition keys, and vocabulary token identifiers.
package primitives

// State identifies a DFA state. The crawl engine numbers states from 0,
// starting with the initial state, but callers should use DFA.Initial
// rather than assuming 0.
type State uint32

// TokenId identifies a vocabulary entry. Model-specific; the caller
// decides what a given id means.
type TokenId uint32

// Token is the decoded text of a vocabulary entry, after any tokenizer
// byte-mapping has been reversed back to a Go string.
type Token = string

// TransitionKey identifies an equivalence class of input symbols in a
// compressed Alphabet. Ordinary keys are small non-negative integers
// assigned by insertion order; AnythingElse is a reserved key standing in
// for "every symbol not explicitly classified by this alphabet".
type TransitionKey uint32

// AnythingElse is the reserved transition key for symbols absent from an
// Alphabet's explicit symbol set. It never collides with an ordinary key
// because ordinary keys are assigned densely from 0 and this sentinel sits
// one past the maximum representable dense run in practice; the Alphabet
// type tracks explicit membership itself rather than relying on magnitude,
// so the exact sentinel value only matters for map-key purposes.
const AnythingElse TransitionKey = ^TransitionKey(0)
