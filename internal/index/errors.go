package index

import "errors"

// ErrIndexError is returned when a built index has no path from any
// state to any final state — the compiled pattern cannot ever be
// completed by any token in the vocabulary.
var ErrIndexError = errors.New("index: no vocabulary token sequence reaches an accepting state")

// ErrNoEosTokenID reports that no EOS token id is available. The
// outlines-index CLI returns it when a vocabulary file has no
// eos_token_id; Build takes the id as an argument and never returns it.
var ErrNoEosTokenID = errors.New("index: no eos token id available")
