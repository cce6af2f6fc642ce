// Package index builds and serves the token-level index a sampler
// queries at each decoding step: for every DFA state reachable from the
// start, which vocabulary tokens can be emitted there and what state
// each leads to.
package index

import (
	"sync"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/outlines-go/internal/fsm"
	"github.com/coregx/outlines-go/internal/litprefilter"
	"github.com/coregx/outlines-go/internal/primitives"
	"github.com/coregx/outlines-go/internal/vocabulary"
	"github.com/coregx/outlines-go/internal/walk"
)

// parallelThreshold is the vocabulary size above which Build scans a BFS
// frontier's states concurrently instead of one at a time, matching the
// "skip pooling below ~1000 items" guidance for this workload — below
// that size the goroutine/channel overhead outweighs the saved work.
const parallelThreshold = 1000

// Builder builds an Index from a compiled DFA and a vocabulary.
type Builder struct{}

// NewBuilder returns a Builder. Builder carries no state of its own; it
// exists so the construction API matches the rest of the pipeline's
// Builder-typed entry points.
func NewBuilder() *Builder { return &Builder{} }

type scanResult struct {
	state primitives.State
	pairs map[primitives.TokenId]primitives.State
}

// Build runs the BFS described in package index's doc comment: starting
// from d's initial state, scan every vocabulary token against the
// current state, record the (token, end state) pairs that fully match,
// queue newly discovered end states, and — once a state turns out to be
// both final and to have at least one real token edge — add a
// self-loop on eosTokenID there (EOS is only ever a valid move from a
// state that a real token could also have completed the pattern at).
// frozenTokens are walked as a single atomic symbol rather than
// character by character (see vocabulary.FrozenTransitionKeys).
func (b *Builder) Build(d *fsm.DFA, vocab *vocabulary.Vocabulary, eosTokenID primitives.TokenId, frozenTokens map[string]struct{}) (*Index, error) {
	return b.BuildFiltered(d, vocab, eosTokenID, frozenTokens, nil)
}

// BuildFiltered is Build plus an optional literal-set prefilter: when
// literals is non-nil, vocabulary tokens it reports as impossible members
// are dropped from the scan entirely rather than walked against the DFA.
// This only ever narrows the candidate token list — the DFA walk (via
// scanFrontierSequential/scanFrontierParallel) remains the sole authority
// on which of the surviving tokens actually transition a given state, so
// a conservative (over-inclusive) literal set changes nothing but speed.
func (b *Builder) BuildFiltered(d *fsm.DFA, vocab *vocabulary.Vocabulary, eosTokenID primitives.TokenId, frozenTokens map[string]struct{}, literals *litprefilter.LiteralSet) (*Index, error) {
	alph := d.Alphabet

	frozenMatcher, err := frozenMatcherFor(frozenTokens)
	if err != nil {
		return nil, err
	}

	var tokenKeysList []walk.TokenKeys
	vocab.Each(func(token primitives.Token, id primitives.TokenId) {
		if literals != nil && !literals.MayContain(token) {
			return
		}
		var keys []primitives.TransitionKey
		if frozenMatcher != nil && frozenMatcher.Contains(token) {
			keys = vocabulary.FrozenTransitionKeys(token, alph)
		} else {
			keys = vocabulary.TransitionKeys(token, alph)
		}
		tokenKeysList = append(tokenKeysList, walk.TokenKeys{ID: id, Keys: keys})
	})

	useParallel := len(tokenKeysList) > parallelThreshold

	result := make(map[primitives.State]map[primitives.TokenId]primitives.State)
	seen := map[primitives.State]struct{}{d.Initial: {}}
	frontier := []primitives.State{d.Initial}

	for len(frontier) > 0 {
		gologger.Debug().Msgf("index: scanning %d state(s), %d token(s) each", len(frontier), len(tokenKeysList))

		var results []scanResult
		if useParallel {
			results = scanFrontierParallel(d, frontier, tokenKeysList)
		} else {
			results = scanFrontierSequential(d, frontier, tokenKeysList)
		}

		var next []primitives.State
		for _, r := range results {
			if len(r.pairs) == 0 {
				continue
			}
			result[r.state] = r.pairs
			for _, end := range r.pairs {
				if _, ok := seen[end]; !ok {
					seen[end] = struct{}{}
					next = append(next, end)
				}
			}
			if d.IsFinal(r.state) {
				result[r.state][eosTokenID] = r.state
			}
		}
		frontier = next
	}

	valid := false
	for _, pairs := range result {
		for _, end := range pairs {
			if d.IsFinal(end) {
				valid = true
				break
			}
		}
		if valid {
			break
		}
	}
	if !valid {
		return nil, ErrIndexError
	}

	finals := make(map[primitives.State]struct{}, len(d.Finals))
	for s := range d.Finals {
		finals[s] = struct{}{}
	}

	return &Index{
		initial: d.Initial,
		finals:  finals,
		subsets: result,
		eos:     eosTokenID,
	}, nil
}

// frozenMatcherFor builds the exact-membership matcher frozenTokens is
// checked against during the scan: a plain map for the common case of a
// handful of special tokens, an Aho-Corasick automaton once a model
// freezes enough multi-byte tokens for the linear map scan to matter
// (see litprefilter.acThreshold).
func frozenMatcherFor(frozenTokens map[string]struct{}) (*litprefilter.FrozenMatcher, error) {
	if len(frozenTokens) == 0 {
		return nil, nil
	}
	tokens := make([]string, 0, len(frozenTokens))
	for t := range frozenTokens {
		tokens = append(tokens, t)
	}
	return litprefilter.NewFrozenMatcher(tokens)
}

func scanFrontierSequential(d *fsm.DFA, frontier []primitives.State, tokenKeysList []walk.TokenKeys) []scanResult {
	out := make([]scanResult, len(frontier))
	for i, s := range frontier {
		out[i] = scanResult{state: s, pairs: walk.StateScanTokens(d, s, tokenKeysList)}
	}
	return out
}

func scanFrontierParallel(d *fsm.DFA, frontier []primitives.State, tokenKeysList []walk.TokenKeys) []scanResult {
	results := make(chan scanResult, len(frontier))
	var wg sync.WaitGroup
	for _, s := range frontier {
		wg.Add(1)
		go func(state primitives.State) {
			defer wg.Done()
			results <- scanResult{state: state, pairs: walk.StateScanTokens(d, state, tokenKeysList)}
		}(s)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]scanResult, 0, len(frontier))
	for r := range results {
		out = append(out, r)
	}
	return out
}
