// Package outlinesgo compiles a regex or a JSON Schema into a DFA over a
// token vocabulary's alphabet, then builds the per-state token index a
// constrained-decoding sampler queries at every generation step.
//
// Basic usage:
//
//	dfa, err := outlinesgo.Compile(`[0-9]{3}-[0-9]{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx, err := outlinesgo.BuildIndex(dfa, vocab, eosTokenID, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	allowed, _ := idx.AllowedTokens(idx.Initial())
package outlinesgo

import (
	"github.com/coregx/outlines-go/internal/ast"
	"github.com/coregx/outlines-go/internal/fsm"
	"github.com/coregx/outlines-go/internal/index"
	"github.com/coregx/outlines-go/internal/litprefilter"
	"github.com/coregx/outlines-go/internal/lower"
	"github.com/coregx/outlines-go/internal/primitives"
	"github.com/coregx/outlines-go/internal/schema"
	"github.com/coregx/outlines-go/internal/tokenizer"
	"github.com/coregx/outlines-go/internal/vocabulary"
)

// Re-exported types so callers never need to import the internal
// packages directly.
type (
	DFA            = fsm.DFA
	Index          = index.Index
	Vocabulary     = vocabulary.Vocabulary
	State          = primitives.State
	TokenId        = primitives.TokenId
	Token          = primitives.Token
	TokenProcessor = tokenizer.Processor
	LiteralSet     = litprefilter.LiteralSet
)

// NewByteLevelProcessor builds a TokenProcessor for a GPT-2-style
// tokenizer, whose raw token strings map back to bytes one character at a
// time via the byte-level CHAR_MAP.
func NewByteLevelProcessor() *TokenProcessor {
	return tokenizer.NewByteLevelProcessor()
}

// NewByteFallbackProcessor builds a TokenProcessor for a SentencePiece-style
// tokenizer, whose raw token strings are plain UTF-8 text (modulo a
// space-substitute character) plus standalone "<0xHH>" escapes for bytes
// that don't round-trip through UTF-8 on their own. spaceChar defaults to
// tokenizer.ByteFallbackSpaceChar when zero.
func NewByteFallbackProcessor(spaceChar rune) *TokenProcessor {
	return tokenizer.NewByteFallbackProcessor(spaceChar)
}

// VocabularyFromRawTokens builds a Vocabulary from a tokenizer's raw
// on-disk token strings, decoding each through proc first. Use this
// instead of constructing a Vocabulary directly when the token text comes
// straight off a Hugging Face tokenizer.json rather than already-decoded
// strings.
func VocabularyFromRawTokens(raw map[Token][]TokenId, proc *TokenProcessor) (*Vocabulary, error) {
	return vocabulary.FromRawTokens(raw, proc)
}

// Compile parses pattern and lowers it to a minimized DFA.
func Compile(pattern string) (*DFA, error) {
	node, err := ast.Parse(pattern)
	if err != nil {
		return nil, &ParseError{Pattern: pattern, Cause: err}
	}
	node = ast.Simplify(node)
	alph := lower.GetAlphabet(node)
	d := lower.ToFSM(node, alph)
	return fsm.Reduce(d), nil
}

// DetectLiteralSet reports whether pattern is nothing but a literal
// alternation (the shape JSON Schema enum/const lowering produces), and
// if so returns a LiteralSet that can prefilter a vocabulary before
// BuildIndexFiltered walks it against the compiled DFA.
func DetectLiteralSet(pattern string) (*LiteralSet, bool, error) {
	node, err := ast.Parse(pattern)
	if err != nil {
		return nil, false, &ParseError{Pattern: pattern, Cause: err}
	}
	ls, ok := litprefilter.DetectLiteralSet(ast.Simplify(node))
	return ls, ok, nil
}

// CompileSchema lowers a JSON Schema document to its equivalent regex
// and compiles that regex, as Compile would. whitespacePattern, if
// empty, defaults to schema.DefaultWhitespacePattern.
func CompileSchema(schemaJSON string, whitespacePattern string) (*DFA, error) {
	pattern, err := schema.BuildRegexFromSchema(schemaJSON, whitespacePattern)
	if err != nil {
		return nil, &SchemaError{Cause: err}
	}
	return Compile(pattern)
}

// BuildRegexFromSchema exposes the schema package's lowering directly,
// for callers that want the intermediate regex (e.g. for inspection or
// caching) rather than a compiled DFA.
func BuildRegexFromSchema(schemaJSON string, whitespacePattern string) (string, error) {
	return schema.BuildRegexFromSchema(schemaJSON, whitespacePattern)
}

// ToRegex lowers a single schema node, resolving local "$ref"s against
// fullSchema.
func ToRegex(value any, whitespacePattern string, fullSchema any) (string, error) {
	return schema.ToRegex(value, whitespacePattern, fullSchema)
}

// BuildIndex builds the token-level index over d for vocab. eosTokenID
// must be a token id already present in (or reserved for) vocab;
// frozenTokens names tokens that should be matched as a single atomic
// symbol instead of character by character (see
// vocabulary.FrozenTransitionKeys).
func BuildIndex(d *DFA, vocab *Vocabulary, eosTokenID TokenId, frozenTokens map[string]struct{}) (*Index, error) {
	return index.NewBuilder().Build(d, vocab, eosTokenID, frozenTokens)
}

// BuildIndexFiltered is BuildIndex plus a LiteralSet prefilter (see
// DetectLiteralSet): vocabulary tokens the set reports as impossible
// members are skipped entirely rather than walked against d, which
// matters for an enum/const schema constrained against a large
// vocabulary. A nil literals behaves exactly like BuildIndex.
func BuildIndexFiltered(d *DFA, vocab *Vocabulary, eosTokenID TokenId, frozenTokens map[string]struct{}, literals *LiteralSet) (*Index, error) {
	return index.NewBuilder().BuildFiltered(d, vocab, eosTokenID, frozenTokens, literals)
}
