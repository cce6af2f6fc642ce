package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/outlines-go/internal/primitives"
	"github.com/coregx/outlines-go/internal/tokenizer"
)

func TestFromRawTokensDecodesByteLevelTokens(t *testing.T) {
	proc := tokenizer.NewByteLevelProcessor()
	raw := map[primitives.Token][]primitives.TokenId{
		"!":   {1},
		"ĠO": {2}, // GPT-2 byte-level encoding of " O"
	}

	v, err := FromRawTokens(raw, proc)
	require.NoError(t, err)

	ids, ok := v.TokenToIds("!")
	require.True(t, ok)
	assert.Equal(t, []primitives.TokenId{1}, ids)

	ids, ok = v.TokenToIds(" O")
	require.True(t, ok)
	assert.Equal(t, []primitives.TokenId{2}, ids)
}

func TestFromRawTokensDecodesByteFallbackTokens(t *testing.T) {
	proc := tokenizer.NewByteFallbackProcessor('▁')
	raw := map[primitives.Token][]primitives.TokenId{
		"abc":       {1},
		"<0x61>":    {2},
		"▁abc": {3},
	}

	v, err := FromRawTokens(raw, proc)
	require.NoError(t, err)

	ids, ok := v.TokenToIds("abc")
	require.True(t, ok)
	assert.Equal(t, []primitives.TokenId{1}, ids)

	ids, ok = v.TokenToIds("a")
	require.True(t, ok)
	assert.Equal(t, []primitives.TokenId{2}, ids)

	ids, ok = v.TokenToIds(" abc")
	require.True(t, ok)
	assert.Equal(t, []primitives.TokenId{3}, ids)
}

func TestFromRawTokensPropagatesProcessorError(t *testing.T) {
	proc := tokenizer.NewByteLevelProcessor()
	raw := map[primitives.Token][]primitives.TokenId{
		"中": {1}, // outside the byte-level CHAR_MAP
	}

	_, err := FromRawTokens(raw, proc)
	assert.Error(t, err)
}
