package vocabulary

import (
	"fmt"

	"github.com/coregx/outlines-go/internal/primitives"
	"github.com/coregx/outlines-go/internal/tokenizer"
)

// FromRawTokens builds a Vocabulary from a tokenizer's raw on-disk token
// strings, running each through proc to recover its underlying bytes and
// re-decoding those bytes as a Go string. A byte-level or byte-fallback
// token is not guaranteed to be valid UTF-8 on its own (a multibyte
// character's individual bytes are often split across adjacent tokens),
// so the decode step can't fail — it just holds whatever bytes proc
// returns, mirroring original_source's own lossy decode.
func FromRawTokens(raw map[primitives.Token][]primitives.TokenId, proc *tokenizer.Processor) (*Vocabulary, error) {
	v := New()
	for rawToken, ids := range raw {
		b, err := proc.Process(rawToken)
		if err != nil {
			return nil, fmt.Errorf("vocabulary: decoding token %q: %w", rawToken, err)
		}
		decoded := string(b)
		for _, id := range ids {
			v.Insert(decoded, id)
		}
	}
	return v, nil
}
