package tokenizer

import (
	"bytes"
	"testing"
)

func TestByteLevelRoundTripsPrintableAscii(t *testing.T) {
	p := NewByteLevelProcessor()
	got, err := p.Process("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("got %v, want %v", got, []byte("hello"))
	}
}

func TestByteLevelDecodesNonPrintableByteEscapes(t *testing.T) {
	p := NewByteLevelProcessor()
	// charMap assigns byte 0x00 the first codepoint past the printable
	// ranges; round-trip it through the package's encode/decode tables.
	var zeroRune rune
	for b, r := range charMap {
		if b == 0x00 {
			zeroRune = r
			break
		}
	}
	got, err := p.Process(string(zeroRune))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("got %v, want [0]", got)
	}
}

func TestByteLevelRejectsUnmappedRune(t *testing.T) {
	p := NewByteLevelProcessor()
	_, err := p.Process("\U0001F600")
	if err == nil {
		t.Fatal("expected an error for a rune outside the CHAR_MAP's range")
	}
	var target *ErrByteProcessorFailed
	if !asErrByteProcessorFailed(err, &target) {
		t.Errorf("expected *ErrByteProcessorFailed, got %T", err)
	}
}

func asErrByteProcessorFailed(err error, target **ErrByteProcessorFailed) bool {
	e, ok := err.(*ErrByteProcessorFailed)
	if ok {
		*target = e
	}
	return ok
}

func TestByteFallbackPlainTextWithSpaceSubstitution(t *testing.T) {
	p := NewByteFallbackProcessor('▁')
	got, err := p.Process("▁hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte(" hello")) {
		t.Errorf("got %q, want %q", got, " hello")
	}
}

func TestByteFallbackDefaultsSpaceCharWhenZero(t *testing.T) {
	p := NewByteFallbackProcessor(0)
	got, err := p.Process("hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte("hello")) {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestByteFallbackDefaultSpaceCharIsSentencePieceDefault(t *testing.T) {
	p := NewByteFallbackProcessor(0)
	got, err := p.Process("▁world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte(" world")) {
		t.Errorf("got %q, want %q: the zero-value processor must default to U+2581, not a no-op", got, " world")
	}
}

func TestByteFallbackEscapeToken(t *testing.T) {
	p := NewByteFallbackProcessor('▁')
	got, err := p.Process("<0xFF>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(got, []byte{0xFF}) {
		t.Errorf("got %v, want [255]", got)
	}
}

func TestByteFallbackMalformedEscapeToken(t *testing.T) {
	p := NewByteFallbackProcessor('▁')
	_, err := p.Process("<0xZZ>")
	if err == nil {
		t.Fatal("expected an error for a malformed escape token")
	}
	if _, ok := err.(*ErrByteFallbackProcessorFailed); !ok {
		t.Errorf("expected *ErrByteFallbackProcessorFailed, got %T", err)
	}
}

func TestIsByteEscapeShapeOnly(t *testing.T) {
	cases := map[string]bool{
		"<0xFF>":  true,
		"<0x0a>":  true,
		"<0xFFF>": false,
		"0xFF":    false,
		"<0xF>":   false,
		"hello":   false,
	}
	for token, want := range cases {
		if got := isByteEscape(token); got != want {
			t.Errorf("isByteEscape(%q) = %v, want %v", token, got, want)
		}
	}
}
