package ast

import "fmt"

// NoMatch is the diagnostic error raised when the parser cannot advance.
// It records the furthest position reached and what was expected there,
// mirroring the furthest-failure tracking of a hand-rolled
// recursive-descent parser rather than reporting only the first failure.
type NoMatch struct {
	Data     string
	Index    int
	Expected []string
}

func (e *NoMatch) Error() string {
	start := e.Index - 10
	if start < 0 {
		start = 0
	}
	end := e.Index + 10
	if end > len(e.Data) {
		end = len(e.Data)
	}
	got := "<end of input>"
	if e.Index < len(e.Data) {
		got = string(e.Data[e.Index:min(e.Index+1, len(e.Data))])
	}
	return fmt.Sprintf("no match at index %d (near %q): expected one of %v, got %q",
		e.Index, e.Data[start:end], e.Expected, got)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
