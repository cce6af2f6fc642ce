package fsm

import (
	"iter"

	"github.com/coregx/outlines-go/internal/alphabet"
	"github.com/coregx/outlines-go/internal/primitives"
)

// Strings lazily enumerates accepted symbol sequences shortest-first. It
// is a generator, not a collection: for an infinite language (any DFA
// with a cycle reachable from a final state) the caller must stop
// pulling — returning false from yield — or the walk never terminates.
func (d *DFA) Strings() iter.Seq[[]alphabet.Symbol] {
	return func(yield func([]alphabet.Symbol) bool) {
		type item struct {
			state primitives.State
			path  []alphabet.Symbol
		}
		queue := []item{{d.Initial, nil}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if d.IsFinal(cur.state) {
				if !yield(cur.path) {
					return
				}
			}
			for _, k := range d.Alphabet.Keys() {
				if k == primitives.AnythingElse {
					continue
				}
				ns, ok := d.Step(cur.state, k)
				if !ok {
					continue
				}
				for _, sym := range d.Alphabet.Symbols(k) {
					path := make([]alphabet.Symbol, len(cur.path)+1)
					copy(path, cur.path)
					path[len(cur.path)] = sym
					queue = append(queue, item{ns, path})
				}
			}
		}
	}
}
