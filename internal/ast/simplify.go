package ast

// Simplify recursively flattens singleton alternations, single-element
// concatenations, and alternations-of-singleton-concatenations-of-
// alternations down to their simplest equivalent form. Simplification is
// semantics-preserving and idempotent: Simplify(Simplify(n)) behaves the
// same as Simplify(n).
func Simplify(n *Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindAlternation:
		if len(n.Children) == 1 {
			return Simplify(n.Children[0])
		}
		parts := make([]*Node, len(n.Children))
		for i, c := range n.Children {
			parts[i] = Simplify(c)
		}
		return Alternation(parts)

	case KindConcatenation:
		parts := make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			parts = append(parts, Simplify(c))
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return Concatenation(parts)

	case KindRepeated:
		return Repeated(Simplify(n.Child), n.Min, n.Max)

	case KindCapture:
		return Capture(Simplify(n.Child))
	case KindGroup:
		return Group(Simplify(n.Child))
	case KindFlag:
		return WithFlags(Simplify(n.Child), n.Added, n.Removed)

	default:
		return n
	}
}
