package ast

// Lengths returns the minimum and maximum number of input symbols n can
// match; max is -1 if unbounded. Repeated lowering in internal/lower does
// not call it: it reads the node's own Min and Max bounds.
func (n *Node) Lengths() (min, max int) {
	switch n.Kind {
	case KindLiteral:
		return 1, 1
	case KindCharGroup:
		return 1, 1
	case KindAnchor:
		return 0, 0
	case KindRepeated:
		cmin, cmax := n.Child.Lengths()
		min = cmin * n.Min
		if n.Max < 0 || cmax < 0 {
			max = -1
		} else {
			max = cmax * n.Max
		}
		return
	case KindConcatenation:
		min, max = 0, 0
		for _, c := range n.Children {
			cmin, cmax := c.Lengths()
			min += cmin
			if max >= 0 {
				if cmax < 0 {
					max = -1
				} else {
					max += cmax
				}
			}
		}
		return
	case KindAlternation:
		first := true
		for _, c := range n.Children {
			cmin, cmax := c.Lengths()
			if first {
				min, max = cmin, cmax
				first = false
				continue
			}
			if cmin < min {
				min = cmin
			}
			if max >= 0 {
				if cmax < 0 || cmax > max {
					max = cmax
				}
			}
		}
		return
	case KindCapture, KindGroup, KindFlag:
		return n.Child.Lengths()
	}
	return 0, -1
}

// PrefixPostfix reports the fixed literal prefix and postfix length n is
// guaranteed to contribute regardless of how any nested alternation
// resolves; both are 0 unless n is a simple literal/group chain.
func (n *Node) PrefixPostfix() (prefix, postfix int) {
	switch n.Kind {
	case KindLiteral:
		return 1, 1
	case KindConcatenation:
		if len(n.Children) == 0 {
			return 0, 0
		}
		p, _ := n.Children[0].PrefixPostfix()
		_, q := n.Children[len(n.Children)-1].PrefixPostfix()
		return p, q
	case KindCapture, KindGroup, KindFlag:
		return n.Child.PrefixPostfix()
	default:
		return 0, 0
	}
}
