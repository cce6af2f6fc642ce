// Package ast defines the regex abstract syntax tree produced by Parse
// and consumed by the lowering package, and the recursive-descent parser
// that builds it.
package ast

// Kind tags which fields of a Node are meaningful.
type Kind int

const (
	KindLiteral Kind = iota
	KindCharGroup
	KindRepeated
	KindConcatenation
	KindAlternation
	KindCapture
	KindGroup
	KindAnchor
	KindFlag
)

// AnchorType distinguishes the four anchor/boundary assertions.
type AnchorType int

const (
	AnchorStartOfLine AnchorType = iota
	AnchorEndOfLine
	AnchorWordBoundary
	AnchorNotWordBoundary
)

// Flag is a regex mode flag. Flags are parsed and carried on the tree but
// never enforced during lowering: matching stays case-sensitive and
// single-line regardless of which flags a pattern sets. See DESIGN.md.
type Flag int

const (
	FlagCaseInsensitive Flag = iota
	FlagMultiline
	FlagDotMatchesNewline
	FlagUnicode
)

// Node is a regex AST node. Which fields are populated depends on Kind:
//
//	KindLiteral:       Char
//	KindCharGroup:     Chars, Inverted
//	KindRepeated:      Child, Min, Max (Max<0 means unbounded)
//	KindConcatenation: Children
//	KindAlternation:   Children
//	KindCapture:       Child
//	KindGroup:         Child
//	KindAnchor:        Anchor
//	KindFlag:          Child, Added, Removed
type Node struct {
	Kind Kind

	Char    rune
	Chars   map[rune]struct{}
	Inverted bool

	Child    *Node
	Min      int
	Max      int // -1 == unbounded

	Children []*Node

	Anchor AnchorType

	Added   []Flag
	Removed []Flag
}

// Literal builds a single-character literal node.
func Literal(c rune) *Node { return &Node{Kind: KindLiteral, Char: c} }

// CharGroup builds a character-class node from an explicit rune set.
func CharGroup(chars map[rune]struct{}, inverted bool) *Node {
	return &Node{Kind: KindCharGroup, Chars: chars, Inverted: inverted}
}

// Repeated builds a bounded or unbounded repetition node. max < 0 means
// unbounded.
func Repeated(child *Node, min, max int) *Node {
	return &Node{Kind: KindRepeated, Child: child, Min: min, Max: max}
}

// Concatenation builds a sequence node.
func Concatenation(parts []*Node) *Node {
	return &Node{Kind: KindConcatenation, Children: parts}
}

// Alternation builds a choice node.
func Alternation(options []*Node) *Node {
	return &Node{Kind: KindAlternation, Children: options}
}

// Capture wraps child as a capturing group; behaviorally identical to
// child alone (capture tracking is outside this module's scope).
func Capture(child *Node) *Node { return &Node{Kind: KindCapture, Child: child} }

// Group wraps child as a non-capturing group; behaviorally identical to
// child alone.
func Group(child *Node) *Node { return &Node{Kind: KindGroup, Child: child} }

// WithFlags wraps child, recording which flags are added/removed within
// its scope. The flags are carried for round-tripping but are not
// enforced by lowering.
func WithFlags(child *Node, added, removed []Flag) *Node {
	return &Node{Kind: KindFlag, Child: child, Added: added, Removed: removed}
}

// NewAnchor builds an anchor/boundary assertion node.
func NewAnchor(t AnchorType) *Node { return &Node{Kind: KindAnchor, Anchor: t} }
