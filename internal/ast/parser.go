package ast

import (
	"strconv"
	"strings"
)

// specialCharsStandard are characters that end a bare-literal atom and
// must be escaped or handled by a dedicated production.
const specialCharsStandard = "+?*.$^\\()[|"

// specialCharsInner are characters with special meaning inside [...].
const specialCharsInner = "\\]"

// Parser is a hand-written recursive-descent parser for a small regex
// dialect: literals, character classes with ranges and negation, the
// usual escapes, bounded/unbounded repetition, alternation, grouping,
// and non-enforced inline flags.
type Parser struct {
	data     []rune
	pos      int
	expected map[int][]string
}

// NewParser builds a parser over pattern.
func NewParser(pattern string) *Parser {
	return &Parser{data: []rune(pattern), expected: make(map[int][]string)}
}

func (p *Parser) recordExpected(what string) {
	p.expected[p.pos] = append(p.expected[p.pos], what)
}

func (p *Parser) noMatch() *NoMatch {
	maxIdx := 0
	var exp []string
	for idx, e := range p.expected {
		if idx > maxIdx || (idx == maxIdx && len(exp) == 0) {
			maxIdx = idx
			exp = e
		}
	}
	return &NoMatch{Data: string(p.data), Index: maxIdx, Expected: exp}
}

func (p *Parser) eof() bool { return p.pos >= len(p.data) }

// peekStatic reports whether s occurs at the current position without
// consuming it.
func (p *Parser) peekStatic(s string) bool {
	rs := []rune(s)
	if p.pos+len(rs) > len(p.data) {
		p.recordExpected(s)
		return false
	}
	for i, r := range rs {
		if p.data[p.pos+i] != r {
			p.recordExpected(s)
			return false
		}
	}
	return true
}

// staticMatch consumes s if present, else records expectation and fails.
func (p *Parser) staticMatch(s string) bool {
	if p.peekStatic(s) {
		p.pos += len([]rune(s))
		return true
	}
	return false
}

// any consumes exactly length runes unconditionally, failing at EOF.
func (p *Parser) any(length int) (string, bool) {
	if p.pos+length > len(p.data) {
		p.recordExpected("<any>")
		return "", false
	}
	s := string(p.data[p.pos : p.pos+length])
	p.pos += length
	return s, true
}

// anyBut consumes length runes unless they match one of none, in which
// case it fails without consuming.
func (p *Parser) anyBut(none []string, length int) (string, bool) {
	if p.pos+length > len(p.data) {
		p.recordExpected("<anybut>")
		return "", false
	}
	s := string(p.data[p.pos : p.pos+length])
	for _, n := range none {
		if s == n {
			p.recordExpected("<anybut " + strings.Join(none, ",") + ">")
			return "", false
		}
	}
	p.pos += length
	return s, true
}

// anyOf tries each option in order via staticMatch.
func (p *Parser) anyOf(options []string) (string, bool) {
	for _, o := range options {
		if p.staticMatch(o) {
			return o, true
		}
	}
	return "", false
}

// multiple greedily consumes characters from chars: a mandatory run of
// at least min, then up to max total (max<0 means unbounded), stopping
// at the first non-member rune or end of input. On failure it consumes
// nothing.
func (p *Parser) multiple(chars string, min, max int) (string, bool) {
	start := p.pos
	var got []rune
	for max < 0 || len(got) < max {
		if p.eof() || !strings.ContainsRune(chars, p.data[p.pos]) {
			break
		}
		got = append(got, p.data[p.pos])
		p.pos++
	}
	if len(got) < min {
		p.recordExpected("<multiple of " + chars + ">")
		p.pos = start
		return "", false
	}
	return string(got), true
}

// Parse parses pattern into an AST, returning a *NoMatch on failure.
func Parse(pattern string) (*Node, error) {
	p := NewParser(pattern)
	n, ok := p.start()
	if !ok || !p.eof() {
		return nil, p.noMatch()
	}
	return n, nil
}

func (p *Parser) start() (*Node, bool) {
	save := p.pos
	n, ok := p.pattern()
	if !ok {
		p.pos = save
		return nil, false
	}
	return n, true
}

// pattern := conc ('|' conc)*
func (p *Parser) pattern() (*Node, bool) {
	var options []*Node
	first, ok := p.conc()
	if !ok {
		return nil, false
	}
	options = append(options, first)
	for p.staticMatch("|") {
		next, ok := p.conc()
		if !ok {
			return nil, false
		}
		options = append(options, next)
	}
	return Alternation(options), true
}

// conc := obj*
func (p *Parser) conc() (*Node, bool) {
	var parts []*Node
	for {
		save := p.pos
		o, ok := p.obj()
		if !ok {
			p.pos = save
			break
		}
		parts = append(parts, o)
	}
	return Concatenation(parts), true
}

// obj := '(' group | atom repetition
func (p *Parser) obj() (*Node, bool) {
	if p.staticMatch("(") {
		g, ok := p.group()
		if !ok {
			return nil, false
		}
		return p.repetition(g)
	}
	a, ok := p.atom()
	if !ok {
		return nil, false
	}
	return p.repetition(a)
}

func (p *Parser) atom() (*Node, bool) {
	switch {
	case p.staticMatch("["):
		return p.chargroup()
	case p.staticMatch("\\"):
		return p.escaped(false)
	case p.staticMatch("."):
		return CharGroup(map[rune]struct{}{'\n': {}}, true), true
	case p.peekStatic(")"), p.peekStatic("^"), p.peekStatic("$"):
		return nil, false
	default:
		s, ok := p.anyBut(splitChars(specialCharsStandard), 1)
		if !ok {
			return nil, false
		}
		r := []rune(s)[0]
		return CharGroup(map[rune]struct{}{r: {}}, false), true
	}
}

func splitChars(s string) []string {
	rs := []rune(s)
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

// group handles the body after a consumed '(': either an extension
// group (starting with '?') or a plain/capturing group body followed by
// a mandatory ')'.
func (p *Parser) group() (*Node, bool) {
	if p.staticMatch("?") {
		return p.extensionGroup()
	}
	inner, ok := p.pattern()
	if !ok {
		return nil, false
	}
	if !p.staticMatch(")") {
		return nil, false
	}
	return Capture(inner), true
}

// extensionGroup handles '(?...)' forms: non-capturing groups '(?:...)'
// and inline flag groups '(?flags)' / '(?flags:...)' / '(?flags-flags)'.
// Flags are parsed but never enforced by lowering.
func (p *Parser) extensionGroup() (*Node, bool) {
	if p.staticMatch(":") {
		inner, ok := p.pattern()
		if !ok {
			return nil, false
		}
		if !p.staticMatch(")") {
			return nil, false
		}
		return Group(inner), true
	}

	const flagLetters = "aiLmsux"
	added := p.parseFlagLetters(flagLetters)
	var removed []Flag
	if p.staticMatch("-") {
		removed = p.parseFlagLetters(flagLetters)
	}
	if p.staticMatch(":") {
		inner, ok := p.pattern()
		if !ok {
			return nil, false
		}
		if !p.staticMatch(")") {
			return nil, false
		}
		return WithFlags(inner, added, removed), true
	}
	if p.staticMatch(")") {
		// Global flag-setting group "(?flags)". Represented as an
		// empty-match Flag node carrying the flags; it wraps nothing, so
		// the flags are not applied to the rest of the pattern.
		return WithFlags(Concatenation(nil), added, removed), true
	}
	return nil, false
}

func (p *Parser) parseFlagLetters(letters string) []Flag {
	s, _ := p.multiple(letters, 0, -1)
	var flags []Flag
	for _, c := range s {
		switch c {
		case 'i':
			flags = append(flags, FlagCaseInsensitive)
		case 'm':
			flags = append(flags, FlagMultiline)
		case 's':
			flags = append(flags, FlagDotMatchesNewline)
		case 'u':
			flags = append(flags, FlagUnicode)
		}
	}
	return flags
}

// repetition applies an optional trailing quantifier to base. A trailing
// '?' after any quantifier marks non-greedy matching, which is parsed
// but has no semantic effect here (matches are not scored by quantity of
// consumption in this module).
func (p *Parser) repetition(base *Node) (*Node, bool) {
	switch {
	case p.staticMatch("*"):
		p.staticMatch("?")
		return Repeated(base, 0, -1), true
	case p.staticMatch("+"):
		p.staticMatch("?")
		return Repeated(base, 1, -1), true
	case p.staticMatch("?"):
		p.staticMatch("?")
		return Repeated(base, 0, 1), true
	case p.staticMatch("{"):
		min, ok := p.number()
		if !ok {
			return nil, false
		}
		max := min
		if p.staticMatch(",") {
			if m, ok := p.number(); ok {
				max = m
			} else {
				max = -1
			}
		}
		if !p.staticMatch("}") {
			return nil, false
		}
		p.staticMatch("?")
		return Repeated(base, min, max), true
	default:
		return base, true
	}
}

func (p *Parser) number() (int, bool) {
	s, ok := p.multiple("0123456789", 1, -1)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// chargroup parses the body after a consumed '[', up to and including
// the closing ']'.
func (p *Parser) chargroup() (*Node, bool) {
	negate := p.staticMatch("^")
	var groups []*Node
	for {
		save := p.pos
		g, ok := p.chargroupInner()
		if !ok {
			p.pos = save
			break
		}
		groups = append(groups, g)
	}
	if !p.staticMatch("]") {
		return nil, false
	}
	switch len(groups) {
	case 0:
		return CharGroup(map[rune]struct{}{}, negate), true
	case 1:
		g := groups[0]
		return CharGroup(g.Chars, g.Inverted != negate), true
	default:
		return combineCharGroups(groups, negate), true
	}
}

// combineCharGroups merges several CharGroup results the way a
// bracket expression treats each member class: positive classes union,
// negative classes (already expanded to their explicit complement set by
// the caller's alphabet, or treated as exclusions here) are subtracted.
func combineCharGroups(groups []*Node, negate bool) *Node {
	pos := map[rune]struct{}{}
	neg := map[rune]struct{}{}
	anyNeg := false
	for _, g := range groups {
		if g.Inverted {
			anyNeg = true
			for r := range g.Chars {
				neg[r] = struct{}{}
			}
		} else {
			for r := range g.Chars {
				pos[r] = struct{}{}
			}
		}
	}
	if anyNeg {
		result := map[rune]struct{}{}
		for r := range neg {
			if _, excluded := pos[r]; !excluded {
				result[r] = struct{}{}
			}
		}
		return CharGroup(result, !negate)
	}
	result := map[rune]struct{}{}
	for r := range pos {
		if _, excluded := neg[r]; !excluded {
			result[r] = struct{}{}
		}
	}
	return CharGroup(result, negate)
}

// chargroupInner parses one member of a bracket expression: a literal or
// escaped char, optionally extended into an inclusive range via '-'.
func (p *Parser) chargroupInner() (*Node, bool) {
	base, ok := p.charOrEscape(true)
	if !ok {
		return nil, false
	}
	if !p.staticMatch("-") {
		return CharGroup(map[rune]struct{}{base: {}}, false), true
	}
	if p.peekStatic("]") {
		// Trailing literal '-', not a range.
		return CharGroup(map[rune]struct{}{base: {}, '-': {}}, false), true
	}
	hi, ok := p.charOrEscape(true)
	if !ok || hi < base {
		return nil, false
	}
	chars := map[rune]struct{}{}
	for r := base; r <= hi; r++ {
		chars[r] = struct{}{}
	}
	return CharGroup(chars, false), true
}

// charOrEscape reads one literal rune or one escape sequence that
// resolves to a single rune (used by range endpoints). inner selects
// bracket-expression escape rules.
func (p *Parser) charOrEscape(inner bool) (rune, bool) {
	if p.staticMatch("\\") {
		n, ok := p.escaped(inner)
		if !ok || n.Kind != KindCharGroup || len(n.Chars) != 1 || n.Inverted {
			return 0, false
		}
		for r := range n.Chars {
			return r, true
		}
	}
	s, ok := p.anyBut(splitChars(specialCharsInner), 1)
	if !ok {
		return 0, false
	}
	return []rune(s)[0], true
}

const hexDigits = "0123456789abcdefABCDEF"
const octalDigits = "01234567"

// escaped parses the body after a consumed '\', dispatching to hex
// escapes, octal escapes, named classes, and single-char escapes.
// inner selects the bracket-expression dialect, which differs only in
// digit escapes: inside [...] one to three octal digits form an octal
// escape; outside, "\0" starts an octal escape, exactly three octal
// digits form one, and any other digit run is a rejected backreference.
// Named classes are accepted in both dialects.
func (p *Parser) escaped(inner bool) (*Node, bool) {
	if p.staticMatch("x") {
		s, ok := p.multiple(hexDigits, 2, 2)
		if !ok {
			return nil, false
		}
		v, _ := strconv.ParseInt(s, 16, 32)
		return CharGroup(map[rune]struct{}{rune(v): {}}, false), true
	}

	if !inner {
		if p.staticMatch("0") {
			s, ok := p.multiple(octalDigits, 1, 3)
			if ok {
				v, _ := strconv.ParseInt(s, 8, 32)
				return CharGroup(map[rune]struct{}{rune(v): {}}, false), true
			}
			return CharGroup(map[rune]struct{}{'0': {}}, false), true
		}
		if s, ok := p.multiple(octalDigits, 3, 3); ok {
			v, _ := strconv.ParseInt(s, 8, 32)
			return CharGroup(map[rune]struct{}{rune(v): {}}, false), true
		}
		if s, ok := p.multiple("0123456789", 1, 2); ok {
			_ = s
			return nil, false // numeric backreferences are not supported
		}
	} else {
		if s, ok := p.multiple(octalDigits, 1, 3); ok {
			v, _ := strconv.ParseInt(s, 8, 32)
			return CharGroup(map[rune]struct{}{rune(v): {}}, false), true
		}
	}

	if p.staticMatch("p") || p.staticMatch("P") || p.staticMatch("N") || p.staticMatch("u") || p.staticMatch("U") {
		return nil, false // unicode property / named escapes are not supported
	}

	switch {
	case p.staticMatch("w"):
		return CharGroup(wordChars(), false), true
	case p.staticMatch("W"):
		return CharGroup(wordChars(), true), true
	case p.staticMatch("d"):
		return CharGroup(digitChars(), false), true
	case p.staticMatch("D"):
		return CharGroup(digitChars(), true), true
	case p.staticMatch("s"):
		return CharGroup(spaceChars(), false), true
	case p.staticMatch("S"):
		return CharGroup(spaceChars(), true), true
	case p.staticMatch("a"):
		return CharGroup(map[rune]struct{}{'\a': {}}, false), true
	case p.staticMatch("b"):
		return CharGroup(map[rune]struct{}{'\b': {}}, false), true
	case p.staticMatch("f"):
		return CharGroup(map[rune]struct{}{'\f': {}}, false), true
	case p.staticMatch("n"):
		return CharGroup(map[rune]struct{}{'\n': {}}, false), true
	case p.staticMatch("r"):
		return CharGroup(map[rune]struct{}{'\r': {}}, false), true
	case p.staticMatch("t"):
		return CharGroup(map[rune]struct{}{'\t': {}}, false), true
	case p.staticMatch("v"):
		return CharGroup(map[rune]struct{}{'\v': {}}, false), true
	}

	if p.eof() {
		return nil, false
	}
	c := p.data[p.pos]
	if isAlphabetic(c) {
		return nil, false
	}
	p.pos++
	return CharGroup(map[rune]struct{}{c: {}}, false), true
}

func isAlphabetic(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func wordChars() map[rune]struct{} {
	chars := map[rune]struct{}{'_': {}}
	for c := 'a'; c <= 'z'; c++ {
		chars[c] = struct{}{}
	}
	for c := 'A'; c <= 'Z'; c++ {
		chars[c] = struct{}{}
	}
	for c := '0'; c <= '9'; c++ {
		chars[c] = struct{}{}
	}
	return chars
}

func digitChars() map[rune]struct{} {
	chars := map[rune]struct{}{}
	for c := '0'; c <= '9'; c++ {
		chars[c] = struct{}{}
	}
	return chars
}

func spaceChars() map[rune]struct{} {
	return map[rune]struct{}{' ': {}, '\t': {}, '\n': {}, '\r': {}, '\v': {}, '\f': {}}
}
