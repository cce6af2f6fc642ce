package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultAnyValueDepth bounds how many levels of nested array/object an
// empty schema ("{}"), an "additionalProperties: true", or an untyped
// "items" is allowed to recurse through before bottoming out at
// primitives only. JSON Schema itself places no bound here; a generation
// target must.
const DefaultAnyValueDepth = 2

// BuildRegexFromSchema parses schemaJSON and lowers it to the equivalent
// regex. whitespacePattern, if empty, defaults to DefaultWhitespacePattern.
func BuildRegexFromSchema(schemaJSON string, whitespacePattern string) (string, error) {
	var root any
	if err := json.Unmarshal([]byte(schemaJSON), &root); err != nil {
		return "", fmt.Errorf("schema: invalid JSON: %w", err)
	}
	if whitespacePattern == "" {
		whitespacePattern = DefaultWhitespacePattern
	}
	return ToRegex(root, whitespacePattern, root)
}

// ToRegex lowers one schema node (value) into a regex, resolving local
// "$ref"s against fullSchema. Keyword dispatch always checks, in this
// fixed order, for the first of: properties, allOf, anyOf, oneOf,
// prefixItems, enum, const, $ref, type — falling back to a depth-bounded
// (DefaultAnyValueDepth) "any value" regex for an object with none of those keys ("{}" is a
// valid, maximally permissive schema).
func ToRegex(value any, ws string, fullSchema any) (string, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return "", fmt.Errorf("schema: invalid JSON Schema: expected an object")
	}
	if len(obj) == 0 {
		return anyValueRegex(ws, DefaultAnyValueDepth), nil
	}

	switch {
	case has(obj, "properties"):
		return parseProperties(obj, ws, fullSchema)
	case has(obj, "allOf"):
		return parseAllOf(obj, ws, fullSchema)
	case has(obj, "anyOf"):
		return parseAnyOf(obj, ws, fullSchema)
	case has(obj, "oneOf"):
		return parseOneOf(obj, ws, fullSchema)
	case has(obj, "prefixItems"):
		return parsePrefixItems(obj, ws, fullSchema)
	case has(obj, "enum"):
		return parseEnum(obj)
	case has(obj, "const"):
		return parseConst(obj)
	case has(obj, "$ref"):
		return parseRef(obj, ws, fullSchema)
	case has(obj, "type"):
		return parseType(obj, ws, fullSchema)
	default:
		return anyValueRegex(ws, DefaultAnyValueDepth), nil
	}
}

func has(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// propertyField lowers a single "key": <value-regex> pair, in sorted-key
// order for reproducibility (Go's encoding/json does not preserve object
// key order, unlike the source this was ported from).
func propertyField(k string, v any, ws string, fullSchema any) (string, error) {
	valueRegex, err := ToRegex(v, ws, fullSchema)
	if err != nil {
		return "", err
	}
	encodedKey, err := json.Marshal(k)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`%s%s%s:%s%s`, ws, regexpQuoteLiteral(string(encodedKey)), ws, ws, valueRegex), nil
}

// parseProperties lowers an object schema's declared properties. If any
// are marked "required", every declared property still appears in fixed
// order, but the non-required ones are individually wrapped as optional
// groups, with the comma separator leaning towards whichever neighbor is
// actually present relative to the last required property. If none are
// required, the whole object is optional and at most one property
// anchors it: the regex alternates over which single property is the one
// that appears, with every other property independently optional before
// or after it — covering every subset/ordering a fully optional object
// can take.
func parseProperties(obj map[string]any, ws string, fullSchema any) (string, error) {
	props, _ := obj["properties"].(map[string]any)
	keys := sortedKeys(props)

	required := map[string]bool{}
	if arr, ok := obj["required"].([]any); ok {
		for _, r := range arr {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	isRequired := make([]bool, len(keys))
	anyRequired := false
	lastRequiredPos := -1
	for i, k := range keys {
		isRequired[i] = required[k]
		if isRequired[i] {
			anyRequired = true
			lastRequiredPos = i
		}
	}

	var body string
	if anyRequired {
		var parts []string
		for i, k := range keys {
			subregex, err := propertyField(k, props[k], ws, fullSchema)
			if err != nil {
				return "", err
			}
			switch {
			case i < lastRequiredPos:
				subregex += ws + `,`
			case i > lastRequiredPos:
				subregex = ws + `,` + subregex
			}
			if isRequired[i] {
				parts = append(parts, subregex)
			} else {
				parts = append(parts, `(`+subregex+`)?`)
			}
		}
		body = strings.Join(parts, "")
	} else {
		subregexes := make([]string, len(keys))
		for i, k := range keys {
			subregex, err := propertyField(k, props[k], ws, fullSchema)
			if err != nil {
				return "", err
			}
			subregexes[i] = subregex
		}

		possiblePatterns := make([]string, len(subregexes))
		for i := range subregexes {
			var pattern strings.Builder
			for _, sub := range subregexes[:i] {
				pattern.WriteString(`(` + sub + ws + `,)?`)
			}
			pattern.WriteString(subregexes[i])
			for _, sub := range subregexes[i+1:] {
				pattern.WriteString(`(` + ws + `,` + sub + `)?`)
			}
			possiblePatterns[i] = pattern.String()
		}
		body = `(` + strings.Join(possiblePatterns, `|`) + `)?`
	}

	return `\{` + body + ws + `\}`, nil
}

// parseAllOf merges object-shaped subschemas' properties (later entries
// override earlier ones on key collision) and lowers the result as one
// combined properties schema; a non-object subschema set falls back to
// the first entry's regex, since general schema intersection has no
// exact regex equivalent.
func parseAllOf(obj map[string]any, ws string, fullSchema any) (string, error) {
	list, _ := obj["allOf"].([]any)
	if len(list) == 0 {
		return "", fmt.Errorf("schema: allOf must be a non-empty array")
	}

	merged := map[string]any{}
	allObjects := true
	for _, sub := range list {
		subObj, ok := sub.(map[string]any)
		if !ok {
			allObjects = false
			break
		}
		props, ok := subObj["properties"].(map[string]any)
		if !ok {
			allObjects = false
			break
		}
		for k, v := range props {
			merged[k] = v
		}
	}
	if allObjects {
		return parseProperties(map[string]any{"properties": merged}, ws, fullSchema)
	}
	return ToRegex(list[0], ws, fullSchema)
}

func parseAnyOf(obj map[string]any, ws string, fullSchema any) (string, error) {
	return parseAlternation(obj, "anyOf", ws, fullSchema)
}

// parseOneOf is encoded identically to anyOf: it does not enforce that
// exactly one branch matches, only that at least one does.
func parseOneOf(obj map[string]any, ws string, fullSchema any) (string, error) {
	return parseAlternation(obj, "oneOf", ws, fullSchema)
}

func parseAlternation(obj map[string]any, key, ws string, fullSchema any) (string, error) {
	list, _ := obj[key].([]any)
	if len(list) == 0 {
		return "", fmt.Errorf("schema: %s must be a non-empty array", key)
	}
	parts := make([]string, len(list))
	for i, sub := range list {
		r, err := ToRegex(sub, ws, fullSchema)
		if err != nil {
			return "", err
		}
		parts[i] = r
	}
	return `(?:` + strings.Join(parts, `|`) + `)`, nil
}

func parsePrefixItems(obj map[string]any, ws string, fullSchema any) (string, error) {
	list, _ := obj["prefixItems"].([]any)
	parts := make([]string, len(list))
	for i, sub := range list {
		r, err := ToRegex(sub, ws, fullSchema)
		if err != nil {
			return "", err
		}
		parts[i] = r
	}
	tuple := strings.Join(parts, `,`+ws)

	extra := ""
	if itemsSchema, ok := obj["items"]; ok {
		itemsRegex, err := ToRegex(itemsSchema, ws, fullSchema)
		if err != nil {
			return "", err
		}
		extra = `(?:,` + ws + itemsRegex + `)*`
	}

	return `\[` + ws + tuple + extra + ws + `\]`, nil
}

func parseEnum(obj map[string]any) (string, error) {
	values, _ := obj["enum"].([]any)
	if len(values) == 0 {
		return "", fmt.Errorf("schema: enum must be a non-empty array")
	}
	parts := make([]string, len(values))
	for i, v := range values {
		enc, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		parts[i] = regexpQuoteLiteral(string(enc))
	}
	return `(?:` + strings.Join(parts, `|`) + `)`, nil
}

func parseConst(obj map[string]any) (string, error) {
	enc, err := json.Marshal(obj["const"])
	if err != nil {
		return "", err
	}
	return regexpQuoteLiteral(string(enc)), nil
}

// parseRef resolves a local "#/..." JSON Pointer against fullSchema.
// External references are rejected: downloading a referenced schema is
// outside this module's scope.
func parseRef(obj map[string]any, ws string, fullSchema any) (string, error) {
	ref, _ := obj["$ref"].(string)
	if !strings.HasPrefix(ref, "#/") && ref != "#" {
		return "", fmt.Errorf("schema: external $ref %q is not supported", ref)
	}
	target, err := resolveLocalRef(fullSchema, ref)
	if err != nil {
		return "", err
	}
	return ToRegex(target, ws, fullSchema)
}

func resolveLocalRef(fullSchema any, ref string) (any, error) {
	if ref == "#" {
		return fullSchema, nil
	}
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	cur := fullSchema
	for _, p := range parts {
		p = strings.ReplaceAll(p, "~1", "/")
		p = strings.ReplaceAll(p, "~0", "~")
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: $ref %q does not resolve to an object", ref)
		}
		next, ok := obj[p]
		if !ok {
			return nil, fmt.Errorf("schema: $ref %q: no such key %q", ref, p)
		}
		cur = next
	}
	return cur, nil
}

func parseType(obj map[string]any, ws string, fullSchema any) (string, error) {
	typeStr, _ := obj["type"].(string)
	t, err := ParseJSONType(typeStr)
	if err != nil {
		return "", err
	}
	switch t {
	case TypeString:
		return parseStringType(obj)
	case TypeInteger:
		return parseIntegerType(obj)
	case TypeNumber:
		return parseNumberType(obj)
	case TypeBoolean:
		return Boolean, nil
	case TypeNull:
		return Null, nil
	case TypeArray:
		return parseArrayType(obj, ws, fullSchema)
	case TypeObject:
		return parseObjectType(obj, ws, fullSchema)
	}
	return "", fmt.Errorf("schema: unsupported type %q", typeStr)
}

func parseStringType(obj map[string]any) (string, error) {
	if formatStr, ok := obj["format"].(string); ok {
		if f, ok := ParseFormatType(formatStr); ok {
			return f.Regex(), nil
		}
	}
	if pattern, ok := obj["pattern"].(string); ok {
		return `"` + pattern + `"`, nil
	}
	minLen := getUint(obj, "minLength")
	maxLen := getUint(obj, "maxLength")
	if minLen != nil || maxLen != nil {
		min, max, err := ValidateQuantifiers(minLen, maxLen, 0)
		if err != nil {
			return "", err
		}
		return `"` + StringInner + boundsQuantifier(min, max) + `"`, nil
	}
	return String(), nil
}

// parseIntegerType honors the standalone integer type's own digit-count
// bounds, "minDigits"/"maxDigits" — distinct from the number type's
// "minDigitsInteger"/"maxDigitsInteger", which bound only the integer
// part of a number that may also have a fractional/exponent part.
func parseIntegerType(obj map[string]any) (string, error) {
	minD := getUint(obj, "minDigits")
	maxD := getUint(obj, "maxDigits")
	if minD != nil || maxD != nil {
		min, max, err := ValidateQuantifiers(minD, maxD, 1)
		if err != nil {
			return "", err
		}
		return `(-)?(0|[1-9][0-9]` + boundsQuantifier(min, max) + `)`, nil
	}
	return Integer, nil
}

var numberBoundsKeys = []string{
	"minDigitsInteger", "maxDigitsInteger",
	"minDigitsFraction", "maxDigitsFraction",
	"minDigitsExponent", "maxDigitsExponent",
}

func parseNumberType(obj map[string]any) (string, error) {
	hasBounds := false
	for _, k := range numberBoundsKeys {
		if has(obj, k) {
			hasBounds = true
			break
		}
	}
	if !hasBounds {
		return Number, nil
	}

	intQ, err := integerPartQuantifier(obj, "minDigitsInteger", "maxDigitsInteger")
	if err != nil {
		return "", err
	}
	fracQ, err := fractionalQuantifier(obj, "minDigitsFraction", "maxDigitsFraction")
	if err != nil {
		return "", err
	}
	expQ, err := fractionalQuantifier(obj, "minDigitsExponent", "maxDigitsExponent")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`(-)?(0|[1-9][0-9]%s)(\.[0-9]%s)?([eE][+-][0-9]%s)?`, intQ, fracQ, expQ), nil
}

// integerPartQuantifier bounds a number's leading digit run. A max with
// no min still requires at least one more digit beyond the first,
// matching the distinction between "no bound at all" ("*") and "bounded
// above only" ("{1,max}").
func integerPartQuantifier(obj map[string]any, minKey, maxKey string) (string, error) {
	min, max, err := ValidateQuantifiers(getUint(obj, minKey), getUint(obj, maxKey), 1)
	if err != nil {
		return "", err
	}
	switch {
	case min == nil && max == nil:
		return `*`, nil
	case max == nil:
		return fmt.Sprintf(`{%d,}`, *min), nil
	case min == nil:
		return fmt.Sprintf(`{1,%d}`, *max), nil
	default:
		return fmt.Sprintf(`{%d,%d}`, *min, *max), nil
	}
}

// fractionalQuantifier bounds a number's fractional or exponent digit
// run, both of which are otherwise unbounded ("+") rather than optional.
func fractionalQuantifier(obj map[string]any, minKey, maxKey string) (string, error) {
	min, max, err := ValidateQuantifiers(getUint(obj, minKey), getUint(obj, maxKey), 0)
	if err != nil {
		return "", err
	}
	switch {
	case min == nil && max == nil:
		return `+`, nil
	case max == nil:
		return fmt.Sprintf(`{%d,}`, *min), nil
	case min == nil:
		return fmt.Sprintf(`{0,%d}`, *max), nil
	default:
		return fmt.Sprintf(`{%d,%d}`, *min, *max), nil
	}
}

func boundsQuantifier(min, max *uint64) string {
	switch {
	case min == nil && max == nil:
		return `*`
	case max == nil:
		return fmt.Sprintf(`{%d,}`, *min)
	default:
		lo := uint64(0)
		if min != nil {
			lo = *min
		}
		return fmt.Sprintf(`{%d,%d}`, lo, *max)
	}
}

func parseArrayType(obj map[string]any, ws string, fullSchema any) (string, error) {
	minItems := getUint(obj, "minItems")
	maxItems := getUint(obj, "maxItems")

	itemRegex := anyValueRegex(ws, DefaultAnyValueDepth-1)
	if itemsSchema, ok := obj["items"]; ok {
		r, err := ToRegex(itemsSchema, ws, fullSchema)
		if err != nil {
			return "", err
		}
		itemRegex = r
	}

	quant, ok := GetNumItemsPattern(minItems, maxItems)
	if !ok {
		return `\[` + ws + `\]`, nil
	}
	// The whole tuple is only optional (the array may be empty) when
	// minItems permits zero items; a positive minItems must force at
	// least the one mandatory item this group's leading occurrence
	// represents.
	allowEmpty := "?"
	if minItems != nil && *minItems > 0 {
		allowEmpty = ""
	}
	return `\[` + ws + `(?:` + itemRegex + `(?:,` + ws + itemRegex + `)` + quant + `)` + allowEmpty + ws + `\]`, nil
}

func parseObjectType(obj map[string]any, ws string, fullSchema any) (string, error) {
	minProps := getUint(obj, "minProperties")
	maxProps := getUint(obj, "maxProperties")

	valueRegex := anyValueRegex(ws, DefaultAnyValueDepth-1)
	if addl, ok := obj["additionalProperties"]; ok {
		if addlObj, ok := addl.(map[string]any); ok {
			r, err := ToRegex(addlObj, ws, fullSchema)
			if err != nil {
				return "", err
			}
			valueRegex = r
		}
	}
	pairRegex := String() + ws + `:` + ws + valueRegex

	quant, ok := GetNumItemsPattern(minProps, maxProps)
	if !ok {
		return `\{` + ws + `\}`, nil
	}
	allowEmpty := "?"
	if minProps != nil && *minProps > 0 {
		allowEmpty = ""
	}
	return `\{` + ws + `(?:` + pairRegex + `(?:,` + ws + pairRegex + `)` + quant + `)` + allowEmpty + ws + `\}`, nil
}

// anyValueRegex builds a bounded "any JSON value" regex: primitives
// directly, plus arrays/objects of any value recursively until depth
// reaches zero, at which point only primitives are offered.
func anyValueRegex(ws string, depth int) string {
	primitives := `(?:` + String() + `|` + Number + `|` + Boolean + `|` + Null + `)`
	if depth <= 0 {
		return primitives
	}
	inner := anyValueRegex(ws, depth-1)
	array := `\[` + ws + `(?:` + inner + `(?:,` + ws + inner + `)*)?` + ws + `\]`
	object := `\{` + ws + `(?:` + String() + ws + `:` + ws + inner + `(?:,` + ws + String() + ws + `:` + ws + inner + `)*)?` + ws + `\}`
	return `(?:` + primitives + `|` + array + `|` + object + `)`
}

func getUint(obj map[string]any, key string) *uint64 {
	v, ok := obj[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		u := uint64(n)
		return &u
	case json.Number:
		i, err := strconv.ParseUint(string(n), 10, 64)
		if err != nil {
			return nil
		}
		return &i
	}
	return nil
}

// regexpQuoteLiteral escapes a JSON-encoded literal (already including
// its own quotes, for strings) so it matches itself literally as a
// regex fragment.
func regexpQuoteLiteral(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
