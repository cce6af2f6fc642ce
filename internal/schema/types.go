// Package schema lowers a JSON Schema document into the equivalent
// regex the rest of the pipeline compiles, following a fixed
// keyword-dispatch order and a small set of canonical regex fragments
// for each JSON primitive type and string format.
package schema

import "fmt"

// Canonical regex fragments for the JSON primitive types. These are
// wire-format constants carried over from the schema this module was
// ported from verbatim, not language-specific code, so they are shared
// across every adapter that needs "what does a JSON string/number/etc.
// look like as a regex". The exponent sign in Number is mandatory, not
// optional: a bare "1e5" is not valid JSON, only "1e+5"/"1e-5" are.
const (
	StringInner = `([^"\\\x00-\x1F\x7F-\x9F]|\\["\\])`
	stringBody  = StringInner + `*`
	Integer     = `(-)?(0|[1-9][0-9]*)`
	Number      = `(` + Integer + `)(\.[0-9]+)?([eE][+-][0-9]+)?`
	Boolean     = `(true|false)`
	Null        = `null`

	DefaultWhitespacePattern = `[\n\t ]*`

	// DateTime, Date, Time and UUID are full quoted regexes, not
	// composable fragments: their date/time sub-patterns diverge from
	// each other (DateTime's date portion allows a signed, extended
	// year; Date's does not), so each is spelled out in full rather than
	// assembled from shared pieces.
	DateTime = `"(-?(?:[1-9][0-9]*)?[0-9]{4})-(1[0-2]|0[1-9])-(3[01]|0[1-9]|[12][0-9])T(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])(\.[0-9]{3})?(Z)?"`
	Date     = `"(?:\d{4})-(?:0[1-9]|1[0-2])-(?:0[1-9]|[1-2][0-9]|3[0-1])"`
	Time     = `"(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])(\.[0-9]+)?(Z)?"`
	UUID     = `"[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}"`
)

// String returns the regex for a JSON string literal, including quotes.
func String() string { return `"` + stringBody + `"` }

// JSONType identifies a JSON Schema primitive "type" keyword value.
type JSONType int

const (
	TypeString JSONType = iota
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeNull
	TypeArray
	TypeObject
)

// ParseJSONType maps a schema's "type" string to a JSONType.
func ParseJSONType(s string) (JSONType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "integer":
		return TypeInteger, nil
	case "number":
		return TypeNumber, nil
	case "boolean":
		return TypeBoolean, nil
	case "null":
		return TypeNull, nil
	case "array":
		return TypeArray, nil
	case "object":
		return TypeObject, nil
	}
	return 0, fmt.Errorf("schema: unsupported type %q", s)
}

// FormatType identifies a JSON Schema string "format" keyword value this
// module gives a dedicated canonical regex for.
type FormatType int

const (
	FormatDateTime FormatType = iota
	FormatDate
	FormatTime
	FormatUUID
)

// ParseFormatType maps a schema's "format" string to a FormatType, if
// supported.
func ParseFormatType(s string) (FormatType, bool) {
	switch s {
	case "date-time":
		return FormatDateTime, true
	case "date":
		return FormatDate, true
	case "time":
		return FormatTime, true
	case "uuid":
		return FormatUUID, true
	}
	return 0, false
}

// Regex returns the canonical regex fragment for f, including the
// string's surrounding quotes.
func (f FormatType) Regex() string {
	switch f {
	case FormatDateTime:
		return DateTime
	case FormatDate:
		return Date
	case FormatTime:
		return Time
	case FormatUUID:
		return UUID
	}
	return String()
}
