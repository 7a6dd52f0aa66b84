// Package types implements the typed-value view over ast.Term (spec.md
// §4.1): classification of literals into XSD-derived type tags, the
// numeric promotion lattice, Effective Boolean Value coercion, and the
// total order used for ORDER BY.
package types

// Tag identifies the typed-value classification of a literal (spec.md
// §3's classification table).
type Tag int

const (
	TagString Tag = iota
	TagLangString
	TagBoolean
	TagInteger
	TagDecimal
	TagFloat
	TagDouble
	TagDateTime
	TagNonLexical
	TagOther
)

// String names the tag, chiefly for error messages and logging.
func (t Tag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagLangString:
		return "langString"
	case TagBoolean:
		return "boolean"
	case TagInteger:
		return "integer"
	case TagDecimal:
		return "decimal"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagDateTime:
		return "dateTime"
	case TagNonLexical:
		return "nonLexical"
	case TagOther:
		return "other"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is one of the four numeric tags.
func (t Tag) IsNumeric() bool {
	switch t {
	case TagInteger, TagDecimal, TagFloat, TagDouble:
		return true
	default:
		return false
	}
}

// numericRank gives each numeric tag its position in the promotion lattice
// integer < decimal < float < double (spec.md §3).
var numericRank = map[Tag]int{
	TagInteger: 0,
	TagDecimal: 1,
	TagFloat:   2,
	TagDouble:  3,
}

// Join returns the least upper bound of two numeric tags in the promotion
// lattice. Both arguments must be numeric; callers check IsNumeric first.
func Join(a, b Tag) Tag {
	if numericRank[a] >= numericRank[b] {
		return a
	}
	return b
}
