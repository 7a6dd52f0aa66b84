package types

import (
	"errors"
	"strings"

	"github.com/jacoscaz/sparqlee/ast"
)

// ErrIncomparable is returned by Compare when a and b fall into categories
// spec.md §4.1 does not define a cross-category order for (e.g. a string
// literal against a dateTime literal). Package topdown wraps it into an
// InvalidCompareError.
var ErrIncomparable = errors.New("types: terms are not comparable")

// Collate compares two strings by Unicode code-point order. This is the
// documented stub spec.md's Design Notes call for: SPARQL collation-aware
// comparison is explicitly out of scope (Non-goals), so this wrapper over
// strings.Compare — which, for valid UTF-8, already orders by code point —
// is the entire implementation, not a placeholder for one.
func Collate(a, b string) int {
	return strings.Compare(a, b)
}

// category buckets terms for the total order in spec.md §4.1: blank nodes
// < named nodes < literals, with literals further split by typed-value
// kind.
type category int

const (
	catBlankNode category = iota
	catNamedNode
	catNumeric
	catString
	catDateTime
	catIncomparable
)

func categorize(t ast.Term) category {
	switch t.Kind() {
	case ast.KindBlankNode:
		return catBlankNode
	case ast.KindNamedNode:
		return catNamedNode
	case ast.KindLiteral:
		switch TypedValue(t).(type) {
		case IntegerValue, DecimalValue, FloatValue, DoubleValue:
			return catNumeric
		case StringValue, LangStringValue:
			return catString
		case DateTimeValue:
			return catDateTime
		default:
			return catIncomparable
		}
	default:
		return catIncomparable
	}
}

// Compare implements the total order of spec.md §4.1 for ORDER BY and for
// </> when both operands fall in the same category. It returns -1, 0, or 1.
// Cross-category literal comparisons (and any comparison touching a
// nonLexical or otherwise-typed literal) fail with ErrIncomparable.
func Compare(a, b ast.Term) (int, error) {
	ca, cb := categorize(a), categorize(b)
	if ca == catIncomparable || cb == catIncomparable {
		return 0, ErrIncomparable
	}
	if ca != cb {
		if ca >= catNumeric && cb >= catNumeric {
			return 0, ErrIncomparable
		}
		if ca < cb {
			return -1, nil
		}
		return 1, nil
	}
	switch ca {
	case catBlankNode:
		return strings.Compare(a.Label(), b.Label()), nil
	case catNamedNode:
		return strings.Compare(a.IRI(), b.IRI()), nil
	case catNumeric:
		return compareNumeric(TypedValue(a), TypedValue(b))
	case catString:
		return compareString(TypedValue(a), TypedValue(b))
	case catDateTime:
		return compareDateTime(TypedValue(a).(DateTimeValue), TypedValue(b).(DateTimeValue))
	default:
		return 0, ErrIncomparable
	}
}

func compareNumeric(a, b Value) (int, error) {
	join := Join(a.Tag(), b.Tag())
	pa, err := Promote(a, join)
	if err != nil {
		return 0, ErrIncomparable
	}
	pb, err := Promote(b, join)
	if err != nil {
		return 0, ErrIncomparable
	}
	if da, ok := Decimal(pa); ok {
		db, _ := Decimal(pb)
		return da.Cmp(&db), nil
	}
	fa, fb := ToFloat64(pa), ToFloat64(pb)
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	default:
		return 0, nil
	}
}

// compareString orders plain strings by code point, and language-tagged
// strings by (lang, lexical) per spec.md §8's boundary behavior. categorize
// puts both kinds in catString; a plain string paired with a langString
// has no order here and fails with ErrIncomparable.
func compareString(a, b Value) (int, error) {
	switch av := a.(type) {
	case StringValue:
		bv, ok := b.(StringValue)
		if !ok {
			return 0, ErrIncomparable
		}
		return Collate(av.Lexical, bv.Lexical), nil
	case LangStringValue:
		bv, ok := b.(LangStringValue)
		if !ok {
			return 0, ErrIncomparable
		}
		if c := Collate(av.Lang, bv.Lang); c != 0 {
			return c, nil
		}
		return Collate(av.Lexical, bv.Lexical), nil
	default:
		return 0, ErrIncomparable
	}
}

func compareDateTime(a, b DateTimeValue) (int, error) {
	switch {
	case a.T.Before(b.T):
		return -1, nil
	case a.T.After(b.T):
		return 1, nil
	default:
		return 0, nil
	}
}
