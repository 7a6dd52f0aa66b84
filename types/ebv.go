package types

import (
	"errors"
	"math"

	"github.com/jacoscaz/sparqlee/ast"
)

// ErrNotCoercible is returned by CoerceEBV when t has no Effective Boolean
// Value (spec.md §4.1). Package topdown wraps it into an EBVError.
var ErrNotCoercible = errors.New("types: term has no effective boolean value")

// CoerceEBV computes the Effective Boolean Value of t per spec.md §4.1:
// booleans coerce to their value; numerics are false iff zero or NaN;
// strings (plain or language-tagged) are false iff empty; everything else
// (IRIs, blank nodes, nonLexical or otherwise-typed literals) fails.
func CoerceEBV(t ast.Term) (bool, error) {
	if t.Kind() != ast.KindLiteral {
		return false, ErrNotCoercible
	}
	switch v := TypedValue(t).(type) {
	case BooleanValue:
		return bool(v), nil
	case StringValue:
		return v.Lexical != "", nil
	case LangStringValue:
		return v.Lexical != "", nil
	case IntegerValue:
		return !v.D.IsZero(), nil
	case DecimalValue:
		return !v.D.IsZero(), nil
	case FloatValue:
		f := float64(v)
		return f != 0 && !math.IsNaN(f), nil
	case DoubleValue:
		f := float64(v)
		return f != 0 && !math.IsNaN(f), nil
	default:
		return false, ErrNotCoercible
	}
}
