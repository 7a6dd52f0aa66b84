package types

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// ErrNonLexicalPromotion is returned by Promote when asked to promote a
// NonLexicalValue; the registry in package topdown turns this into an
// InvalidLexicalFormError (spec.md §4.2 step 3).
var ErrNonLexicalPromotion = errors.New("types: cannot promote a non-lexical numeric literal")

// ToFloat64 widens any numeric Value to a float64, for join computations
// and for cross-tag arithmetic once both operands have been promoted to a
// common tag.
func ToFloat64(v Value) float64 {
	switch x := v.(type) {
	case IntegerValue:
		f, _ := x.D.Float64()
		return f
	case DecimalValue:
		f, _ := x.D.Float64()
		return f
	case FloatValue:
		return float64(x)
	case DoubleValue:
		return float64(x)
	default:
		return 0
	}
}

// Promote converts a numeric Value to the given target numeric Tag,
// following the integer < decimal < float < double lattice (spec.md §3).
// Promoting a NonLexicalValue fails with ErrNonLexicalPromotion.
func Promote(v Value, to Tag) (Value, error) {
	if v.Tag() == TagNonLexical {
		return nil, ErrNonLexicalPromotion
	}
	if v.Tag() == to {
		return v, nil
	}
	switch to {
	case TagInteger:
		// Only reached when v is not TagInteger (an integer v returned
		// above); no numeric tag demotes into integer.
		return nil, errDemotion(v.Tag(), to)
	case TagDecimal:
		switch x := v.(type) {
		case IntegerValue:
			return DecimalValue{D: x.D}, nil
		default:
			return nil, errDemotion(v.Tag(), to)
		}
	case TagFloat:
		switch x := v.(type) {
		case IntegerValue:
			f, _ := x.D.Float64()
			return FloatValue(float32(f)), nil
		case DecimalValue:
			f, _ := x.D.Float64()
			return FloatValue(float32(f)), nil
		default:
			return nil, errDemotion(v.Tag(), to)
		}
	case TagDouble:
		switch x := v.(type) {
		case IntegerValue:
			f, _ := x.D.Float64()
			return DoubleValue(f), nil
		case DecimalValue:
			f, _ := x.D.Float64()
			return DoubleValue(f), nil
		case FloatValue:
			return DoubleValue(float64(x)), nil
		default:
			return nil, errDemotion(v.Tag(), to)
		}
	default:
		return nil, errDemotion(v.Tag(), to)
	}
}

func errDemotion(from, to Tag) error {
	return fmt.Errorf("types: cannot promote %s to %s", from, to)
}

// Decimal exposes the underlying apd.Decimal of an integer or decimal
// Value, used by topdown's arithmetic and comparison implementations.
func Decimal(v Value) (apd.Decimal, bool) {
	switch x := v.(type) {
	case IntegerValue:
		return x.D, true
	case DecimalValue:
		return x.D, true
	default:
		return apd.Decimal{}, false
	}
}

// NewDecimalValue wraps d as a DecimalValue.
func NewDecimalValue(d apd.Decimal) DecimalValue { return DecimalValue{D: d} }

// NewIntegerValue wraps d as an IntegerValue.
func NewIntegerValue(d apd.Decimal) IntegerValue { return IntegerValue{D: d} }

// DecimalContext is the shared apd.Context used for all decimal/integer
// arithmetic in this module (see lexical.go for its precision rationale).
func DecimalContext() *apd.Context { return decimalContext }
