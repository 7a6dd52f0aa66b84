package topdown

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// init wires the xsd:* cast operators (spec.md §4.2's cast table). Each
// cast accepts one of a fixed set of source tags; anything else is an
// InvalidArgumentTypesError from dispatch before the cast function itself
// runs. A cast whose lexical form doesn't parse under the target datatype
// raises CastError, distinct from the plain literal-construction path.
func init() {
	for _, tag := range []types.Tag{
		types.TagString, types.TagLangString, types.TagBoolean,
		types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble,
	} {
		register(ast.OpCastString, []types.Tag{tag}, castToString)
	}
	register(ast.OpCastBoolean, []types.Tag{types.TagString}, castToBoolean)
	register(ast.OpCastBoolean, []types.Tag{types.TagBoolean}, castToBoolean)
	for _, tag := range []types.Tag{types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble} {
		register(ast.OpCastBoolean, []types.Tag{tag}, castToBoolean)
	}

	for _, tag := range []types.Tag{types.TagString, types.TagBoolean, types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble} {
		register(ast.OpCastInteger, []types.Tag{tag}, castToInteger)
		register(ast.OpCastDecimal, []types.Tag{tag}, castToDecimal)
		register(ast.OpCastFloat, []types.Tag{tag}, castToFloat)
		register(ast.OpCastDouble, []types.Tag{tag}, castToDouble)
	}

	register(ast.OpCastDateTime, []types.Tag{types.TagString}, castToDateTime)
	register(ast.OpCastDateTime, []types.Tag{types.TagDateTime}, castToDateTime)
}

func castToString(args []ast.Term) (ast.Term, error) {
	switch v := types.TypedValue(args[0]).(type) {
	case types.StringValue:
		return stringTerm(v.Lexical), nil
	case types.LangStringValue:
		return stringTerm(v.Lexical), nil
	default:
		return stringTerm(args[0].Lexical()), nil
	}
}

func castToBoolean(args []ast.Term) (ast.Term, error) {
	switch v := types.TypedValue(args[0]).(type) {
	case types.BooleanValue:
		return boolTerm(bool(v)), nil
	case types.IntegerValue:
		return boolTerm(!v.D.IsZero()), nil
	case types.DecimalValue:
		return boolTerm(!v.D.IsZero()), nil
	case types.FloatValue:
		return boolTerm(v != 0), nil
	case types.DoubleValue:
		return boolTerm(v != 0), nil
	case types.StringValue:
		switch v.Lexical {
		case "true", "1":
			return boolTerm(true), nil
		case "false", "0":
			return boolTerm(false), nil
		default:
			return ast.Term{}, errCast("string", "xsd:boolean")
		}
	default:
		return ast.Term{}, errCast(v.Tag().String(), "xsd:boolean")
	}
}

func castToInteger(args []ast.Term) (ast.Term, error) {
	v := types.TypedValue(args[0])
	switch x := v.(type) {
	case types.IntegerValue:
		return ast.NewLiteral(x.D.String(), ast.XSDInteger), nil
	case types.DecimalValue, types.FloatValue, types.DoubleValue:
		ctx := types.DecimalContext()
		d, _ := types.Decimal(v)
		if v.Tag() != types.TagDecimal {
			d = apdFromFloat(types.ToFloat64(v))
		}
		var res apd.Decimal
		truncCtx := ctx.WithPrecision(ctx.Precision)
		truncCtx.Rounding = apd.RoundDown
		if _, err := truncCtx.RoundToIntegralValue(&res, &d); err != nil {
			return ast.Term{}, errCast(v.Tag().String(), "xsd:integer")
		}
		return ast.NewLiteral(res.String(), ast.XSDInteger), nil
	case types.BooleanValue:
		if x {
			return ast.NewLiteral("1", ast.XSDInteger), nil
		}
		return ast.NewLiteral("0", ast.XSDInteger), nil
	case types.StringValue:
		d, ok := types.ParseInteger(x.Lexical)
		if !ok {
			return ast.Term{}, errCast("string", "xsd:integer")
		}
		return ast.NewLiteral(d.String(), ast.XSDInteger), nil
	default:
		return ast.Term{}, errCast(v.Tag().String(), "xsd:integer")
	}
}

func castToDecimal(args []ast.Term) (ast.Term, error) {
	v := types.TypedValue(args[0])
	switch x := v.(type) {
	case types.IntegerValue:
		return ast.NewLiteral(x.D.String(), ast.XSDDecimal), nil
	case types.DecimalValue:
		return ast.NewLiteral(x.D.String(), ast.XSDDecimal), nil
	case types.FloatValue, types.DoubleValue:
		d := apdFromFloat(types.ToFloat64(v))
		return ast.NewLiteral(d.String(), ast.XSDDecimal), nil
	case types.BooleanValue:
		if x {
			return ast.NewLiteral("1", ast.XSDDecimal), nil
		}
		return ast.NewLiteral("0", ast.XSDDecimal), nil
	case types.StringValue:
		d, ok := types.ParseDecimal(x.Lexical)
		if !ok {
			return ast.Term{}, errCast("string", "xsd:decimal")
		}
		return ast.NewLiteral(d.String(), ast.XSDDecimal), nil
	default:
		return ast.Term{}, errCast(v.Tag().String(), "xsd:decimal")
	}
}

func castToFloat(args []ast.Term) (ast.Term, error) {
	f, err := castToFloat64(args[0])
	if err != nil {
		return ast.Term{}, err
	}
	return ast.NewLiteral(formatFloat32(float32(f)), ast.XSDFloat), nil
}

func castToDouble(args []ast.Term) (ast.Term, error) {
	f, err := castToFloat64(args[0])
	if err != nil {
		return ast.Term{}, err
	}
	return ast.NewLiteral(formatFloat64(f), ast.XSDDouble), nil
}

func castToFloat64(t ast.Term) (float64, error) {
	v := types.TypedValue(t)
	switch x := v.(type) {
	case types.IntegerValue, types.DecimalValue, types.FloatValue, types.DoubleValue:
		return types.ToFloat64(v), nil
	case types.BooleanValue:
		if x {
			return 1, nil
		}
		return 0, nil
	case types.StringValue:
		f, ok := types.ParseFloat64(x.Lexical)
		if !ok {
			return 0, errCast("string", "xsd:double")
		}
		return f, nil
	default:
		return 0, errCast(v.Tag().String(), "xsd:double")
	}
}

func castToDateTime(args []ast.Term) (ast.Term, error) {
	switch v := types.TypedValue(args[0]).(type) {
	case types.DateTimeValue:
		return args[0], nil
	case types.StringValue:
		if _, _, ok := types.ParseDateTime(v.Lexical); !ok {
			return ast.Term{}, errCast("string", "xsd:dateTime")
		}
		return ast.NewLiteral(v.Lexical, ast.XSDDateTime), nil
	default:
		return ast.Term{}, errCast(v.Tag().String(), "xsd:dateTime")
	}
}

func apdFromFloat(f float64) apd.Decimal {
	var d apd.Decimal
	_, _ = d.SetFloat64(f)
	return d
}
