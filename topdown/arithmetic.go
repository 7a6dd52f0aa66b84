package topdown

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// init wires the arithmetic operators into the registry under every tag
// they accept, following the teacher's arithArity1/arithArity2 wrapper
// pattern of registering one small func per operand shape rather than one
// switch-heavy function per operator.
func init() {
	for _, tag := range []types.Tag{types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble} {
		register(ast.OpUnaryMinus, []types.Tag{tag}, arithArity1(tag, negate))
		register(ast.OpAdd, []types.Tag{tag, tag}, arithArity2(tag, add))
		register(ast.OpSub, []types.Tag{tag, tag}, arithArity2(tag, sub))
		register(ast.OpMul, []types.Tag{tag, tag}, arithArity2(tag, mul))
		// Division always yields at least xsd:decimal (op:numeric-divide),
		// even for two integer operands, so it cannot share arithArity2's
		// tag-preserving reification.
		register(ast.OpDiv, []types.Tag{tag, tag}, divImpl(tag))

		register(ast.OpAbs, []types.Tag{tag}, arithArity1(tag, abs))
		register(ast.OpRound, []types.Tag{tag}, arithArity1(tag, round))
		register(ast.OpCeil, []types.Tag{tag}, arithArity1(tag, ceil))
		register(ast.OpFloor, []types.Tag{tag}, arithArity1(tag, floor))
	}
}

// decimalOp and floatOp are the two shapes an arithmetic operation comes in,
// depending on whether the operand tag is exact (integer/decimal, backed by
// apd.Decimal) or inexact (float/double, backed by native Go floats).
type decimalOp func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error)
type decimalOp2 func(ctx *apd.Context, a, b *apd.Decimal) (apd.Decimal, error)
type floatOp func(f float64) float64
type floatOp2 func(a, b float64) float64

// arithArity1 builds a unary Implementation for tag, routing through the
// apd.Context for integer/decimal and through native float64 math for
// float/double.
func arithArity1(tag types.Tag, ops unaryOps) Implementation {
	return func(args []ast.Term) (ast.Term, error) {
		v := types.TypedValue(args[0])
		switch tag {
		case types.TagInteger, types.TagDecimal:
			d, _ := types.Decimal(v)
			res, err := ops.decimal(types.DecimalContext(), &d)
			if err != nil {
				return ast.Term{}, errInvalidArgumentTypes(ast.Operator(""), []string{tag.String()})
			}
			return reifyDecimalLike(tag, res), nil
		default:
			f := types.ToFloat64(v)
			return reifyFloatLike(tag, ops.float(f)), nil
		}
	}
}

// arithArity2 mirrors arithArity1 for binary operators.
func arithArity2(tag types.Tag, ops binaryOps) Implementation {
	return func(args []ast.Term) (ast.Term, error) {
		a := types.TypedValue(args[0])
		b := types.TypedValue(args[1])
		switch tag {
		case types.TagInteger, types.TagDecimal:
			da, _ := types.Decimal(a)
			db, _ := types.Decimal(b)
			res, err := ops.decimal(types.DecimalContext(), &da, &db)
			if err != nil {
				return ast.Term{}, errInvalidArgumentTypes(ast.Operator(""), []string{tag.String(), tag.String()})
			}
			return reifyDecimalLike(tag, res), nil
		default:
			fa, fb := types.ToFloat64(a), types.ToFloat64(b)
			return reifyFloatLike(tag, ops.float(fa, fb)), nil
		}
	}
}

// unaryOps and binaryOps bundle the decimal-path and float-path
// implementations of one operator, so arithArity1/2 can stay generic over
// both representations.
type unaryOps struct {
	decimal decimalOp
	float   floatOp
}

type binaryOps struct {
	decimal decimalOp2
	float   floatOp2
}

var negate = unaryOps{
	decimal: func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		_, err := ctx.Neg(&res, d)
		return res, err
	},
	float: func(f float64) float64 { return -f },
}

var abs = unaryOps{
	decimal: func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		_, err := ctx.Abs(&res, d)
		return res, err
	},
	float: func(f float64) float64 {
		if f < 0 {
			return -f
		}
		return f
	},
}

var round = unaryOps{
	decimal: func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		rctx := ctx.WithPrecision(ctx.Precision)
		rctx.Rounding = apd.RoundHalfUp
		_, err := rctx.RoundToIntegralValue(&res, d)
		return res, err
	},
	float: roundFloat,
}

var ceil = unaryOps{
	decimal: func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		rctx := ctx.WithPrecision(ctx.Precision)
		rctx.Rounding = apd.RoundCeiling
		_, err := rctx.RoundToIntegralValue(&res, d)
		return res, err
	},
	float: ceilFloat,
}

var floor = unaryOps{
	decimal: func(ctx *apd.Context, d *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		rctx := ctx.WithPrecision(ctx.Precision)
		rctx.Rounding = apd.RoundFloor
		_, err := rctx.RoundToIntegralValue(&res, d)
		return res, err
	},
	float: floorFloat,
}

var add = binaryOps{
	decimal: func(ctx *apd.Context, a, b *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		_, err := ctx.Add(&res, a, b)
		return res, err
	},
	float: func(a, b float64) float64 { return a + b },
}

var sub = binaryOps{
	decimal: func(ctx *apd.Context, a, b *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		_, err := ctx.Sub(&res, a, b)
		return res, err
	},
	float: func(a, b float64) float64 { return a - b },
}

var mul = binaryOps{
	decimal: func(ctx *apd.Context, a, b *apd.Decimal) (apd.Decimal, error) {
		var res apd.Decimal
		_, err := ctx.Mul(&res, a, b)
		return res, err
	},
	float: func(a, b float64) float64 { return a * b },
}

// divImpl implements OpDiv for a given operand tag. Unlike the other
// arithmetic operators it never preserves an integer tag: op:numeric-divide
// always produces at least xsd:decimal for exact operands, per the XPath
// functions spec SPARQL defers to.
func divImpl(tag types.Tag) Implementation {
	return func(args []ast.Term) (ast.Term, error) {
		a := types.TypedValue(args[0])
		b := types.TypedValue(args[1])
		switch tag {
		case types.TagInteger, types.TagDecimal:
			da, _ := types.Decimal(a)
			db, _ := types.Decimal(b)
			var res apd.Decimal
			ctx := types.DecimalContext()
			if _, err := ctx.Quo(&res, &da, &db); err != nil {
				return ast.Term{}, errInvalidArgumentTypes(ast.OpDiv, []string{tag.String(), tag.String()})
			}
			return ast.NewLiteral(res.String(), ast.XSDDecimal), nil
		default:
			fa, fb := types.ToFloat64(a), types.ToFloat64(b)
			return reifyFloatLike(tag, fa/fb), nil
		}
	}
}

// reifyDecimalLike reifies a decimal-path result back to an ast.Term under
// the operand tag: integer operands give xsd:integer (so +, -, *, UMINUS,
// ABS, ROUND, CEIL and FLOOR on integers stay integer) and decimal operands
// give xsd:decimal. Division does not come through here; divImpl always
// yields xsd:decimal for exact operands.
func reifyDecimalLike(tag types.Tag, d apd.Decimal) ast.Term {
	if tag == types.TagInteger {
		return ast.NewLiteral(d.String(), ast.XSDInteger)
	}
	return ast.NewLiteral(d.String(), ast.XSDDecimal)
}

func reifyFloatLike(tag types.Tag, f float64) ast.Term {
	if tag == types.TagFloat {
		return ast.NewLiteral(formatFloat32(float32(f)), ast.XSDFloat)
	}
	return ast.NewLiteral(formatFloat64(f), ast.XSDDouble)
}

func roundFloat(f float64) float64 {
	if f < 0 {
		return -floorFloat(-f + 0.5)
	}
	return floorFloat(f + 0.5)
}

func ceilFloat(f float64) float64 {
	i := floorFloat(f)
	if i == f {
		return i
	}
	return i + 1
}

func floorFloat(f float64) float64 {
	i := int64(f)
	fi := float64(i)
	if fi > f {
		fi--
	}
	return fi
}
