package topdown

import (
	"fmt"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// Implementation is a pure function over already-evaluated operand terms,
// the unit of registration in the regular-function registry (spec.md
// §4.2). This mirrors the teacher's builtinFunction/FunctionalBuiltinN
// shape: a plain Go func keyed by operator name in a package-level map.
type Implementation func(args []ast.Term) (ast.Term, error)

// registryKey is the lookup key for the regular-operator table: an
// operator paired with the exact operand type-tag tuple.
type registryKey struct {
	op   ast.Operator
	tags string // tags joined, used as a comparable map key
}

func tagsKey(tags []types.Tag) string {
	buf := make([]byte, 0, len(tags)*2)
	for i, t := range tags {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, []byte(t.String())...)
	}
	return string(buf)
}

// registry is the static (op, tag-tuple) -> Implementation table. It is
// populated by init() functions in arithmetic.go, compare.go, strings.go,
// and casts.go, then never mutated again — safe for concurrent reads, per
// spec.md §5.
var registry = map[registryKey]Implementation{}

// arities records every arity registered for an operator. Most operators
// have exactly one; a few (BNODE, taking zero or one argument) have more
// than one, so dispatch's pre-check accepts any recorded arity rather than
// assuming the last register() call won.
var arities = map[ast.Operator]map[int]bool{}

// variadicImpls holds the handful of regular operators (CONCAT) whose
// arity isn't fixed; dispatch checks this table before the fixed-tuple
// registry.
var variadicImpls = map[ast.Operator]Implementation{}

func registerVariadicImpl(op ast.Operator, impl Implementation) {
	variadicImpls[op] = impl
}

// register installs impl under op for the given tag tuple, also recording
// op's arity as one this operator accepts (spec.md §4.2's "arity is fixed
// per entry" — fixed per entry, not necessarily per operator: BNODE
// registers both arity 0 and arity 1).
func register(op ast.Operator, tags []types.Tag, impl Implementation) {
	registry[registryKey{op: op, tags: tagsKey(tags)}] = impl
	if arities[op] == nil {
		arities[op] = map[int]bool{}
	}
	arities[op][len(tags)] = true
}

// dispatch resolves and invokes the regular-operator implementation for op
// given already-evaluated operand terms, per spec.md §4.2's four-step
// algorithm.
func dispatch(op ast.Operator, args []ast.Term) (ast.Term, error) {
	if impl, ok := variadicImpls[op]; ok {
		return impl(args)
	}

	if want, ok := arities[op]; ok && !want[len(args)] {
		first := -1
		for n := range want {
			if first == -1 || n < first {
				first = n
			}
		}
		return ast.Term{}, errInvalidArity(op, len(args), first)
	}

	tags := make([]types.Tag, len(args))
	values := make([]types.Value, len(args))
	for i, a := range args {
		if a.Kind() == ast.KindLiteral {
			values[i] = types.TypedValue(a)
			tags[i] = values[i].Tag()
		} else {
			tags[i] = types.TagOther
		}
	}

	if impl, ok := registry[registryKey{op: op, tags: tagsKey(tags)}]; ok {
		return impl(args)
	}

	if allNumeric(tags) {
		join := types.TagInteger
		for _, t := range tags {
			if t.IsNumeric() {
				join = types.Join(join, t)
			}
		}
		promoted := make([]ast.Term, len(args))
		ok := true
		for i, v := range values {
			pv, err := types.Promote(v, join)
			if err != nil {
				return ast.Term{}, errInvalidLexicalForm(args[i].DatatypeIRI(), args[i].Lexical())
			}
			promoted[i], ok = reifyNumeric(pv)
			if !ok {
				return ast.Term{}, errInvalidArgumentTypes(op, tagStrings(tags))
			}
		}
		promotedTags := make([]types.Tag, len(promoted))
		for i := range promoted {
			promotedTags[i] = join
		}
		if impl, ok := registry[registryKey{op: op, tags: tagsKey(promotedTags)}]; ok {
			return impl(promoted)
		}
	}

	return ast.Term{}, errInvalidArgumentTypes(op, tagStrings(tags))
}

// allNumeric reports whether every tag is numeric, or is TagNonLexical
// standing in for a malformed numeric literal. A mix of numeric and
// nonLexical tags still routes through the promotion path below so the
// failure surfaces as InvalidLexicalFormError (the literal had the right
// datatype but a bad lexical form) rather than InvalidArgumentTypesError.
func allNumeric(tags []types.Tag) bool {
	hasNumeric := false
	for _, t := range tags {
		switch {
		case t.IsNumeric():
			hasNumeric = true
		case t == types.TagNonLexical:
			// defer judgment; resolved by the Promote call below
		default:
			return false
		}
	}
	return hasNumeric
}

func tagStrings(tags []types.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// reifyNumeric converts a promoted numeric types.Value back into an
// ast.Term literal, so implementations always receive ast.Term operands
// uniformly (invariant I2: every intermediate value is a Term).
func reifyNumeric(v types.Value) (ast.Term, bool) {
	switch x := v.(type) {
	case types.IntegerValue:
		return ast.NewLiteral(x.D.String(), ast.XSDInteger), true
	case types.DecimalValue:
		return ast.NewLiteral(x.D.String(), ast.XSDDecimal), true
	case types.FloatValue:
		return ast.NewLiteral(formatFloat32(float32(x)), ast.XSDFloat), true
	case types.DoubleValue:
		return ast.NewLiteral(formatFloat64(float64(x)), ast.XSDDouble), true
	default:
		return ast.Term{}, false
	}
}

func formatFloat32(f float32) string {
	return fmt.Sprintf("%g", f)
}

func formatFloat64(f float64) string {
	return fmt.Sprintf("%g", f)
}

// boolTerm wraps b as an xsd:boolean literal, a helper used throughout the
// operator implementations.
func boolTerm(b bool) ast.Term {
	if b {
		return ast.NewLiteral("true", ast.XSDBoolean)
	}
	return ast.NewLiteral("false", ast.XSDBoolean)
}

func stringTerm(s string) ast.Term {
	return ast.NewLiteral(s, ast.XSDString)
}
