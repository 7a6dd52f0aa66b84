package topdown

import (
	"context"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// evalSpecialForm handles the special functional forms of spec.md §4.3:
// BOUND, IF, COALESCE, ||, &&, sameTerm, IN, NOT IN. Unlike regular
// operators these receive unevaluated sub-expressions plus an evaluator
// callback, since several of them must not evaluate every argument (or
// must evaluate some only conditionally on the others' outcome).
func (e *Evaluator) evalSpecialForm(ctx context.Context, expr *ast.OperatorExpression, mapping ast.Mapping) (ast.Term, error) {
	switch expr.Operator {
	case ast.OpBound:
		return e.evalBound(expr.Args, mapping)
	case ast.OpIf:
		return e.evalIf(ctx, expr.Args, mapping)
	case ast.OpCoalesce:
		return e.evalCoalesce(ctx, expr.Args, mapping)
	case ast.OpOr:
		return e.evalOr(ctx, expr.Args, mapping)
	case ast.OpAnd:
		return e.evalAnd(ctx, expr.Args, mapping)
	case ast.OpSameTerm:
		return e.evalSameTerm(ctx, expr.Args, mapping)
	case ast.OpIn:
		return e.evalIn(ctx, expr.Args, mapping, false)
	case ast.OpNotIn:
		return e.evalIn(ctx, expr.Args, mapping, true)
	default:
		return ast.Term{}, errUnknownNamedOperator(string(expr.Operator))
	}
}

func (e *Evaluator) evalBound(args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) != 1 {
		return ast.Term{}, errInvalidArity(ast.OpBound, len(args), 1)
	}
	v, ok := args[0].(*ast.VariableExpression)
	if !ok {
		return ast.Term{}, errInvalidArgumentTypes(ast.OpBound, []string{"non-variable"})
	}
	_, bound := mapping.Lookup(v.Name)
	return boolTerm(bound), nil
}

func (e *Evaluator) evalIf(ctx context.Context, args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) != 3 {
		return ast.Term{}, errInvalidArity(ast.OpIf, len(args), 3)
	}
	cond, err := e.Evaluate(ctx, args[0], mapping)
	if err != nil {
		return ast.Term{}, err
	}
	ebv, err := types.CoerceEBV(cond)
	if err != nil {
		return ast.Term{}, errEBV()
	}
	if ebv {
		return e.Evaluate(ctx, args[1], mapping)
	}
	return e.Evaluate(ctx, args[2], mapping)
}

func (e *Evaluator) evalCoalesce(ctx context.Context, args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) == 0 {
		return ast.Term{}, errInvalidArity(ast.OpCoalesce, 0, 1)
	}
	var causes []error
	for _, a := range args {
		t, err := e.Evaluate(ctx, a, mapping)
		if err == nil {
			return t, nil
		}
		causes = append(causes, err)
	}
	return ast.Term{}, errCoalesce(causes)
}

// evalOr implements the 3x3 truth table of spec.md §8: T|T=T, T|F=T, T|E=T,
// F|T=T, F|F=F, F|E=E, E|T=T, E|F=E, E|E=E.
func (e *Evaluator) evalOr(ctx context.Context, args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) != 2 {
		return ast.Term{}, errInvalidArity(ast.OpOr, len(args), 2)
	}
	leftOK, leftVal, leftErr := e.evalEBV(ctx, args[0], mapping)
	if leftOK && leftVal {
		return boolTerm(true), nil
	}
	rightOK, rightVal, rightErr := e.evalEBV(ctx, args[1], mapping)
	if rightOK && rightVal {
		return boolTerm(true), nil
	}
	if leftErr != nil {
		return ast.Term{}, leftErr
	}
	if rightErr != nil {
		return ast.Term{}, rightErr
	}
	return boolTerm(false), nil
}

// evalAnd implements: T&T=T, T&F=F, T&E=E, F&T=F, F&F=F, F&E=F, E&T=E,
// E&F=F, E&E=E.
func (e *Evaluator) evalAnd(ctx context.Context, args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) != 2 {
		return ast.Term{}, errInvalidArity(ast.OpAnd, len(args), 2)
	}
	leftOK, leftVal, leftErr := e.evalEBV(ctx, args[0], mapping)
	if leftOK && !leftVal {
		return boolTerm(false), nil
	}
	rightOK, rightVal, rightErr := e.evalEBV(ctx, args[1], mapping)
	if rightOK && !rightVal {
		return boolTerm(false), nil
	}
	if leftErr != nil {
		return ast.Term{}, leftErr
	}
	if rightErr != nil {
		return ast.Term{}, rightErr
	}
	return boolTerm(true), nil
}

// evalEBV evaluates expr and coerces it to an Effective Boolean Value,
// returning (false, false, err) on either evaluation or coercion failure so
// callers can distinguish "saw an error" from "saw a confirmed false".
func (e *Evaluator) evalEBV(ctx context.Context, expr ast.Expression, mapping ast.Mapping) (ok bool, value bool, err error) {
	t, evalErr := e.Evaluate(ctx, expr, mapping)
	if evalErr != nil {
		return false, false, evalErr
	}
	ebv, coerceErr := types.CoerceEBV(t)
	if coerceErr != nil {
		return false, false, errEBV()
	}
	return true, ebv, nil
}

// evalSameTerm evaluates both operands strictly left-to-right (spec.md's
// resolution of the Open Question: the source's concurrent scheduling has
// no observable difference for pure sub-expressions, but extension
// functions may have side effects, so this evaluator commits to sequential
// left-to-right order).
func (e *Evaluator) evalSameTerm(ctx context.Context, args []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(args) != 2 {
		return ast.Term{}, errInvalidArity(ast.OpSameTerm, len(args), 2)
	}
	a, err := e.Evaluate(ctx, args[0], mapping)
	if err != nil {
		return ast.Term{}, err
	}
	b, err := e.Evaluate(ctx, args[1], mapping)
	if err != nil {
		return ast.Term{}, err
	}
	return boolTerm(a.SameTerm(b)), nil
}

// evalIn implements IN/NOT IN with the corrected semantics spec.md's Design
// Notes call for: every candidate is awaited and its outcome accumulated,
// never dropped on the non-match branch. x is evaluated once; each yᵢ is
// evaluated and tested for value-equality against x in order. A match
// short-circuits to true (negated to false for NOT IN); if the list is
// exhausted with every test false, the result is false (negated to true);
// if at least one yᵢ raised and none matched, the whole form fails with
// InError carrying every recorded cause.
func (e *Evaluator) evalIn(ctx context.Context, args []ast.Expression, mapping ast.Mapping, negate bool) (ast.Term, error) {
	op := ast.OpIn
	if negate {
		op = ast.OpNotIn
	}
	if len(args) == 0 {
		return ast.Term{}, errInvalidArity(op, 0, 1)
	}
	x, err := e.Evaluate(ctx, args[0], mapping)
	if err != nil {
		return ast.Term{}, err
	}
	var causes []error
	for _, y := range args[1:] {
		yt, err := e.Evaluate(ctx, y, mapping)
		if err != nil {
			causes = append(causes, err)
			continue
		}
		eq, err := dispatch(ast.OpEq, []ast.Term{x, yt})
		if err != nil {
			causes = append(causes, err)
			continue
		}
		matched, _ := types.CoerceEBV(eq)
		if matched {
			return boolTerm(!negate), nil
		}
	}
	if len(causes) > 0 {
		return ast.Term{}, errIn(causes)
	}
	return boolTerm(negate), nil
}
