package topdown

import (
	"context"
	"time"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/logging"
)

// Option configures an Evaluator at construction time, following the
// teacher's functional-options pattern for topdown.Query/rego.New.
type Option func(*Evaluator)

// WithLogger overrides the evaluator's logger (default NoOpLogger).
func WithLogger(logger logging.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// WithExtensions seeds the evaluator's extension-function table. Extensions
// registered this way are consulted before Hooks.LookupExtension.
func WithExtensions(extensions map[string]Extension) Option {
	return func(e *Evaluator) {
		for iri, ext := range extensions {
			e.extensions[iri] = ext
		}
	}
}

// Evaluator ties the term model, function registry, and special-form
// evaluator together into the single tree-walking evaluation entry point
// spec.md §4.4 describes. It is safe for concurrent use across distinct
// Evaluate calls: all of its state (hooks, logger, extensions) is
// established at construction and never mutated afterward.
type Evaluator struct {
	hooks      Hooks
	logger     logging.Logger
	extensions map[string]Extension
	now        time.Time
}

// NewEvaluator builds an Evaluator. Hooks not supplied fall back to the
// no-op defaults documented on Hooks. now() is sampled once here, not
// re-sampled per NOW() occurrence within one Evaluate call tree, matching
// spec.md §6's requirement that NOW() be stable within a single evaluation.
func NewEvaluator(hooks Hooks, opts ...Option) *Evaluator {
	hooks = hooks.withDefaults()
	e := &Evaluator{
		hooks:      hooks,
		logger:     logging.NewNoOpLogger(),
		extensions: make(map[string]Extension),
		now:        hooks.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate is the public entry point: given an expression tree and a
// solution mapping, it returns the denoted Term or a *Error. It recurses
// node-by-node over every ast.Expression variant (spec.md §4.4); context
// cancellation is checked at every such boundary, surfacing as
// CancelledError rather than letting a cancelled context fail silently
// deep in the tree.
func (e *Evaluator) Evaluate(ctx context.Context, expr ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if err := ctx.Err(); err != nil {
		return ast.Term{}, errCancelled()
	}
	switch node := expr.(type) {
	case *ast.VariableExpression:
		return e.evalVariable(node, mapping)
	case *ast.TermExpression:
		return node.Term, nil
	case *ast.OperatorExpression:
		return e.evalOperator(ctx, node, mapping)
	case *ast.NamedExpression:
		return e.evalNamed(ctx, node, mapping)
	case *ast.ExistenceExpression:
		return e.evalExistence(ctx, node, mapping)
	case *ast.AggregateExpression:
		return ast.Term{}, errUnexpectedAggregate(node.Name)
	default:
		return ast.Term{}, errUnknownNamedOperator("<unrecognised expression node>")
	}
}

func (e *Evaluator) evalVariable(node *ast.VariableExpression, mapping ast.Mapping) (ast.Term, error) {
	t, ok := mapping.Lookup(node.Name)
	if !ok {
		return ast.Term{}, errUnboundVariable(node.Name)
	}
	return t, nil
}

func (e *Evaluator) evalOperator(ctx context.Context, node *ast.OperatorExpression, mapping ast.Mapping) (ast.Term, error) {
	if ast.IsSpecialForm(node.Operator) {
		return e.evalSpecialForm(ctx, node, mapping)
	}

	switch node.Operator {
	case ast.OpIRI:
		return e.evalIRI(ctx, node.Args, mapping)
	case ast.OpNow:
		return e.evalNow(node.Args)
	}

	args := make([]ast.Term, len(node.Args))
	for i, a := range node.Args {
		t, err := e.Evaluate(ctx, a, mapping)
		if err != nil {
			return ast.Term{}, err
		}
		args[i] = t
	}

	e.logger.Debug(map[string]any{"operator": string(node.Operator), "arity": len(args)}, "dispatching operator")
	result, err := dispatch(node.Operator, args)
	if err != nil {
		e.logger.Debug(map[string]any{"operator": string(node.Operator)}, "operator dispatch failed: %v", err)
	}
	return result, err
}

// evalIRI implements IRI(): a NamedNode argument is returned as is; a
// literal argument's lexical form is resolved via Hooks.ResolveIRI (called
// with an empty base), since only the host knows the query's base
// (spec.md §6).
func (e *Evaluator) evalIRI(ctx context.Context, argExprs []ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	if len(argExprs) != 1 {
		return ast.Term{}, errInvalidArity(ast.OpIRI, len(argExprs), 1)
	}
	arg, err := e.Evaluate(ctx, argExprs[0], mapping)
	if err != nil {
		return ast.Term{}, err
	}
	var relative string
	switch arg.Kind() {
	case ast.KindNamedNode:
		return arg, nil
	case ast.KindLiteral:
		relative = arg.Lexical()
	default:
		return ast.Term{}, errInvalidArgumentTypes(ast.OpIRI, []string{"blankNode"})
	}
	resolved, err := e.hooks.ResolveIRI("", relative)
	if err != nil {
		return ast.Term{}, errInvalidArgumentTypes(ast.OpIRI, []string{"string"})
	}
	return ast.NewNamedNode(resolved), nil
}

// evalNow implements NOW(), returning the instant pinned at evaluator
// construction rather than re-sampling Hooks.Now.
func (e *Evaluator) evalNow(argExprs []ast.Expression) (ast.Term, error) {
	if len(argExprs) != 0 {
		return ast.Term{}, errInvalidArity(ast.OpNow, len(argExprs), 0)
	}
	return ast.NewLiteral(e.now.Format(time.RFC3339Nano), ast.XSDDateTime), nil
}

// evalNamed resolves a NamedExpression against the extension registry,
// checking the evaluator's own table before falling back to
// Hooks.LookupExtension (spec.md §6).
func (e *Evaluator) evalNamed(ctx context.Context, node *ast.NamedExpression, mapping ast.Mapping) (ast.Term, error) {
	ext, ok := e.extensions[node.IRI]
	if !ok {
		ext, ok = e.hooks.LookupExtension(node.IRI)
	}
	if !ok {
		return ast.Term{}, errUnknownNamedOperator(node.IRI)
	}
	if ext.Arity >= 0 && len(node.Args) != ext.Arity {
		return ast.Term{}, errInvalidArity(ast.Operator(node.IRI), len(node.Args), ext.Arity)
	}
	args := make([]ast.Term, len(node.Args))
	for i, a := range node.Args {
		t, err := e.Evaluate(ctx, a, mapping)
		if err != nil {
			return ast.Term{}, err
		}
		args[i] = t
	}
	return ext.Func(ctx, args)
}

func (e *Evaluator) evalExistence(ctx context.Context, node *ast.ExistenceExpression, mapping ast.Mapping) (ast.Term, error) {
	exists, err := e.hooks.EvaluateExists(ctx, node.Algebra, mapping)
	if err != nil {
		return ast.Term{}, err
	}
	if node.Negated {
		exists = !exists
	}
	return boolTerm(exists), nil
}
