package topdown

import (
	"context"
	"testing"
	"time"

	"github.com/jacoscaz/sparqlee/ast"
)

func TestEvaluateVariableAndTerm(t *testing.T) {
	e := NewEvaluator(Hooks{})
	mapping := ast.Mapping{"x": intLit("1")}

	v, err := e.Evaluate(context.Background(), ast.NewVariable("x"), mapping)
	if err != nil || v.Lexical() != "1" {
		t.Fatalf("Evaluate(?x) = %v, %v", v, err)
	}

	_, err = e.Evaluate(context.Background(), ast.NewVariable("y"), mapping)
	if !IsError(UnboundVariableErr, err) {
		t.Fatalf("Evaluate(?y) unbound = %v, want UnboundVariableError", err)
	}

	term, err := e.Evaluate(context.Background(), ast.NewTermExpression(strLit("hi")), mapping)
	if err != nil || term.Lexical() != "hi" {
		t.Fatalf("Evaluate(constant) = %v, %v", term, err)
	}
}

func TestEvaluateNestedOperatorExpression(t *testing.T) {
	e := NewEvaluator(Hooks{})
	expr := ast.NewOperatorExpression(ast.OpAdd,
		ast.NewOperatorExpression(ast.OpMul, ast.NewTermExpression(intLit("2")), ast.NewTermExpression(intLit("3"))),
		ast.NewTermExpression(intLit("1")))
	result, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if err != nil || result.Lexical() != "7" {
		t.Fatalf("Evaluate((2*3)+1) = %v, %v, want 7", result, err)
	}
}

func TestEvaluateCancellation(t *testing.T) {
	e := NewEvaluator(Hooks{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Evaluate(ctx, ast.NewTermExpression(intLit("1")), ast.Mapping{})
	if !IsError(CancelledErr, err) {
		t.Fatalf("Evaluate with cancelled context = %v, want CancelledError", err)
	}
}

func TestEvaluateAggregateAlwaysFails(t *testing.T) {
	e := NewEvaluator(Hooks{})
	expr := ast.NewAggregateExpression("SUM", false, ast.NewVariable("x"))
	_, err := e.Evaluate(context.Background(), expr, ast.Mapping{"x": intLit("1")})
	if !IsError(UnexpectedAggregateErr, err) {
		t.Fatalf("Evaluate(aggregate) = %v, want UnexpectedAggregateError", err)
	}
}

func TestEvaluateExistence(t *testing.T) {
	hooks := Hooks{
		EvaluateExists: func(ctx context.Context, algebra any, mapping ast.Mapping) (bool, error) {
			return true, nil
		},
	}
	e := NewEvaluator(hooks)

	result, err := e.Evaluate(context.Background(), ast.NewExistenceExpression(nil, false), ast.Mapping{})
	if err != nil || result.Lexical() != "true" {
		t.Fatalf("EXISTS = %v, %v, want true", result, err)
	}

	negated, err := e.Evaluate(context.Background(), ast.NewExistenceExpression(nil, true), ast.Mapping{})
	if err != nil || negated.Lexical() != "false" {
		t.Fatalf("NOT EXISTS = %v, %v, want false", negated, err)
	}
}

func TestEvaluateNamedExtension(t *testing.T) {
	hooks := Hooks{
		LookupExtension: func(iri string) (Extension, bool) {
			if iri != "http://ex/double" {
				return Extension{}, false
			}
			return Extension{
				Arity: 1,
				Func: func(ctx context.Context, args []ast.Term) (ast.Term, error) {
					return dispatch(ast.OpAdd, []ast.Term{args[0], args[0]})
				},
			}, true
		},
	}
	e := NewEvaluator(hooks)
	expr := ast.NewNamedExpression("http://ex/double", ast.NewTermExpression(intLit("3")))
	result, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if err != nil || result.Lexical() != "6" {
		t.Fatalf("double(3) = %v, %v, want 6", result, err)
	}
}

func TestEvaluateUnknownNamedExtension(t *testing.T) {
	e := NewEvaluator(Hooks{})
	expr := ast.NewNamedExpression("http://ex/missing")
	_, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if !IsError(UnknownNamedOperatorErr, err) {
		t.Fatalf("Evaluate(unknown extension) = %v, want UnknownNamedOperatorError", err)
	}
}

func TestEvaluateIRIResolution(t *testing.T) {
	hooks := Hooks{
		ResolveIRI: func(base, relative string) (string, error) {
			return "http://ex/" + relative, nil
		},
	}
	e := NewEvaluator(hooks)
	expr := ast.NewOperatorExpression(ast.OpIRI, ast.NewTermExpression(strLit("a")))
	result, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if err != nil || result.Kind() != ast.KindNamedNode || result.IRI() != "http://ex/a" {
		t.Fatalf("IRI(\"a\") = %v, %v, want http://ex/a", result, err)
	}
}

func TestEvaluateNowIsPinnedPerEvaluator(t *testing.T) {
	instant := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hooks := Hooks{Now: func() time.Time { return instant }}
	e := NewEvaluator(hooks)

	expr := ast.NewOperatorExpression(ast.OpNow)
	a, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if err != nil {
		t.Fatalf("NOW(): %v", err)
	}
	b, err := e.Evaluate(context.Background(), expr, ast.Mapping{})
	if err != nil {
		t.Fatalf("NOW(): %v", err)
	}
	if a.Lexical() != b.Lexical() {
		t.Fatalf("NOW() should be stable within one evaluator: %v != %v", a, b)
	}
}
