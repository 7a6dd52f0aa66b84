package topdown

import (
	"context"
	"testing"

	"github.com/jacoscaz/sparqlee/ast"
)

func evalExpr(t *testing.T, expr ast.Expression, mapping ast.Mapping) (ast.Term, error) {
	t.Helper()
	e := NewEvaluator(Hooks{})
	return e.Evaluate(context.Background(), expr, mapping)
}

func trueExpr() ast.Expression  { return ast.NewTermExpression(boolTerm(true)) }
func falseExpr() ast.Expression { return ast.NewTermExpression(boolTerm(false)) }
func errExpr() ast.Expression   { return ast.NewVariable("undefined") }

func TestBound(t *testing.T) {
	bound, err := evalExpr(t, ast.NewOperatorExpression(ast.OpBound, ast.NewVariable("x")), ast.Mapping{"x": strLit("a")})
	if err != nil || bound.Lexical() != "true" {
		t.Fatalf("BOUND(?x) with x bound = %v, %v", bound, err)
	}
	unbound, err := evalExpr(t, ast.NewOperatorExpression(ast.OpBound, ast.NewVariable("y")), ast.Mapping{})
	if err != nil || unbound.Lexical() != "false" {
		t.Fatalf("BOUND(?y) with y unbound = %v, %v", unbound, err)
	}
}

func TestBoundRejectsNonVariable(t *testing.T) {
	_, err := evalExpr(t, ast.NewOperatorExpression(ast.OpBound, ast.NewTermExpression(strLit("a"))), ast.Mapping{})
	if !IsError(InvalidArgumentTypesErr, err) {
		t.Fatalf("BOUND(constant) = %v, want InvalidArgumentTypesError", err)
	}
}

func TestIf(t *testing.T) {
	result, err := evalExpr(t, ast.NewOperatorExpression(ast.OpIf, trueExpr(), ast.NewTermExpression(strLit("yes")), ast.NewTermExpression(strLit("no"))), ast.Mapping{})
	if err != nil || result.Lexical() != "yes" {
		t.Fatalf("IF(true, yes, no) = %v, %v", result, err)
	}
}

func TestCoalesce(t *testing.T) {
	result, err := evalExpr(t, ast.NewOperatorExpression(ast.OpCoalesce, errExpr(), ast.NewTermExpression(strLit("fallback"))), ast.Mapping{})
	if err != nil || result.Lexical() != "fallback" {
		t.Fatalf("COALESCE(error, fallback) = %v, %v", result, err)
	}
}

func TestCoalesceAllFail(t *testing.T) {
	_, err := evalExpr(t, ast.NewOperatorExpression(ast.OpCoalesce, errExpr(), errExpr()), ast.Mapping{})
	if !IsError(CoalesceErr, err) {
		t.Fatalf("COALESCE(error, error) = %v, want CoalesceError", err)
	}
}

func TestOrTruthTable(t *testing.T) {
	tests := []struct {
		note    string
		a, b    ast.Expression
		want    string
		wantErr bool
	}{
		{"T|T", trueExpr(), trueExpr(), "true", false},
		{"T|F", trueExpr(), falseExpr(), "true", false},
		{"T|E", trueExpr(), errExpr(), "true", false},
		{"F|T", falseExpr(), trueExpr(), "true", false},
		{"F|F", falseExpr(), falseExpr(), "false", false},
		{"F|E", falseExpr(), errExpr(), "", true},
		{"E|T", errExpr(), trueExpr(), "true", false},
		{"E|F", errExpr(), falseExpr(), "", true},
		{"E|E", errExpr(), errExpr(), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			result, err := evalExpr(t, ast.NewOperatorExpression(ast.OpOr, tc.a, tc.b), ast.Mapping{})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("%s = %v, want an error", tc.note, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: %v", tc.note, err)
			}
			if result.Lexical() != tc.want {
				t.Errorf("%s = %v, want %v", tc.note, result.Lexical(), tc.want)
			}
		})
	}
}

func TestAndTruthTable(t *testing.T) {
	tests := []struct {
		note    string
		a, b    ast.Expression
		want    string
		wantErr bool
	}{
		{"T&T", trueExpr(), trueExpr(), "true", false},
		{"T&F", trueExpr(), falseExpr(), "false", false},
		{"T&E", trueExpr(), errExpr(), "", true},
		{"F&T", falseExpr(), trueExpr(), "false", false},
		{"F&F", falseExpr(), falseExpr(), "false", false},
		{"F&E", falseExpr(), errExpr(), "false", false},
		{"E&T", errExpr(), trueExpr(), "", true},
		{"E&F", errExpr(), falseExpr(), "false", false},
		{"E&E", errExpr(), errExpr(), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			result, err := evalExpr(t, ast.NewOperatorExpression(ast.OpAnd, tc.a, tc.b), ast.Mapping{})
			if tc.wantErr {
				if err == nil {
					t.Fatalf("%s = %v, want an error", tc.note, result)
				}
				return
			}
			if err != nil {
				t.Fatalf("%s: %v", tc.note, err)
			}
			if result.Lexical() != tc.want {
				t.Errorf("%s = %v, want %v", tc.note, result.Lexical(), tc.want)
			}
		})
	}
}

func TestSameTermVsValueEquality(t *testing.T) {
	expr := ast.NewOperatorExpression(ast.OpSameTerm,
		ast.NewTermExpression(intLit("1")),
		ast.NewTermExpression(decLit("1.0")))
	result, err := evalExpr(t, expr, ast.Mapping{})
	if err != nil || result.Lexical() != "false" {
		t.Fatalf("sameTerm(1, 1.0) = %v, %v, want false", result, err)
	}
}

func TestInMatches(t *testing.T) {
	expr := ast.NewOperatorExpression(ast.OpIn,
		ast.NewTermExpression(intLit("2")),
		ast.NewTermExpression(intLit("1")),
		ast.NewTermExpression(intLit("2")),
		ast.NewTermExpression(intLit("3")))
	result, err := evalExpr(t, expr, ast.Mapping{})
	if err != nil || result.Lexical() != "true" {
		t.Fatalf("IN(2, 1, 2, 3) = %v, %v, want true", result, err)
	}
}

func TestInNoMatchNoErrors(t *testing.T) {
	expr := ast.NewOperatorExpression(ast.OpIn,
		ast.NewTermExpression(intLit("5")),
		ast.NewTermExpression(intLit("1")),
		ast.NewTermExpression(intLit("2")))
	result, err := evalExpr(t, expr, ast.Mapping{})
	if err != nil || result.Lexical() != "false" {
		t.Fatalf("IN(5, 1, 2) = %v, %v, want false", result, err)
	}
}

func TestInAccumulatesErrorsWhenNoMatch(t *testing.T) {
	expr := ast.NewOperatorExpression(ast.OpIn,
		ast.NewTermExpression(intLit("5")),
		errExpr(),
		ast.NewTermExpression(intLit("2")),
		errExpr())
	_, err := evalExpr(t, expr, ast.Mapping{})
	te, ok := err.(*Error)
	if !ok || te.Code != InErr {
		t.Fatalf("IN with two errors and no match = %v, want InError", err)
	}
	if len(te.Causes) != 2 {
		t.Fatalf("IN should accumulate both errors, got %d causes", len(te.Causes))
	}
}

func TestNotIn(t *testing.T) {
	expr := ast.NewOperatorExpression(ast.OpNotIn,
		ast.NewTermExpression(intLit("5")),
		ast.NewTermExpression(intLit("1")),
		ast.NewTermExpression(intLit("2")))
	result, err := evalExpr(t, expr, ast.Mapping{})
	if err != nil || result.Lexical() != "true" {
		t.Fatalf("NOT IN(5, 1, 2) = %v, %v, want true", result, err)
	}
}
