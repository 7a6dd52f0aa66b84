package topdown

import (
	"testing"

	"github.com/jacoscaz/sparqlee/ast"
)

func TestCompareOperatorsAcrossNumericTags(t *testing.T) {
	tests := []struct {
		note string
		op   ast.Operator
		a, b ast.Term
		want bool
	}{
		{"1 = 1.0 across int/decimal", ast.OpEq, intLit("1"), decLit("1.0"), true},
		{"1 != 2", ast.OpNeq, intLit("1"), intLit("2"), true},
		{"1 < 2", ast.OpLt, intLit("1"), intLit("2"), true},
		{"2 <= 2", ast.OpLe, intLit("2"), intLit("2"), true},
		{"3 > 2", ast.OpGt, intLit("3"), intLit("2"), true},
		{"2 >= 3 is false", ast.OpGe, intLit("2"), intLit("3"), false},
	}
	for _, tc := range tests {
		t.Run(tc.note, func(t *testing.T) {
			result, err := dispatch(tc.op, []ast.Term{tc.a, tc.b})
			if err != nil {
				t.Fatalf("dispatch(%s): %v", tc.op, err)
			}
			got := result.Lexical() == "true"
			if got != tc.want {
				t.Errorf("%s(%v, %v) = %v, want %v", tc.op, tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestCompareSameTermVsValueEquality(t *testing.T) {
	a := intLit("1")
	b := decLit("1.0")

	eq, err := dispatch(ast.OpEq, []ast.Term{a, b})
	if err != nil {
		t.Fatalf("dispatch(=, 1, 1.0): %v", err)
	}
	if eq.Lexical() != "true" {
		t.Errorf("1 = 1.0 should hold by value equality")
	}
	if a.SameTerm(b) {
		t.Errorf("sameTerm(1, 1.0) should be false: different datatypes")
	}
}

func TestCompareFallsBackToSameTermForOtherTags(t *testing.T) {
	a := ast.NewNamedNode("http://ex/a")
	b := ast.NewNamedNode("http://ex/a")
	eq, err := dispatch(ast.OpEq, []ast.Term{a, b})
	if err != nil {
		t.Fatalf("dispatch(=, namedNode, namedNode): %v", err)
	}
	if eq.Lexical() != "true" {
		t.Errorf("= over identical NamedNodes should be true")
	}
}

func TestCompareAcrossIncompatibleDatatypesRaises(t *testing.T) {
	a := intLit("1")
	b := ast.NewLiteral("2024-01-01T00:00:00Z", ast.XSDDateTime)
	_, err := dispatch(ast.OpLt, []ast.Term{a, b})
	if !IsError(InvalidArgumentTypesErr, err) {
		t.Fatalf("dispatch(<, integer, dateTime) = %v, want InvalidArgumentTypesError", err)
	}
}
