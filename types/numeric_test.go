package types

import (
	"testing"

	"github.com/jacoscaz/sparqlee/ast"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want Tag
	}{
		{TagInteger, TagInteger, TagInteger},
		{TagInteger, TagDecimal, TagDecimal},
		{TagDecimal, TagInteger, TagDecimal},
		{TagDecimal, TagFloat, TagFloat},
		{TagFloat, TagDouble, TagDouble},
		{TagDouble, TagInteger, TagDouble},
	}
	for _, tc := range tests {
		if got := Join(tc.a, tc.b); got != tc.want {
			t.Errorf("Join(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPromote(t *testing.T) {
	intVal := TypedValue(ast.NewLiteral("3", ast.XSDInteger))

	decimal, err := Promote(intVal, TagDecimal)
	if err != nil {
		t.Fatalf("Promote(integer, decimal): %v", err)
	}
	if decimal.Tag() != TagDecimal {
		t.Fatalf("Promote(integer, decimal).Tag() = %v, want decimal", decimal.Tag())
	}

	double, err := Promote(intVal, TagDouble)
	if err != nil {
		t.Fatalf("Promote(integer, double): %v", err)
	}
	if ToFloat64(double) != 3 {
		t.Fatalf("Promote(integer, double) = %v, want 3", ToFloat64(double))
	}

	if _, err := Promote(decimal, TagInteger); err == nil {
		t.Fatal("expected an error demoting decimal to integer")
	}
}

func TestPromoteNonLexicalFails(t *testing.T) {
	nonLexical := TypedValue(ast.NewLiteral("042", ast.XSDInteger))
	if _, err := Promote(nonLexical, TagDecimal); err != ErrNonLexicalPromotion {
		t.Fatalf("Promote(nonLexical, decimal) = %v, want ErrNonLexicalPromotion", err)
	}
}
