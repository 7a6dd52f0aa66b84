package types

import (
	"testing"

	"github.com/jacoscaz/sparqlee/ast"
)

func TestCompareNumericAcrossTags(t *testing.T) {
	a := ast.NewLiteral("1", ast.XSDInteger)
	b := ast.NewLiteral("1.0", ast.XSDDecimal)
	c, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare(1, 1.0): %v", err)
	}
	if c != 0 {
		t.Errorf("Compare(1, 1.0) = %d, want 0 (value-equal across tags)", c)
	}

	d := ast.NewLiteral("2", ast.XSDInteger)
	c2, err := Compare(a, d)
	if err != nil {
		t.Fatalf("Compare(1, 2): %v", err)
	}
	if c2 >= 0 {
		t.Errorf("Compare(1, 2) = %d, want < 0", c2)
	}
}

func TestCompareStrings(t *testing.T) {
	a := ast.NewLiteral("apple", ast.XSDString)
	b := ast.NewLiteral("banana", ast.XSDString)
	c, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare(apple, banana): %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare(apple, banana) = %d, want < 0", c)
	}
}

func TestCompareIncomparable(t *testing.T) {
	a := ast.NewLiteral("1", ast.XSDInteger)
	b := ast.NewLiteral("2024-01-01T00:00:00Z", ast.XSDDateTime)
	if _, err := Compare(a, b); err != ErrIncomparable {
		t.Fatalf("Compare(integer, dateTime) = %v, want ErrIncomparable", err)
	}
}

func TestCompareBlankAndNamedOrdering(t *testing.T) {
	bnode := ast.NewBlankNode("b1")
	named := ast.NewNamedNode("http://ex/a")
	c, err := Compare(bnode, named)
	if err != nil {
		t.Fatalf("Compare(blank, named): %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare(blank, named) = %d, want < 0 (blank nodes order before named nodes)", c)
	}
}
