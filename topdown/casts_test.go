package topdown

import (
	"testing"

	"github.com/jacoscaz/sparqlee/ast"
)

func boolLit(s string) ast.Term { return ast.NewLiteral(s, ast.XSDBoolean) }

func TestCastToString(t *testing.T) {
	tests := []struct {
		note string
		in   ast.Term
		want string
	}{
		{"from string", strLit("hi"), "hi"},
		{"from integer", intLit("42"), "42"},
		{"from boolean", boolLit("true"), "true"},
	}
	for _, tc := range tests {
		result, err := dispatch(ast.OpCastString, []ast.Term{tc.in})
		if err != nil {
			t.Fatalf("%s: xsd:string(%v): %v", tc.note, tc.in, err)
		}
		if result.DatatypeIRI() != ast.XSDString || result.Lexical() != tc.want {
			t.Errorf("%s: xsd:string(%v) = %v, want %q", tc.note, tc.in, result, tc.want)
		}
	}
}

func TestCastToBoolean(t *testing.T) {
	tests := []struct {
		note string
		in   ast.Term
		want string
	}{
		{"string true", strLit("true"), "true"},
		{"string 1", strLit("1"), "true"},
		{"string false", strLit("false"), "false"},
		{"string 0", strLit("0"), "false"},
		{"nonzero integer", intLit("5"), "true"},
		{"zero integer", intLit("0"), "false"},
		{"zero decimal", decLit("0.0"), "false"},
	}
	for _, tc := range tests {
		result, err := dispatch(ast.OpCastBoolean, []ast.Term{tc.in})
		if err != nil {
			t.Fatalf("%s: xsd:boolean(%v): %v", tc.note, tc.in, err)
		}
		if result.Lexical() != tc.want {
			t.Errorf("%s: xsd:boolean(%v) = %v, want %s", tc.note, tc.in, result, tc.want)
		}
	}
}

func TestCastToBooleanRejectsUnparseableString(t *testing.T) {
	_, err := dispatch(ast.OpCastBoolean, []ast.Term{strLit("yes")})
	if !IsError(CastErr, err) {
		t.Fatalf("xsd:boolean(\"yes\") = %v, want CastError", err)
	}
}

func TestCastToInteger(t *testing.T) {
	tests := []struct {
		note string
		in   ast.Term
		want string
	}{
		{"from integer", intLit("7"), "7"},
		{"truncates decimal", decLit("2.9"), "2"},
		{"truncates negative decimal toward zero", decLit("-2.9"), "-2"},
		{"from boolean true", boolLit("true"), "1"},
		{"from boolean false", boolLit("false"), "0"},
		{"from string", strLit("9"), "9"},
	}
	for _, tc := range tests {
		result, err := dispatch(ast.OpCastInteger, []ast.Term{tc.in})
		if err != nil {
			t.Fatalf("%s: xsd:integer(%v): %v", tc.note, tc.in, err)
		}
		if result.DatatypeIRI() != ast.XSDInteger || result.Lexical() != tc.want {
			t.Errorf("%s: xsd:integer(%v) = %v, want %s", tc.note, tc.in, result, tc.want)
		}
	}
}

func TestCastToIntegerRejectsUnparseableString(t *testing.T) {
	_, err := dispatch(ast.OpCastInteger, []ast.Term{strLit("abc")})
	if !IsError(CastErr, err) {
		t.Fatalf("xsd:integer(\"abc\") = %v, want CastError", err)
	}
}

func TestCastToDecimal(t *testing.T) {
	tests := []struct {
		note string
		in   ast.Term
		want string
	}{
		{"from integer", intLit("3"), "3"},
		{"from decimal", decLit("1.5"), "1.5"},
		{"from boolean", boolLit("true"), "1"},
		{"from string", strLit("2.25"), "2.25"},
	}
	for _, tc := range tests {
		result, err := dispatch(ast.OpCastDecimal, []ast.Term{tc.in})
		if err != nil {
			t.Fatalf("%s: xsd:decimal(%v): %v", tc.note, tc.in, err)
		}
		if result.DatatypeIRI() != ast.XSDDecimal || result.Lexical() != tc.want {
			t.Errorf("%s: xsd:decimal(%v) = %v, want %s", tc.note, tc.in, result, tc.want)
		}
	}
}

func TestCastToFloat(t *testing.T) {
	result, err := dispatch(ast.OpCastFloat, []ast.Term{intLit("4")})
	if err != nil {
		t.Fatalf("xsd:float(4): %v", err)
	}
	if result.DatatypeIRI() != ast.XSDFloat || result.Lexical() != "4" {
		t.Errorf("xsd:float(4) = %v, want 4^^xsd:float", result)
	}
}

func TestCastToDouble(t *testing.T) {
	result, err := dispatch(ast.OpCastDouble, []ast.Term{strLit("2.5")})
	if err != nil {
		t.Fatalf("xsd:double(\"2.5\"): %v", err)
	}
	if result.DatatypeIRI() != ast.XSDDouble || result.Lexical() != "2.5" {
		t.Errorf("xsd:double(\"2.5\") = %v, want 2.5^^xsd:double", result)
	}
}

func TestCastToDoubleRejectsUnparseableString(t *testing.T) {
	_, err := dispatch(ast.OpCastDouble, []ast.Term{strLit("not-a-number")})
	if !IsError(CastErr, err) {
		t.Fatalf("xsd:double(\"not-a-number\") = %v, want CastError", err)
	}
}

func TestCastToDateTime(t *testing.T) {
	dt := ast.NewLiteral("2024-01-01T00:00:00Z", ast.XSDDateTime)
	result, err := dispatch(ast.OpCastDateTime, []ast.Term{dt})
	if err != nil {
		t.Fatalf("xsd:dateTime(dateTime): %v", err)
	}
	if result.Lexical() != "2024-01-01T00:00:00Z" {
		t.Errorf("xsd:dateTime(dateTime) = %v, want pass-through", result)
	}

	result, err = dispatch(ast.OpCastDateTime, []ast.Term{strLit("2024-01-01T00:00:00Z")})
	if err != nil {
		t.Fatalf("xsd:dateTime(string): %v", err)
	}
	if result.DatatypeIRI() != ast.XSDDateTime {
		t.Errorf("xsd:dateTime(string) = %v, want xsd:dateTime", result)
	}
}

func TestCastToDateTimeRejectsMalformedString(t *testing.T) {
	_, err := dispatch(ast.OpCastDateTime, []ast.Term{strLit("not-a-date")})
	if !IsError(CastErr, err) {
		t.Fatalf("xsd:dateTime(\"not-a-date\") = %v, want CastError", err)
	}
}
