package types

import (
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/jacoscaz/sparqlee/ast"
)

// Value is the typed-value view of a literal: a tagged union dispatched by
// Tag(), mirroring the teacher's ast.Value closed-interface sum type.
type Value interface {
	Tag() Tag
}

// StringValue is the xsd:string typed value.
type StringValue struct {
	Lexical string
}

// Tag implements Value.
func (StringValue) Tag() Tag { return TagString }

// LangStringValue is the rdf:langString typed value.
type LangStringValue struct {
	Lexical string
	Lang    string
}

// Tag implements Value.
func (LangStringValue) Tag() Tag { return TagLangString }

// BooleanValue is the xsd:boolean typed value.
type BooleanValue bool

// Tag implements Value.
func (BooleanValue) Tag() Tag { return TagBoolean }

// IntegerValue is the xsd:integer (and subtype) typed value, backed by an
// exact apd.Decimal with zero exponent (spec.md's "arbitrary-precision
// integer"; see DESIGN.md for why apd.Decimal covers both integer and
// decimal storage).
type IntegerValue struct {
	D apd.Decimal
}

// Tag implements Value.
func (IntegerValue) Tag() Tag { return TagInteger }

// DecimalValue is the xsd:decimal typed value.
type DecimalValue struct {
	D apd.Decimal
}

// Tag implements Value.
func (DecimalValue) Tag() Tag { return TagDecimal }

// FloatValue is the xsd:float (IEEE-754 32-bit) typed value.
type FloatValue float32

// Tag implements Value.
func (FloatValue) Tag() Tag { return TagFloat }

// DoubleValue is the xsd:double (IEEE-754 64-bit) typed value.
type DoubleValue float64

// Tag implements Value.
func (DoubleValue) Tag() Tag { return TagDouble }

// DateTimeValue is the xsd:dateTime typed value.
type DateTimeValue struct {
	T time.Time
	// HasOffset records whether the lexical form carried a timezone offset.
	// TIMEZONE and TZ read it; Compare orders by T alone, and a form
	// without an offset parses as UTC.
	HasOffset bool
}

// Tag implements Value.
func (DateTimeValue) Tag() Tag { return TagDateTime }

// NonLexicalValue is an ill-typed literal: a lexical form that does not
// parse under its stated numeric/boolean/dateTime datatype (invariant I1).
type NonLexicalValue struct {
	Lexical  string
	Datatype string
}

// Tag implements Value.
func (NonLexicalValue) Tag() Tag { return TagNonLexical }

// OtherValue is a literal whose datatype is none of the recognised XSD/RDF
// datatypes in spec.md §3's table.
type OtherValue struct {
	Lexical  string
	Datatype string
}

// Tag implements Value.
func (OtherValue) Tag() Tag { return TagOther }

// TypedValue classifies a Literal term into its typed-value view (spec.md
// §3/§4.1). It panics if t is not a Literal; callers that may hold
// NamedNode/BlankNode terms check t.Kind() first (as do CoerceEBV and
// Compare in this package).
func TypedValue(t ast.Term) Value {
	datatype := t.DatatypeIRI()
	lexical := t.Lexical()

	switch {
	case datatype == ast.XSDString:
		return StringValue{Lexical: lexical}
	case datatype == ast.RDFLangString:
		return LangStringValue{Lexical: lexical, Lang: t.Lang()}
	case datatype == ast.XSDBoolean:
		b, ok := parseBoolean(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return BooleanValue(b)
	case ast.IsIntegerDatatype(datatype):
		d, ok := ParseInteger(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return IntegerValue{D: d}
	case datatype == ast.XSDDecimal:
		d, ok := ParseDecimal(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return DecimalValue{D: d}
	case datatype == ast.XSDFloat:
		f, ok := parseFloat32(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return FloatValue(f)
	case datatype == ast.XSDDouble:
		f, ok := ParseFloat64(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return DoubleValue(f)
	case datatype == ast.XSDDateTime:
		tm, hasOffset, ok := ParseDateTime(lexical)
		if !ok {
			return NonLexicalValue{Lexical: lexical, Datatype: datatype}
		}
		return DateTimeValue{T: tm, HasOffset: hasOffset}
	default:
		return OtherValue{Lexical: lexical, Datatype: datatype}
	}
}
