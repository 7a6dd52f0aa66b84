package ast

// Well-known datatype and vocabulary IRIs recognised by the typed-value
// classifier in package types. Grounded on the XSD/RDF namespaces the
// SPARQL 1.1 spec requires; the teacher's ast.Builtins carries the same
// "package-level var table of well-known names" shape for its builtins.
const (
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDInteger  = XSDNamespace + "integer"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"
	XSDDateTime = XSDNamespace + "dateTime"

	RDFLangString = RDFNamespace + "langString"
)

// xsdIntegerSubtypes lists the xsd:integer-derived datatypes that classify
// to the integer type tag, per spec.md §6.
var xsdIntegerSubtypes = map[string]bool{
	XSDNamespace + "integer":            true,
	XSDNamespace + "nonPositiveInteger": true,
	XSDNamespace + "negativeInteger":    true,
	XSDNamespace + "long":               true,
	XSDNamespace + "int":                true,
	XSDNamespace + "short":              true,
	XSDNamespace + "byte":               true,
	XSDNamespace + "nonNegativeInteger": true,
	XSDNamespace + "unsignedLong":       true,
	XSDNamespace + "unsignedInt":        true,
	XSDNamespace + "unsignedShort":      true,
	XSDNamespace + "unsignedByte":       true,
	XSDNamespace + "positiveInteger":    true,
}

// IsIntegerDatatype reports whether iri is xsd:integer or one of its
// standard subtypes.
func IsIntegerDatatype(iri string) bool {
	return xsdIntegerSubtypes[iri]
}
