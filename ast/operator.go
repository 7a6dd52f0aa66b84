package ast

// Operator identifies a SPARQL operator or function symbol appearing in an
// OperatorExpression. The zero value is not a valid operator.
type Operator string

// Regular (non-special-form) operators. Overload resolution for these lives
// in package topdown; this table just names the symbols, the same way the
// teacher's ast.Builtins names built-in symbols independently of how
// topdown implements them.
const (
	OpEq  Operator = "="
	OpNeq Operator = "!="
	OpLt  Operator = "<"
	OpLe  Operator = "<="
	OpGt  Operator = ">"
	OpGe  Operator = ">="

	OpUnaryMinus Operator = "UMINUS"
	OpAdd        Operator = "+"
	OpSub        Operator = "-"
	OpMul        Operator = "*"
	OpDiv        Operator = "/"
	OpNot        Operator = "!"

	OpStrlen        Operator = "STRLEN"
	OpSubstr        Operator = "SUBSTR"
	OpUcase         Operator = "UCASE"
	OpLcase         Operator = "LCASE"
	OpStrStarts     Operator = "STRSTARTS"
	OpStrEnds       Operator = "STRENDS"
	OpContains      Operator = "CONTAINS"
	OpStrBefore     Operator = "STRBEFORE"
	OpStrAfter      Operator = "STRAFTER"
	OpConcat        Operator = "CONCAT"
	OpEncodeForURI  Operator = "ENCODE_FOR_URI"
	OpReplace       Operator = "REPLACE"
	OpRegex         Operator = "REGEX"

	OpAbs   Operator = "ABS"
	OpRound Operator = "ROUND"
	OpCeil  Operator = "CEIL"
	OpFloor Operator = "FLOOR"

	OpStr       Operator = "STR"
	OpLang      Operator = "LANG"
	OpDatatype  Operator = "DATATYPE"
	OpIRI       Operator = "IRI"
	OpBNode     Operator = "BNODE"
	OpStrDT     Operator = "STRDT"
	OpStrLang   Operator = "STRLANG"
	OpUUID      Operator = "UUID"
	OpStrUUID   Operator = "STRUUID"
	OpIsIRI     Operator = "isIRI"
	OpIsBlank   Operator = "isBLANK"
	OpIsLiteral Operator = "isLITERAL"
	OpIsNumeric Operator = "isNUMERIC"

	OpNow      Operator = "NOW"
	OpYear     Operator = "YEAR"
	OpMonth    Operator = "MONTH"
	OpDay      Operator = "DAY"
	OpHours    Operator = "HOURS"
	OpMinutes  Operator = "MINUTES"
	OpSeconds  Operator = "SECONDS"
	OpTimezone Operator = "TIMEZONE"
	OpTz       Operator = "TZ"

	OpMD5    Operator = "MD5"
	OpSHA1   Operator = "SHA1"
	OpSHA256 Operator = "SHA256"
	OpSHA384 Operator = "SHA384"
	OpSHA512 Operator = "SHA512"

	OpCastString   Operator = "xsd:string"
	OpCastBoolean  Operator = "xsd:boolean"
	OpCastInteger  Operator = "xsd:integer"
	OpCastDecimal  Operator = "xsd:decimal"
	OpCastFloat    Operator = "xsd:float"
	OpCastDouble   Operator = "xsd:double"
	OpCastDateTime Operator = "xsd:dateTime"
)

// Special-form operators. These are distinguished from regular operators by
// needing the unevaluated sub-expression list and an evaluator handle (see
// spec.md §4.3); package topdown's dispatcher never hands these to the
// regular registry.
const (
	OpBound       Operator = "BOUND"
	OpIf          Operator = "IF"
	OpCoalesce    Operator = "COALESCE"
	OpOr          Operator = "||"
	OpAnd         Operator = "&&"
	OpSameTerm    Operator = "sameTerm"
	OpIn          Operator = "IN"
	OpNotIn       Operator = "NOT IN"
)

// specialForms is the set of operators handled by topdown's special-form
// evaluator rather than its regular registry.
var specialForms = map[Operator]bool{
	OpBound:    true,
	OpIf:       true,
	OpCoalesce: true,
	OpOr:       true,
	OpAnd:      true,
	OpSameTerm: true,
	OpIn:       true,
	OpNotIn:    true,
}

// IsSpecialForm reports whether op must be dispatched with unevaluated
// operands (spec.md §4.3) rather than through the regular registry.
func IsSpecialForm(op Operator) bool {
	return specialForms[op]
}
