package types

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Lexical grammars below follow the XSD 1.1 / XPath Functions & Operators
// lexical rules that spec.md §4.1 calls out explicitly (no leading zeros
// other than a bare "0", optional fractional part for decimal, INF/-INF/NaN
// for float and double). A literal that fails its grammar classifies as
// TagNonLexical rather than ever producing a Value with an invalid lexical
// form (invariant I1).

var (
	integerPattern = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)$`)
	decimalPattern = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?$`)
	// floatPattern covers the general XSD float/double numeric lexical
	// form; INF/-INF/NaN are matched separately below.
	floatPattern = regexp.MustCompile(`^[+-]?(([0-9]+(\.[0-9]+)?)|(\.[0-9]+))([eE][+-]?[0-9]+)?$`)
)

func parseBoolean(lex string) (bool, bool) {
	switch lex {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// decimalContext controls precision and rounding for decimal arithmetic
// performed on apd.Decimal values throughout this package and topdown.
// 50 significant digits comfortably exceeds the precision any realistic
// SPARQL xsd:decimal literal carries while still catching overflow from
// runaway arithmetic chains.
var decimalContext = apd.BaseContext.WithPrecision(50)

func ParseInteger(lex string) (apd.Decimal, bool) {
	if !integerPattern.MatchString(lex) {
		return apd.Decimal{}, false
	}
	var d apd.Decimal
	_, _, err := d.SetString(lex)
	if err != nil {
		return apd.Decimal{}, false
	}
	return d, true
}

func ParseDecimal(lex string) (apd.Decimal, bool) {
	if !decimalPattern.MatchString(lex) {
		return apd.Decimal{}, false
	}
	var d apd.Decimal
	_, _, err := d.SetString(lex)
	if err != nil {
		return apd.Decimal{}, false
	}
	return d, true
}

func parseFloat32(lex string) (float32, bool) {
	switch lex {
	case "INF", "+INF":
		return float32(math.Inf(1)), true
	case "-INF":
		return float32(math.Inf(-1)), true
	case "NaN":
		return float32(math.NaN()), true
	}
	if !floatPattern.MatchString(lex) {
		return 0, false
	}
	f, err := strconv.ParseFloat(lex, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func ParseFloat64(lex string) (float64, bool) {
	switch lex {
	case "INF", "+INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}
	if !floatPattern.MatchString(lex) {
		return 0, false
	}
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dateTimePattern matches the xsd:dateTime lexical form:
// YYYY-MM-DDThh:mm:ss(.sss)?(Z|(+|-)hh:mm)?
var dateTimePattern = regexp.MustCompile(
	`^-?[0-9]{4,}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}(\.[0-9]+)?(Z|[+-][0-9]{2}:[0-9]{2})?$`)

func ParseDateTime(lex string) (time.Time, bool, bool) {
	if !dateTimePattern.MatchString(lex) {
		return time.Time{}, false, false
	}
	hasOffset := len(lex) > 0 && (lex[len(lex)-1] == 'Z' || hasNumericOffset(lex))
	layouts := []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, lex); err == nil {
			return t, hasOffset, true
		}
	}
	return time.Time{}, false, false
}

func hasNumericOffset(lex string) bool {
	if len(lex) < 6 {
		return false
	}
	tail := lex[len(lex)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}
