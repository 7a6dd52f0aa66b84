package topdown

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// init wires the string, term-accessor, date/time, and hash operators.
// String functions accept either plain xsd:string or rdf:langString
// operands; per spec.md's string-function table, the result carries the
// first argument's language tag when the function is "lang-tag
// preserving" (SUBSTR, UCASE, LCASE, STRBEFORE, STRAFTER, REPLACE; CONCAT
// only when every argument shares the tag) and plain xsd:string for
// ENCODE_FOR_URI. STRLEN returns xsd:integer; STRSTARTS, STRENDS,
// CONTAINS and REGEX return xsd:boolean.
func init() {
	for _, tag := range []types.Tag{types.TagString, types.TagLangString} {
		register(ast.OpStrlen, []types.Tag{tag}, func(args []ast.Term) (ast.Term, error) {
			s := stringLexical(args[0])
			return intTerm(int64(utf8.RuneCountInString(s))), nil
		})
		register(ast.OpUcase, []types.Tag{tag}, func(args []ast.Term) (ast.Term, error) {
			return sameLangTerm(args[0], strings.ToUpper(stringLexical(args[0]))), nil
		})
		register(ast.OpLcase, []types.Tag{tag}, func(args []ast.Term) (ast.Term, error) {
			return sameLangTerm(args[0], strings.ToLower(stringLexical(args[0]))), nil
		})
		register(ast.OpEncodeForURI, []types.Tag{tag}, func(args []ast.Term) (ast.Term, error) {
			return stringTerm(url.QueryEscape(stringLexical(args[0]))), nil
		})
	}

	for _, pair := range [][2]types.Tag{{types.TagString, types.TagInteger}, {types.TagLangString, types.TagInteger}} {
		register(ast.OpSubstr, pair[:], substr2)
	}

	for _, triple := range [][3]types.Tag{
		{types.TagString, types.TagInteger, types.TagInteger},
		{types.TagLangString, types.TagInteger, types.TagInteger},
	} {
		register(ast.OpSubstr, triple[:], substr3)
	}

	for _, a := range []types.Tag{types.TagString, types.TagLangString} {
		for _, b := range []types.Tag{types.TagString, types.TagLangString} {
			register(ast.OpStrStarts, []types.Tag{a, b}, func(args []ast.Term) (ast.Term, error) {
				return boolTerm(strings.HasPrefix(stringLexical(args[0]), stringLexical(args[1]))), nil
			})
			register(ast.OpStrEnds, []types.Tag{a, b}, func(args []ast.Term) (ast.Term, error) {
				return boolTerm(strings.HasSuffix(stringLexical(args[0]), stringLexical(args[1]))), nil
			})
			register(ast.OpContains, []types.Tag{a, b}, func(args []ast.Term) (ast.Term, error) {
				return boolTerm(strings.Contains(stringLexical(args[0]), stringLexical(args[1]))), nil
			})
			register(ast.OpStrBefore, []types.Tag{a, b}, func(args []ast.Term) (ast.Term, error) {
				s, sep := stringLexical(args[0]), stringLexical(args[1])
				if i := strings.Index(s, sep); i >= 0 {
					return sameLangTerm(args[0], s[:i]), nil
				}
				return stringTerm(""), nil
			})
			register(ast.OpStrAfter, []types.Tag{a, b}, func(args []ast.Term) (ast.Term, error) {
				s, sep := stringLexical(args[0]), stringLexical(args[1])
				if i := strings.Index(s, sep); i >= 0 {
					return sameLangTerm(args[0], s[i+len(sep):]), nil
				}
				return stringTerm(""), nil
			})
			register(ast.OpRegex, []types.Tag{a, b}, regexMatch)
		}
	}
	register(ast.OpRegex, []types.Tag{types.TagString, types.TagString, types.TagString}, regexMatch)
	register(ast.OpRegex, []types.Tag{types.TagLangString, types.TagString, types.TagString}, regexMatch)

	register(ast.OpReplace, []types.Tag{types.TagString, types.TagString, types.TagString}, replace3)
	register(ast.OpReplace, []types.Tag{types.TagLangString, types.TagString, types.TagString}, replace3)
	register(ast.OpReplace, []types.Tag{types.TagString, types.TagString, types.TagString, types.TagString}, replace4)
	register(ast.OpReplace, []types.Tag{types.TagLangString, types.TagString, types.TagString, types.TagString}, replace4)

	registerVariadicImpl(ast.OpConcat, concatImpl)

	// Term accessors, defined over every term kind via TagOther for
	// NamedNode/BlankNode and over the string/literal tags where STR/LANG/
	// DATATYPE distinguish behavior.
	register(ast.OpStr, []types.Tag{types.TagOther}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagString}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagLangString}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagBoolean}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagInteger}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagDecimal}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagFloat}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagDouble}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagDateTime}, strFunc)
	register(ast.OpStr, []types.Tag{types.TagNonLexical}, strFunc)

	register(ast.OpLang, []types.Tag{types.TagLangString}, func(args []ast.Term) (ast.Term, error) {
		return stringTerm(args[0].Lang()), nil
	})
	register(ast.OpLang, []types.Tag{types.TagString}, func(args []ast.Term) (ast.Term, error) {
		return stringTerm(""), nil
	})

	for _, tag := range []types.Tag{
		types.TagString, types.TagLangString, types.TagBoolean, types.TagInteger,
		types.TagDecimal, types.TagFloat, types.TagDouble, types.TagDateTime, types.TagNonLexical, types.TagOther,
	} {
		register(ast.OpDatatype, []types.Tag{tag}, datatypeFunc)
		register(ast.OpIsIRI, []types.Tag{tag}, isIRIFunc)
		register(ast.OpIsBlank, []types.Tag{tag}, isBlankFunc)
		register(ast.OpIsLiteral, []types.Tag{tag}, isLiteralFunc)
		register(ast.OpIsNumeric, []types.Tag{tag}, isNumericFunc)
	}

	register(ast.OpBNode, []types.Tag{}, func(args []ast.Term) (ast.Term, error) {
		return ast.NewFreshBlankNode(), nil
	})
	register(ast.OpBNode, []types.Tag{types.TagString}, func(args []ast.Term) (ast.Term, error) {
		return ast.NewBlankNode(stringLexical(args[0])), nil
	})

	register(ast.OpStrDT, []types.Tag{types.TagString, types.TagOther}, func(args []ast.Term) (ast.Term, error) {
		if args[1].Kind() != ast.KindNamedNode {
			return ast.Term{}, errInvalidArgumentTypes(ast.OpStrDT, []string{"string", "non-IRI"})
		}
		return ast.NewLiteral(stringLexical(args[0]), args[1].IRI()), nil
	})
	register(ast.OpStrLang, []types.Tag{types.TagString, types.TagString}, func(args []ast.Term) (ast.Term, error) {
		return ast.NewLangString(stringLexical(args[0]), stringLexical(args[1])), nil
	})

	register(ast.OpUUID, []types.Tag{}, func(args []ast.Term) (ast.Term, error) {
		return ast.NewNamedNode("urn:uuid:" + uuid.NewString()), nil
	})
	register(ast.OpStrUUID, []types.Tag{}, func(args []ast.Term) (ast.Term, error) {
		return stringTerm(uuid.NewString()), nil
	})

	register(ast.OpMD5, []types.Tag{types.TagString}, hashFunc(func(b []byte) []byte { h := md5.Sum(b); return h[:] }))
	register(ast.OpSHA1, []types.Tag{types.TagString}, hashFunc(func(b []byte) []byte { h := sha1.Sum(b); return h[:] }))
	register(ast.OpSHA256, []types.Tag{types.TagString}, hashFunc(func(b []byte) []byte { h := sha256.Sum256(b); return h[:] }))
	register(ast.OpSHA384, []types.Tag{types.TagString}, hashFunc(func(b []byte) []byte { h := sha512.Sum384(b); return h[:] }))
	register(ast.OpSHA512, []types.Tag{types.TagString}, hashFunc(func(b []byte) []byte { h := sha512.Sum512(b); return h[:] }))

	register(ast.OpYear, []types.Tag{types.TagDateTime}, dateTimeField(func(v types.DateTimeValue) int64 { return int64(v.T.Year()) }))
	register(ast.OpMonth, []types.Tag{types.TagDateTime}, dateTimeField(func(v types.DateTimeValue) int64 { return int64(v.T.Month()) }))
	register(ast.OpDay, []types.Tag{types.TagDateTime}, dateTimeField(func(v types.DateTimeValue) int64 { return int64(v.T.Day()) }))
	register(ast.OpHours, []types.Tag{types.TagDateTime}, dateTimeField(func(v types.DateTimeValue) int64 { return int64(v.T.Hour()) }))
	register(ast.OpMinutes, []types.Tag{types.TagDateTime}, dateTimeField(func(v types.DateTimeValue) int64 { return int64(v.T.Minute()) }))
	register(ast.OpSeconds, []types.Tag{types.TagDateTime}, func(args []ast.Term) (ast.Term, error) {
		v := types.TypedValue(args[0]).(types.DateTimeValue)
		sec := v.T.Second()
		nsec := v.T.Nanosecond()
		d := apdFromSeconds(sec, nsec)
		return ast.NewLiteral(d, ast.XSDDecimal), nil
	})
	register(ast.OpTimezone, []types.Tag{types.TagDateTime}, func(args []ast.Term) (ast.Term, error) {
		v := types.TypedValue(args[0]).(types.DateTimeValue)
		if !v.HasOffset {
			return ast.Term{}, errInvalidArgumentTypes(ast.OpTimezone, []string{"dateTime"})
		}
		_, offset := v.T.Zone()
		return ast.NewLiteral(formatDuration(offset), ast.XSDNamespace+"dayTimeDuration"), nil
	})
	register(ast.OpTz, []types.Tag{types.TagDateTime}, func(args []ast.Term) (ast.Term, error) {
		v := types.TypedValue(args[0]).(types.DateTimeValue)
		if !v.HasOffset {
			return stringTerm(""), nil
		}
		return stringTerm(v.T.Format("Z07:00")), nil
	})
}

func stringLexical(t ast.Term) string {
	switch v := types.TypedValue(t).(type) {
	case types.StringValue:
		return v.Lexical
	case types.LangStringValue:
		return v.Lexical
	default:
		return t.Lexical()
	}
}

// sameLangTerm rebuilds result with the same language tag (or absence of
// one) carried by source, for the lang-preserving string functions.
func sameLangTerm(source ast.Term, result string) ast.Term {
	if source.Kind() == ast.KindLiteral && source.HasLang() {
		return ast.NewLangString(result, source.Lang())
	}
	return stringTerm(result)
}

func intTerm(n int64) ast.Term {
	return ast.NewLiteral(fmt.Sprintf("%d", n), ast.XSDInteger)
}

// substr2 implements SUBSTR/2 (no length), 1-indexed per the XPath
// fn:substring semantics SPARQL inherits.
func substr2(args []ast.Term) (ast.Term, error) {
	s := []rune(stringLexical(args[0]))
	start := substrIndex(args[1])
	if start < 1 {
		start = 1
	}
	if start > len(s)+1 {
		return sameLangTerm(args[0], ""), nil
	}
	return sameLangTerm(args[0], string(s[start-1:])), nil
}

func substr3(args []ast.Term) (ast.Term, error) {
	s := []rune(stringLexical(args[0]))
	start := substrIndex(args[1])
	length := substrIndex(args[2])
	end := start + length
	if start < 1 {
		start = 1
	}
	if end > len(s)+1 {
		end = len(s) + 1
	}
	if start > len(s) || end <= start {
		return sameLangTerm(args[0], ""), nil
	}
	return sameLangTerm(args[0], string(s[start-1:end-1])), nil
}

func substrIndex(t ast.Term) int {
	v := types.TypedValue(t).(types.IntegerValue)
	f, _ := v.D.Float64()
	return int(f)
}

func regexMatch(args []ast.Term) (ast.Term, error) {
	s := stringLexical(args[0])
	pattern := stringLexical(args[1])
	flags := ""
	if len(args) == 3 {
		flags = stringLexical(args[2])
	}
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	if strings.Contains(flags, "s") {
		goPattern = "(?s)" + goPattern
	}
	if strings.Contains(flags, "m") {
		goPattern = "(?m)" + goPattern
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return ast.Term{}, errInvalidArgumentTypes(ast.OpRegex, []string{"string", "string"})
	}
	return boolTerm(re.MatchString(s)), nil
}

func replace3(args []ast.Term) (ast.Term, error) {
	return doReplace(args[0], stringLexical(args[0]), stringLexical(args[1]), stringLexical(args[2]), "")
}

func replace4(args []ast.Term) (ast.Term, error) {
	return doReplace(args[0], stringLexical(args[0]), stringLexical(args[1]), stringLexical(args[2]), stringLexical(args[3]))
}

func doReplace(source ast.Term, s, pattern, replacement, flags string) (ast.Term, error) {
	goPattern := pattern
	if strings.Contains(flags, "i") {
		goPattern = "(?i)" + goPattern
	}
	if strings.Contains(flags, "s") {
		goPattern = "(?s)" + goPattern
	}
	if strings.Contains(flags, "m") {
		goPattern = "(?m)" + goPattern
	}
	re, err := regexp.Compile(goPattern)
	if err != nil {
		return ast.Term{}, errInvalidArgumentTypes(ast.OpReplace, []string{"string", "string", "string"})
	}
	// XPath fn:replace uses $N backreferences; Go's regexp uses ${N}, close
	// enough for the common single-digit case this evaluator targets.
	goReplacement := regexp.MustCompile(`\$(\d+)`).ReplaceAllString(replacement, `$${$1}`)
	return sameLangTerm(source, re.ReplaceAllString(s, goReplacement)), nil
}

// concatImpl implements CONCAT, SPARQL's only variadic regular operator
// (spec.md §4.2). It accepts zero or more string/langString arguments;
// the result carries a language tag only when every argument shares the
// same one, mirroring the teacher's handling of variadic builtins by doing
// the arity/type fan-out inside the Implementation itself rather than in
// the registry.
func concatImpl(args []ast.Term) (ast.Term, error) {
	var buf strings.Builder
	lang := ""
	sameLang := true
	for i, a := range args {
		if a.Kind() != ast.KindLiteral {
			return ast.Term{}, errInvalidArgumentTypes(ast.OpConcat, []string{"non-literal"})
		}
		v := types.TypedValue(a)
		var lex string
		switch x := v.(type) {
		case types.StringValue:
			lex = x.Lexical
			sameLang = false
		case types.LangStringValue:
			lex = x.Lexical
			if i == 0 {
				lang = x.Lang
			} else if x.Lang != lang {
				sameLang = false
			}
		default:
			return ast.Term{}, errInvalidArgumentTypes(ast.OpConcat, []string{v.Tag().String()})
		}
		buf.WriteString(lex)
	}
	if sameLang && lang != "" {
		return ast.NewLangString(buf.String(), lang), nil
	}
	return stringTerm(buf.String()), nil
}

func strFunc(args []ast.Term) (ast.Term, error) {
	t := args[0]
	switch t.Kind() {
	case ast.KindNamedNode:
		return stringTerm(t.IRI()), nil
	case ast.KindLiteral:
		return stringTerm(t.Lexical()), nil
	default:
		return ast.Term{}, errInvalidArgumentTypes(ast.OpStr, []string{"blankNode"})
	}
}

func datatypeFunc(args []ast.Term) (ast.Term, error) {
	t := args[0]
	if t.Kind() != ast.KindLiteral {
		return ast.Term{}, errInvalidArgumentTypes(ast.OpDatatype, []string{"non-literal"})
	}
	if t.HasLang() {
		return ast.NewNamedNode(ast.RDFLangString), nil
	}
	return ast.NewNamedNode(t.DatatypeIRI()), nil
}

func isIRIFunc(args []ast.Term) (ast.Term, error) {
	return boolTerm(args[0].Kind() == ast.KindNamedNode), nil
}

func isBlankFunc(args []ast.Term) (ast.Term, error) {
	return boolTerm(args[0].Kind() == ast.KindBlankNode), nil
}

func isLiteralFunc(args []ast.Term) (ast.Term, error) {
	return boolTerm(args[0].Kind() == ast.KindLiteral), nil
}

func isNumericFunc(args []ast.Term) (ast.Term, error) {
	if args[0].Kind() != ast.KindLiteral {
		return boolTerm(false), nil
	}
	return boolTerm(types.TypedValue(args[0]).Tag().IsNumeric()), nil
}

func hashFunc(sum func([]byte) []byte) Implementation {
	return func(args []ast.Term) (ast.Term, error) {
		h := sum([]byte(stringLexical(args[0])))
		return stringTerm(hex.EncodeToString(h)), nil
	}
}

func dateTimeField(extract func(types.DateTimeValue) int64) Implementation {
	return func(args []ast.Term) (ast.Term, error) {
		v := types.TypedValue(args[0]).(types.DateTimeValue)
		return intTerm(extract(v)), nil
	}
}

func apdFromSeconds(sec, nsec int) string {
	if nsec == 0 {
		return fmt.Sprintf("%d", sec)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%09d", sec, nsec), "0")
}

func formatDuration(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	h := offsetSeconds / 3600
	m := (offsetSeconds % 3600) / 60
	return fmt.Sprintf("PT%s%dH%dM", sign, h, m)
}
