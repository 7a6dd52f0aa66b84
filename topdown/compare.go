package topdown

import (
	"github.com/jacoscaz/sparqlee/ast"
	"github.com/jacoscaz/sparqlee/types"
)

// init wires the relational operators (=, !=, <, <=, >, >=) for same-tag
// numeric pairs (mixed numeric pairs are promoted by dispatch's numeric
// retry), string pairs, langString pairs, and dateTime pairs; boolean pairs
// get = and != only. Cross-type pairs (e.g. a NamedNode against an
// xsd:integer literal) have no entry and fail in dispatch with
// InvalidArgumentTypesError, so = between incomparable terms is an error
// rather than false. Only a pair whose tags are both TagOther reaches the
// SameTerm catch-all below.
func init() {
	for _, tag := range []types.Tag{types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble} {
		registerOrdering(tag)
	}
	registerOrdering(types.TagString)
	registerOrdering(types.TagDateTime)

	notImpl := func(args []ast.Term) (ast.Term, error) {
		ebv, err := types.CoerceEBV(args[0])
		if err != nil {
			return ast.Term{}, errEBV()
		}
		return boolTerm(!ebv), nil
	}
	for _, tag := range []types.Tag{
		types.TagBoolean, types.TagString, types.TagLangString,
		types.TagInteger, types.TagDecimal, types.TagFloat, types.TagDouble,
	} {
		register(ast.OpNot, []types.Tag{tag}, notImpl)
	}

	register(ast.OpEq, []types.Tag{types.TagBoolean, types.TagBoolean}, func(args []ast.Term) (ast.Term, error) {
		a := types.TypedValue(args[0]).(types.BooleanValue)
		b := types.TypedValue(args[1]).(types.BooleanValue)
		return boolTerm(a == b), nil
	})
	register(ast.OpNeq, []types.Tag{types.TagBoolean, types.TagBoolean}, func(args []ast.Term) (ast.Term, error) {
		a := types.TypedValue(args[0]).(types.BooleanValue)
		b := types.TypedValue(args[1]).(types.BooleanValue)
		return boolTerm(a != b), nil
	})

	registerOrdering(types.TagLangString)

	// Equality/inequality over terms that are not a recognised datatype at
	// all (NamedNode, BlankNode, or an OtherValue literal) falls back to
	// SameTerm, per spec.md §4.1's note that "=" degrades to structural
	// identity outside the typed-value categories it otherwise defines.
	register(ast.OpEq, []types.Tag{types.TagOther, types.TagOther}, func(args []ast.Term) (ast.Term, error) {
		return boolTerm(args[0].SameTerm(args[1])), nil
	})
	register(ast.OpNeq, []types.Tag{types.TagOther, types.TagOther}, func(args []ast.Term) (ast.Term, error) {
		return boolTerm(!args[0].SameTerm(args[1])), nil
	})
}

// registerOrdering installs =, !=, <, <=, >, >= for a same-tag operand pair,
// all built on the single types.Compare total order. Numeric tags share
// this helper too: dispatch's promotion retry guarantees both operands
// reach here already under a common tag.
func registerOrdering(tag types.Tag) {
	cmp := func(args []ast.Term) (int, error) {
		return types.Compare(args[0], args[1])
	}
	register(ast.OpEq, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c == 0), nil
	})
	register(ast.OpNeq, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c != 0), nil
	})
	register(ast.OpLt, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c < 0), nil
	})
	register(ast.OpLe, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c <= 0), nil
	})
	register(ast.OpGt, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c > 0), nil
	})
	register(ast.OpGe, []types.Tag{tag, tag}, func(args []ast.Term) (ast.Term, error) {
		c, err := cmp(args)
		if err != nil {
			return ast.Term{}, errInvalidCompare()
		}
		return boolTerm(c >= 0), nil
	})
}
