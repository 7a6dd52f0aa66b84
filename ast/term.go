// Package ast defines the RDF term model and the SPARQL expression tree
// consumed by package topdown. Terms and expression nodes are immutable
// once constructed.
package ast

import (
	"fmt"

	"github.com/google/uuid"
)

// TermKind identifies which of the three RDF term variants a Term carries.
type TermKind uint8

const (
	// KindNamedNode marks a Term as an IRI.
	KindNamedNode TermKind = iota
	// KindBlankNode marks a Term as a blank node.
	KindBlankNode
	// KindLiteral marks a Term as a literal.
	KindLiteral
)

// Term is an RDF term: a NamedNode, a BlankNode, or a Literal. The zero
// Term is not valid; use the constructors below.
type Term struct {
	kind TermKind

	iri   string // NamedNode
	label string // BlankNode

	lexical  string // Literal
	datatype string // Literal
	lang     string // Literal, optional
}

// NewNamedNode returns a Term wrapping the given IRI.
func NewNamedNode(iri string) Term {
	return Term{kind: KindNamedNode, iri: iri}
}

// NewBlankNode returns a Term wrapping the given blank node label.
func NewBlankNode(label string) Term {
	return Term{kind: KindBlankNode, label: label}
}

// NewFreshBlankNode returns a Term wrapping a freshly generated, process-unique
// blank node label. Hosts that already track their own blank node identifiers
// should use NewBlankNode directly instead.
func NewFreshBlankNode() Term {
	return NewBlankNode("b" + uuid.NewString())
}

// NewLiteral returns a Term wrapping a literal with the given lexical form
// and datatype IRI.
func NewLiteral(lexical, datatypeIRI string) Term {
	return Term{kind: KindLiteral, lexical: lexical, datatype: datatypeIRI}
}

// NewLangString returns a Term wrapping a language-tagged string literal.
func NewLangString(lexical, lang string) Term {
	return Term{kind: KindLiteral, lexical: lexical, datatype: RDFLangString, lang: lang}
}

// Kind reports which term variant this is.
func (t Term) Kind() TermKind { return t.kind }

// IRI returns the IRI of a NamedNode. It panics if t is not a NamedNode.
func (t Term) IRI() string {
	if t.kind != KindNamedNode {
		panic("ast: IRI called on non-NamedNode term")
	}
	return t.iri
}

// Label returns the label of a BlankNode. It panics if t is not a BlankNode.
func (t Term) Label() string {
	if t.kind != KindBlankNode {
		panic("ast: Label called on non-BlankNode term")
	}
	return t.label
}

// Lexical returns the lexical form of a Literal. It panics if t is not a Literal.
func (t Term) Lexical() string {
	if t.kind != KindLiteral {
		panic("ast: Lexical called on non-Literal term")
	}
	return t.lexical
}

// DatatypeIRI returns the datatype IRI of a Literal. It panics if t is not a Literal.
func (t Term) DatatypeIRI() string {
	if t.kind != KindLiteral {
		panic("ast: DatatypeIRI called on non-Literal term")
	}
	return t.datatype
}

// Lang returns the language tag of a Literal, or "" if it has none. It
// panics if t is not a Literal.
func (t Term) Lang() string {
	if t.kind != KindLiteral {
		panic("ast: Lang called on non-Literal term")
	}
	return t.lang
}

// HasLang reports whether a Literal carries a non-empty language tag.
func (t Term) HasLang() bool {
	return t.kind == KindLiteral && t.lang != ""
}

// SameTerm reports structural RDF-term identity (invariant I3): same
// variant and same (iri|label|(lexical,datatype,lang)).
func (t Term) SameTerm(other Term) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindNamedNode:
		return t.iri == other.iri
	case KindBlankNode:
		return t.label == other.label
	case KindLiteral:
		return t.lexical == other.lexical && t.datatype == other.datatype && t.lang == other.lang
	default:
		return false
	}
}

// String renders a debug/display form of the term; it is not a canonical
// serialization.
func (t Term) String() string {
	switch t.kind {
	case KindNamedNode:
		return "<" + t.iri + ">"
	case KindBlankNode:
		return "_:" + t.label
	case KindLiteral:
		if t.lang != "" {
			return fmt.Sprintf("%q@%s", t.lexical, t.lang)
		}
		return fmt.Sprintf("%q^^<%s>", t.lexical, t.datatype)
	default:
		return "<invalid term>"
	}
}

// Mapping is a single SPARQL solution mapping: a finite map from variable
// name to Term. A variable absent from the map is "unbound", distinct from
// a lookup error.
type Mapping map[string]Term

// Lookup returns the Term bound to name and whether a binding exists.
func (m Mapping) Lookup(name string) (Term, bool) {
	t, ok := m[name]
	return t, ok
}
