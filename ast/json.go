package ast

import (
	"encoding/json"
	"fmt"
)

// wireTerm is the JSON wire shape for a Term, used by cmd/sparqlee to read
// expression trees and mappings from the surrounding query engine. Package
// ast itself never needs JSON for in-process use; this exists purely at the
// boundary, the same way the teacher's ast package carries MarshalJSON only
// for its own wire format, not for internal evaluation.
type wireTerm struct {
	Kind     string `json:"kind"`
	IRI      string `json:"iri,omitempty"`
	Label    string `json:"label,omitempty"`
	Lexical  string `json:"lexical,omitempty"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// MarshalJSON implements json.Marshaler for Term.
func (t Term) MarshalJSON() ([]byte, error) {
	w := wireTerm{}
	switch t.kind {
	case KindNamedNode:
		w.Kind, w.IRI = "iri", t.iri
	case KindBlankNode:
		w.Kind, w.Label = "bnode", t.label
	case KindLiteral:
		w.Kind, w.Lexical, w.Datatype, w.Lang = "literal", t.lexical, t.datatype, t.lang
	default:
		return nil, fmt.Errorf("ast: invalid term kind %d", t.kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler for Term.
func (t *Term) UnmarshalJSON(data []byte) error {
	var w wireTerm
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case "iri":
		*t = NewNamedNode(w.IRI)
	case "bnode":
		*t = NewBlankNode(w.Label)
	case "literal":
		if w.Lang != "" {
			*t = NewLangString(w.Lexical, w.Lang)
		} else {
			*t = NewLiteral(w.Lexical, w.Datatype)
		}
	default:
		return fmt.Errorf("ast: unknown term kind %q", w.Kind)
	}
	return nil
}

// wireExpression is the JSON wire shape for an Expression.
type wireExpression struct {
	Kind     string           `json:"kind"`
	Name     string           `json:"name,omitempty"`
	Term     *Term            `json:"term,omitempty"`
	Operator Operator         `json:"operator,omitempty"`
	IRI      string           `json:"iri,omitempty"`
	Args     []wireExpression `json:"args,omitempty"`
	Negated  bool             `json:"negated,omitempty"`
	Distinct bool             `json:"distinct,omitempty"`
	Arg      *wireExpression  `json:"arg,omitempty"`
}

// MarshalExpression encodes expr to JSON using this package's wire format.
func MarshalExpression(expr Expression) ([]byte, error) {
	w, err := toWire(expr)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalExpression decodes data into an Expression using this package's
// wire format.
func UnmarshalExpression(data []byte) (Expression, error) {
	var w wireExpression
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, err
	}
	return fromWire(w)
}

func toWire(expr Expression) (wireExpression, error) {
	switch e := expr.(type) {
	case *VariableExpression:
		return wireExpression{Kind: "variable", Name: e.Name}, nil
	case *TermExpression:
		t := e.Term
		return wireExpression{Kind: "term", Term: &t}, nil
	case *OperatorExpression:
		args, err := toWireAll(e.Args)
		if err != nil {
			return wireExpression{}, err
		}
		return wireExpression{Kind: "operator", Operator: e.Operator, Args: args}, nil
	case *NamedExpression:
		args, err := toWireAll(e.Args)
		if err != nil {
			return wireExpression{}, err
		}
		return wireExpression{Kind: "named", IRI: e.IRI, Args: args}, nil
	case *ExistenceExpression:
		return wireExpression{Kind: "existence", Negated: e.Negated}, nil
	case *AggregateExpression:
		arg, err := toWire(e.Arg)
		if err != nil {
			return wireExpression{}, err
		}
		return wireExpression{Kind: "aggregate", Name: e.Name, Distinct: e.Distinct, Arg: &arg}, nil
	default:
		return wireExpression{}, fmt.Errorf("ast: unsupported expression type %T", expr)
	}
}

func toWireAll(exprs []Expression) ([]wireExpression, error) {
	out := make([]wireExpression, len(exprs))
	for i, e := range exprs {
		w, err := toWire(e)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

func fromWire(w wireExpression) (Expression, error) {
	switch w.Kind {
	case "variable":
		return NewVariable(w.Name), nil
	case "term":
		if w.Term == nil {
			return nil, fmt.Errorf("ast: term expression missing term")
		}
		return NewTermExpression(*w.Term), nil
	case "operator":
		args, err := fromWireAll(w.Args)
		if err != nil {
			return nil, err
		}
		return NewOperatorExpression(w.Operator, args...), nil
	case "named":
		args, err := fromWireAll(w.Args)
		if err != nil {
			return nil, err
		}
		return NewNamedExpression(w.IRI, args...), nil
	case "existence":
		return NewExistenceExpression(nil, w.Negated), nil
	case "aggregate":
		if w.Arg == nil {
			return nil, fmt.Errorf("ast: aggregate expression missing arg")
		}
		arg, err := fromWire(*w.Arg)
		if err != nil {
			return nil, err
		}
		return NewAggregateExpression(w.Name, w.Distinct, arg), nil
	default:
		return nil, fmt.Errorf("ast: unknown expression kind %q", w.Kind)
	}
}

func fromWireAll(wires []wireExpression) ([]Expression, error) {
	out := make([]Expression, len(wires))
	for i, w := range wires {
		e, err := fromWire(w)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}
