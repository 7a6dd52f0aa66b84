package ast

// Expression is the sum type over SPARQL expression-tree nodes (spec.md
// §3). It is a closed interface: every node type defined in this package
// implements it, and package topdown switches over the concrete type.
type Expression interface {
	// exprNode is unexported so Expression cannot be implemented outside
	// this package, the same closed-sum-type trick the teacher uses for
	// ast.Value (see ast/term.go in the teacher's tree).
	exprNode()
}

// VariableExpression refers to a query variable by name.
type VariableExpression struct {
	Name string
}

func (*VariableExpression) exprNode() {}

// NewVariable returns a VariableExpression for the given name.
func NewVariable(name string) *VariableExpression {
	return &VariableExpression{Name: name}
}

// TermExpression wraps a constant Term.
type TermExpression struct {
	Term Term
}

func (*TermExpression) exprNode() {}

// NewTermExpression wraps t as a constant expression.
func NewTermExpression(t Term) *TermExpression {
	return &TermExpression{Term: t}
}

// OperatorExpression applies a regular or special-form operator to an
// ordered list of sub-expressions.
type OperatorExpression struct {
	Operator Operator
	Args     []Expression
}

func (*OperatorExpression) exprNode() {}

// NewOperatorExpression builds an OperatorExpression.
func NewOperatorExpression(op Operator, args ...Expression) *OperatorExpression {
	return &OperatorExpression{Operator: op, Args: args}
}

// NamedExpression is a user extension function call, resolved via the
// host's extension registry by IRI.
type NamedExpression struct {
	IRI  string
	Args []Expression
}

func (*NamedExpression) exprNode() {}

// NewNamedExpression builds a NamedExpression.
func NewNamedExpression(iri string, args ...Expression) *NamedExpression {
	return &NamedExpression{IRI: iri, Args: args}
}

// ExistenceExpression represents EXISTS / NOT EXISTS over an opaque
// algebra fragment owned by the surrounding query engine (out of scope
// here; see spec.md §1 and §6).
type ExistenceExpression struct {
	Algebra  any
	Negated  bool
}

func (*ExistenceExpression) exprNode() {}

// NewExistenceExpression builds an ExistenceExpression.
func NewExistenceExpression(algebra any, negated bool) *ExistenceExpression {
	return &ExistenceExpression{Algebra: algebra, Negated: negated}
}

// AggregateExpression represents an aggregate function call. Aggregates
// must be resolved upstream of this evaluator (spec.md §4.4); reaching one
// here is always an evaluation error.
type AggregateExpression struct {
	Name     string
	Distinct bool
	Arg      Expression
}

func (*AggregateExpression) exprNode() {}

// NewAggregateExpression builds an AggregateExpression.
func NewAggregateExpression(name string, distinct bool, arg Expression) *AggregateExpression {
	return &AggregateExpression{Name: name, Distinct: distinct, Arg: arg}
}
