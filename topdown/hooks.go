package topdown

import (
	"context"
	"time"

	"github.com/jacoscaz/sparqlee/ast"
)

// Extension is a user-defined function reachable from a NamedExpression,
// resolved by IRI via Hooks.LookupExtension (spec.md §6).
type Extension struct {
	Arity int
	Func  func(ctx context.Context, args []ast.Term) (ast.Term, error)
}

// Hooks bundles the four injected collaborators spec.md §6 names. A zero
// Hooks is usable: EvaluateExists always returns false, LookupExtension
// always misses, Now reports time.Now, and ResolveIRI returns the relative
// IRI unchanged.
type Hooks struct {
	// EvaluateExists evaluates an EXISTS/NOT EXISTS sub-pattern against the
	// surrounding dataset. algebra is the opaque algebra fragment owned by
	// the query engine (spec.md §1); this evaluator never inspects it.
	EvaluateExists func(ctx context.Context, algebra any, mapping ast.Mapping) (bool, error)

	// LookupExtension resolves a NamedExpression's IRI to a host-registered
	// function.
	LookupExtension func(iri string) (Extension, bool)

	// Now returns the instant NOW() resolves to. NewEvaluator calls it once
	// and every NOW() evaluated by that Evaluator returns that instant; it
	// is not re-sampled per NOW() occurrence (spec.md §6).
	Now func() time.Time

	// ResolveIRI resolves a relative IRI against a base IRI for IRI().
	ResolveIRI func(base, relative string) (string, error)
}

func (h Hooks) withDefaults() Hooks {
	if h.EvaluateExists == nil {
		h.EvaluateExists = func(context.Context, any, ast.Mapping) (bool, error) { return false, nil }
	}
	if h.LookupExtension == nil {
		h.LookupExtension = func(string) (Extension, bool) { return Extension{}, false }
	}
	if h.Now == nil {
		h.Now = time.Now
	}
	if h.ResolveIRI == nil {
		h.ResolveIRI = func(_, relative string) (string, error) { return relative, nil }
	}
	return h
}
