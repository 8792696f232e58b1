package plan

import "accounts-generator/internal/schema"

// GenericsPlan is the generics view used by every generated impl header.
// A plan is computed per generation call and never mutated afterwards.
type GenericsPlan struct {
	// CombinedGenerics is the parameter list of the impl header: the declared
	// list, preceded by the trait lifetime when it was synthesized.
	CombinedGenerics []schema.GenericParam
	// TraitLifetime is the lifetime threaded through the generated impls.
	TraitLifetime schema.GenericParam
	// TraitGenerics holds only TraitLifetime.
	TraitGenerics []schema.GenericParam
	// StructGenerics are the declared parameters reduced to bare identifiers,
	// used to name the original type.
	StructGenerics []schema.GenericParam
	// BoundClause is the declared bound clause plus one outlives predicate per
	// declared lifetime.
	BoundClause []schema.Predicate
	// Synthesized reports whether TraitLifetime was not declared.
	Synthesized bool
}

