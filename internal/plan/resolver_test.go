package plan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-generator/internal/schema"
)

func TestResolve_DeclaredLifetime(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{
				schema.Lifetime("'info"),
				schema.TypeParam("T", "Clone"),
			},
		},
		Fields: []schema.Field{schema.Leaf("a"), schema.Composite("b", "Bar")},
	}

	p, err := Resolve(s)
	require.NoError(t, err)

	assert.False(t, p.Synthesized)
	assert.Equal(t, schema.Lifetime("'info"), p.TraitLifetime)
	assert.Equal(t, []schema.GenericParam{schema.Lifetime("'info")}, p.TraitGenerics)
	assert.Len(t, p.CombinedGenerics, len(s.Generics.Params))
	assert.Equal(t, s.Generics.Params, p.CombinedGenerics)
	assert.Equal(t, []schema.Predicate{schema.Outlives("'info", "'info")}, p.BoundClause)
}

func TestResolve_NoGenerics(t *testing.T) {
	s := &schema.Schema{Ident: "Foo", Fields: []schema.Field{schema.Leaf("x")}}

	p, err := Resolve(s)
	require.NoError(t, err)

	want := &GenericsPlan{
		CombinedGenerics: []schema.GenericParam{schema.Lifetime(CanonicalLifetime)},
		TraitLifetime:    schema.Lifetime(CanonicalLifetime),
		TraitGenerics:    []schema.GenericParam{schema.Lifetime(CanonicalLifetime)},
		StructGenerics:   []schema.GenericParam{},
		Synthesized:      true,
	}

	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SynthesizesBeforeTypeParams(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{schema.TypeParam("T", "Clone"), schema.ConstParam("N", "usize")},
			Where:  &schema.WhereClause{Predicates: []schema.Predicate{schema.Bound("T", "Default")}},
		},
		Fields: []schema.Field{schema.Leaf("x")},
	}

	p, err := Resolve(s)
	require.NoError(t, err)

	require.True(t, p.Synthesized)
	require.Len(t, p.CombinedGenerics, len(s.Generics.Params)+1)
	assert.Equal(t, schema.Lifetime("'info"), p.CombinedGenerics[0])
	assert.Equal(t, s.Generics.Params, p.CombinedGenerics[1:])

	// Without declared lifetimes only the declared predicates remain.
	assert.Equal(t, []schema.Predicate{schema.Bound("T", "Default")}, p.BoundClause)

	assert.Equal(t, []schema.GenericParam{
		{Kind: schema.ParamType, Name: "T"},
		{Kind: schema.ParamType, Name: "N"},
	}, p.StructGenerics)
}

func TestResolve_EveryLifetimeOutlivesTrait(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{
				schema.TypeParam("T"),
				schema.Lifetime("'a"),
				schema.Lifetime("'b", "'a"),
			},
			Where: &schema.WhereClause{Predicates: []schema.Predicate{schema.Bound("T", "Copy")}},
		},
		Fields: []schema.Field{schema.Leaf("x")},
	}

	p, err := Resolve(s)
	require.NoError(t, err)

	assert.Equal(t, "'a", p.TraitLifetime.Name)
	assert.Equal(t, []schema.Predicate{
		schema.Bound("T", "Copy"),
		schema.Outlives("'a", "'a"),
		schema.Outlives("'b", "'a"),
	}, p.BoundClause)

	assert.Equal(t, []schema.GenericParam{
		{Kind: schema.ParamType, Name: "T"},
		{Kind: schema.ParamLifetime, Name: "'a"},
		{Kind: schema.ParamLifetime, Name: "'b"},
	}, p.StructGenerics)

	// The declared list keeps bounds in the impl header.
	assert.Equal(t, []string{"'a"}, p.CombinedGenerics[2].Bounds)
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{schema.Lifetime("'a", "'b"), schema.Lifetime("'b")},
			Where:  &schema.WhereClause{Predicates: []schema.Predicate{schema.Bound("T", "Copy")}},
		},
		Fields: []schema.Field{schema.Leaf("x")},
	}
	before := s.Clone()

	p, err := Resolve(s)
	require.NoError(t, err)

	p.CombinedGenerics[0].Bounds[0] = "'z"
	p.BoundClause[0].Bounds[0] = "Clone"

	assert.Equal(t, before, s)
	assert.Len(t, s.Generics.Where.Predicates, 1)
}

func TestResolve_Deterministic(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{schema.Lifetime("'a"), schema.TypeParam("T")},
		},
		Fields: []schema.Field{schema.Leaf("x")},
	}

	a, err := Resolve(s)
	require.NoError(t, err)

	b, err := Resolve(s)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestResolve_MalformedCanonicalLifetime(t *testing.T) {
	s := &schema.Schema{Ident: "Foo", Fields: []schema.Field{schema.Leaf("x")}}

	_, err := resolve(s, "info")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedCanonicalLifetime))
	assert.True(t, errors.Is(err, schema.ErrMalformedLifetime))

	// The canonical name is only parsed when it is needed.
	s.Generics.Params = []schema.GenericParam{schema.Lifetime("'a")}
	_, err = resolve(s, "info")
	assert.NoError(t, err)
}
