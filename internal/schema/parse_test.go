package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLifetime(t *testing.T) {
	for _, ok := range []string{"'info", "'a", "'_x", " 'b "} {
		_, err := ParseLifetime(ok)
		assert.NoError(t, err, ok)
	}

	for _, bad := range []string{"info", "'", "'1a", "'static", "'_", "'a b", ""} {
		_, err := ParseLifetime(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.Is(err, ErrMalformedLifetime), bad)
	}
}

func TestParseGenericParam(t *testing.T) {
	tests := []struct {
		in   string
		want GenericParam
	}{
		{"'a", GenericParam{Kind: ParamLifetime, Name: "'a"}},
		{"'a: 'b + 'c", GenericParam{Kind: ParamLifetime, Name: "'a", Bounds: []string{"'b", "'c"}}},
		{"T", GenericParam{Kind: ParamType, Name: "T"}},
		{"T: Clone + Into<Vec<u8>> = u8", GenericParam{
			Kind: ParamType, Name: "T", Bounds: []string{"Clone", "Into<Vec<u8>>"}, Default: "u8",
		}},
		{"T: anchor_lang::Owner", GenericParam{Kind: ParamType, Name: "T", Bounds: []string{"anchor_lang::Owner"}}},
		{"const N: usize", GenericParam{Kind: ParamConst, Name: "N", ConstType: "usize"}},
		{"const N: usize = 4", GenericParam{Kind: ParamConst, Name: "N", ConstType: "usize", Default: "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGenericParam(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGenericParam_Errors(t *testing.T) {
	for _, bad := range []string{"", "const N", "const : usize", "'a = 'b", "1T", "'static"} {
		_, err := ParseGenericParam(bad)
		assert.Error(t, err, bad)
	}
}

func TestGenericParam_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"'a", "'a: 'b + 'c", "T: Clone + Default = u8", "const N: usize"} {
		p, err := ParseGenericParam(in)
		require.NoError(t, err)
		assert.Equal(t, in, p.String())
	}
}

func TestParsePredicate(t *testing.T) {
	p, err := ParsePredicate("T: Clone + Default")
	require.NoError(t, err)
	assert.Equal(t, Bound("T", "Clone", "Default"), p)
	assert.Equal(t, "T: Clone + Default", p.String())

	p, err = ParsePredicate("'a: 'info")
	require.NoError(t, err)
	assert.Equal(t, Outlives("'a", "'info"), p)

	p, err = ParsePredicate("<T as Trait>::Assoc: Send")
	require.NoError(t, err)
	assert.Equal(t, "<T as Trait>::Assoc", p.Subject)
	assert.Equal(t, PredicateType, p.Kind)

	for _, bad := range []string{"T", "T:", ": Clone", "'bad lt: 'a"} {
		_, err := ParsePredicate(bad)
		assert.Error(t, err, bad)
	}
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "leaf", FieldLeaf.String())
	assert.Equal(t, "composite", FieldComposite.String())
	assert.Equal(t, "FieldKind(0)", FieldKind(0).String())
	assert.Equal(t, "const", ParamConst.String())
	assert.Equal(t, "lifetime", PredicateLifetime.String())
}

func TestField_TypeName(t *testing.T) {
	assert.Equal(t, "Vault", Composite("v", "Vault").TypeName())
	assert.Equal(t, "Vault", Composite("v", "crate::state::Vault<'info, T>").TypeName())
	assert.Equal(t, "", Composite("v", "").TypeName())
}
