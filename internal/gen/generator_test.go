package gen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-generator/internal/capability"
	"accounts-generator/internal/code"
	"accounts-generator/internal/render"
	"accounts-generator/internal/schema"
)

func fooSchema() *schema.Schema {
	return &schema.Schema{
		Ident:    "Foo",
		Generics: schema.Generics{Params: []schema.GenericParam{schema.Lifetime("'info")}},
		Fields:   []schema.Field{schema.Leaf("a"), schema.Composite("b", "Bar")},
	}
}

func renderUnit(t *testing.T, u *code.Unit) string {
	t.Helper()

	out, err := render.Unit(u)
	require.NoError(t, err)

	return string(out)
}

type stubGenerator struct {
	name string
	err  error
	seen []*schema.Schema
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(sc *schema.Schema) (code.Fragment, error) {
	s.seen = append(s.seen, sc)
	if s.err != nil {
		return code.Fragment{}, s.err
	}

	return code.Fragment{Name: s.name, Items: []code.Item{code.Use{Path: s.name}}}, nil
}

func TestGenerate_FragmentOrder(t *testing.T) {
	unit, err := NewGenerator().Generate(fooSchema(), DefaultFlags())
	require.NoError(t, err)

	assert.Equal(t, "Foo", unit.Schema)
	assert.Equal(t, []string{
		CountFragmentName,
		capability.TryAccountsName,
		capability.ToAccountInfosName,
		capability.ToAccountMetasName,
		capability.ExitName,
		capability.ClientAccountsName,
		capability.CpiClientAccountsName,
	}, unit.Names())
}

func TestGenerate_CountImplWithDeclaredLifetime(t *testing.T) {
	unit, err := NewGenerator().Generate(fooSchema(), DefaultFlags())
	require.NoError(t, err)

	frag, ok := unit.Fragment(CountFragmentName)
	require.True(t, ok)

	out, err := render.Item(frag.Items[0])
	require.NoError(t, err)

	want := "impl<'info> anchor_lang::NumAccounts for Foo<'info>\n" +
		"where\n" +
		"    'info: 'info,\n" +
		"{\n" +
		"    fn num_accounts(&self) -> usize {\n" +
		"        1 + self.b.num_accounts()\n" +
		"    }\n" +
		"}\n"

	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("count impl mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_CountImplSynthesizedLifetime(t *testing.T) {
	s := &schema.Schema{Ident: "Foo", Fields: []schema.Field{schema.Leaf("x")}}

	unit, err := NewGenerator().Generate(s, DefaultFlags())
	require.NoError(t, err)

	frag, ok := unit.Fragment(CountFragmentName)
	require.True(t, ok)

	out, err := render.Item(frag.Items[0])
	require.NoError(t, err)

	assert.Equal(t, "impl<'info> anchor_lang::NumAccounts for Foo {\n"+
		"    fn num_accounts(&self) -> usize {\n"+
		"        1\n"+
		"    }\n"+
		"}\n", out)
}

func TestGenerate_CountImplKeepsBoundsAndDropsDefaults(t *testing.T) {
	s := &schema.Schema{
		Ident: "Foo",
		Generics: schema.Generics{
			Params: []schema.GenericParam{
				schema.Lifetime("'a"),
				schema.Lifetime("'b", "'a"),
				{Kind: schema.ParamType, Name: "T", Bounds: []string{"Clone"}, Default: "u8"},
				schema.ConstParam("N", "usize"),
			},
			Where: &schema.WhereClause{Predicates: []schema.Predicate{schema.Bound("T", "Default")}},
		},
		Fields: []schema.Field{schema.Leaf("x")},
	}

	unit, err := NewGenerator().Generate(s, DefaultFlags())
	require.NoError(t, err)

	frag, _ := unit.Fragment(CountFragmentName)
	out, err := render.Item(frag.Items[0])
	require.NoError(t, err)

	assert.Contains(t, out, "impl<'a, 'b: 'a, T: Clone, const N: usize> anchor_lang::NumAccounts for Foo<'a, 'b, T, N>\n")
	assert.Contains(t, out, "    T: Default,\n    'a: 'a,\n    'b: 'a,\n")
}

func TestGenerate_HelperFlags(t *testing.T) {
	tests := []struct {
		name      string
		flags     Flags
		wantNames []string
		wantCfg   []string
	}{
		{
			name:      "both",
			flags:     DefaultFlags(),
			wantNames: []string{capability.ClientAccountsName, capability.CpiClientAccountsName},
			wantCfg:   []string{FeatureNoClientAccounts, FeatureNoCpiSupport},
		},
		{
			name:      "cpi only",
			flags:     Flags{GenerateCpiHelpers: true},
			wantNames: []string{capability.CpiClientAccountsName},
			wantCfg:   []string{FeatureNoCpiSupport},
		},
		{
			name:      "client only",
			flags:     Flags{GenerateClientHelpers: true},
			wantNames: []string{capability.ClientAccountsName},
			wantCfg:   []string{FeatureNoClientAccounts},
		},
		{
			name:  "none",
			flags: Flags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := NewGenerator().Generate(fooSchema(), tt.flags)
			require.NoError(t, err)

			names := unit.Names()
			require.Len(t, names, 5+len(tt.wantNames))
			assert.Equal(t, tt.wantNames, nilIfEmpty(names[5:]))

			var features []string

			for _, frag := range unit.Fragments[5:] {
				for _, it := range frag.Items {
					cfg, ok := it.(code.Cfg)
					require.True(t, ok, "helper item must be guarded")
					assert.True(t, cfg.Negate)

					features = append(features, cfg.Feature)
				}
			}

			assert.Equal(t, tt.wantCfg, features)
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}

	return s
}

func TestGenerate_GuardRendering(t *testing.T) {
	unit, err := NewGenerator().Generate(fooSchema(), Flags{GenerateCpiHelpers: true})
	require.NoError(t, err)

	out := renderUnit(t, unit)

	assert.Contains(t, out, "#[cfg(not(feature = \"no-cpi-support\"))]\npub mod __cpi_client_accounts_foo {")
	assert.NotContains(t, out, "__client_accounts_foo")
}

func TestGenerate_Idempotent(t *testing.T) {
	g := NewGenerator()
	s := fooSchema()

	first, err := g.Generate(s, DefaultFlags())
	require.NoError(t, err)

	second, err := g.Generate(s, DefaultFlags())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("units differ (-first +second):\n%s", diff)
	}

	assert.Equal(t, renderUnit(t, first), renderUnit(t, second))
}

func TestGenerate_DoesNotModifySchema(t *testing.T) {
	s := fooSchema()
	before := s.Clone()

	_, err := NewGenerator().Generate(s, DefaultFlags())
	require.NoError(t, err)

	assert.Equal(t, before, s)
}

func TestGenerate_RejectsEmptySchema(t *testing.T) {
	stub := &stubGenerator{name: "stub"}

	unit, err := NewGenerator(WithCapabilities(stub)).Generate(&schema.Schema{Ident: "Empty"}, DefaultFlags())
	require.Error(t, err)
	assert.Nil(t, unit)
	assert.ErrorIs(t, err, schema.ErrRejectedSchema)

	var verr *schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Diagnostics.HasCode(schema.CodeNoFields))

	assert.Empty(t, stub.seen, "collaborators must not run on rejected input")
}

func TestGenerate_RejectsNilSchema(t *testing.T) {
	_, err := NewGenerator().Generate(nil, DefaultFlags())
	assert.ErrorIs(t, err, schema.ErrRejectedSchema)
}

func TestGenerate_CollaboratorFailureAborts(t *testing.T) {
	boom := errors.New("boom")
	ok := &stubGenerator{name: "ok"}
	bad := &stubGenerator{name: "bad", err: boom}

	unit, err := NewGenerator(WithCapabilities(ok, bad)).Generate(fooSchema(), DefaultFlags())
	require.Error(t, err)
	assert.Nil(t, unit)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "generating bad for Foo")
}

func TestGenerate_CollaboratorsReceiveRawSchema(t *testing.T) {
	s := &schema.Schema{Ident: "Foo", Fields: []schema.Field{schema.Leaf("x")}}
	capStub := &stubGenerator{name: "cap"}
	client := &stubGenerator{name: "client"}
	cpi := &stubGenerator{name: "cpi"}

	g := NewGenerator(WithCapabilities(capStub), WithClientHelper(client), WithCpiHelper(cpi))

	unit, err := g.Generate(s, DefaultFlags())
	require.NoError(t, err)

	assert.Equal(t, []string{CountFragmentName, "cap", "client", "cpi"}, unit.Names())

	for _, st := range []*stubGenerator{capStub, client, cpi} {
		require.Len(t, st.seen, 1)
		assert.Same(t, s, st.seen[0])
		// No lifetime was injected into the schema the collaborators see.
		assert.Empty(t, st.seen[0].Generics.Params)
	}
}

func TestGenerateCatalog(t *testing.T) {
	bar := &schema.Schema{Ident: "Bar", Fields: []schema.Field{schema.Leaf("x")}}

	cat, err := schema.NewCatalog(fooSchema(), bar)
	require.NoError(t, err)

	files, err := NewGenerator().GenerateCatalog(cat, DefaultFlags())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "bar_accounts.rs", files[0].Filename)
	assert.Equal(t, "foo_accounts.rs", files[1].Filename)
	assert.Contains(t, string(files[1].Content), render.Header)
	assert.Contains(t, string(files[1].Content), "1 + self.b.num_accounts()")
}

func TestGenerateCatalog_UnknownComposite(t *testing.T) {
	cat, err := schema.NewCatalog(fooSchema())
	require.NoError(t, err)

	_, err = NewGenerator().GenerateCatalog(cat, DefaultFlags())
	assert.ErrorIs(t, err, schema.ErrUnknownComposite)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "create_vault_accounts.rs", Filename("CreateVault"))
}
