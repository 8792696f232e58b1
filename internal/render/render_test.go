package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		in   code.Expr
		want string
	}{
		{"literal", code.IntLit{Value: 1}, "1"},
		{"sum", code.Sum{Terms: []code.Expr{
			code.IntLit{Value: 1},
			code.MethodCall{Recv: code.SelfField("b"), Method: "num_accounts"},
		}}, "1 + self.b.num_accounts()"},
		{"empty sum", code.Sum{}, "0"},
		{"try call", code.Try{Expr: code.Call{
			Func: code.NewPath("Accounts", "try_accounts"),
			Args: []code.Expr{code.Ident{Name: "program_id"}, code.Ident{Name: "accounts"}},
		}}, "Accounts::try_accounts(program_id, accounts)?"},
		{"macro", code.Macro{Name: "vec"}, "vec![]"},
		{"ref", code.Ref{Mut: true, Expr: code.Ident{Name: "x"}}, "&mut x"},
		{"option", code.Some(code.BoolLit{Value: true}), "Some(true)"},
		{"struct literal", code.StructLit{Type: "Foo", Fields: []string{"a", "b"}}, "Foo { a, b }"},
		{"ok unit", code.Ok(code.UnitValue), "Ok(())"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expr(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItem_ImplWithWhere(t *testing.T) {
	impl := code.Impl{
		Generics: []schema.GenericParam{schema.Lifetime("'info"), schema.TypeParam("T", "Clone")},
		Trait:    code.TypeName{Name: "anchor_lang::NumAccounts"},
		For: code.TypeName{Name: "Foo", Args: []schema.GenericParam{
			{Kind: schema.ParamLifetime, Name: "'info"},
			{Kind: schema.ParamType, Name: "T"},
		}},
		Where: []schema.Predicate{schema.Outlives("'info", "'info")},
		Fns: []code.Fn{{
			Name:     "num_accounts",
			Receiver: code.RefSelf,
			Result:   "usize",
			Body:     []code.Stmt{code.Return{Expr: code.IntLit{Value: 1}}},
		}},
	}

	got, err := Item(impl)
	require.NoError(t, err)

	want := strings.Join([]string{
		"impl<'info, T: Clone> anchor_lang::NumAccounts for Foo<'info, T>",
		"where",
		"    'info: 'info,",
		"{",
		"    fn num_accounts(&self) -> usize {",
		"        1",
		"    }",
		"}",
		"",
	}, "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestItem_GuardedModule(t *testing.T) {
	mod := code.Cfg{
		Feature: "no-client-accounts",
		Negate:  true,
		Item: code.Module{
			Docs: []string{"Client mirror."},
			Pub:  true,
			Name: "__client_accounts_foo",
			Items: []code.Item{
				code.Use{Path: "super::*"},
				code.Struct{
					Derives: []string{"AnchorSerialize"},
					Pub:     true,
					Name:    "Foo",
					Fields: []code.StructField{
						{Pub: true, Name: "a", Type: "Pubkey", Docs: []string{"first"}},
					},
				},
			},
		},
	}

	got, err := Item(mod)
	require.NoError(t, err)

	want := strings.Join([]string{
		`#[cfg(not(feature = "no-client-accounts"))]`,
		"/// Client mirror.",
		"pub mod __client_accounts_foo {",
		"    use super::*;",
		"",
		"    #[derive(AnchorSerialize)]",
		"    pub struct Foo {",
		"        /// first",
		"        pub a: Pubkey,",
		"    }",
		"}",
		"",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestItem_FnStatements(t *testing.T) {
	impl := code.Impl{
		Trait: code.TypeName{Name: "Exit"},
		For:   code.TypeName{Name: "Foo"},
		Fns: []code.Fn{{
			Pub:    true,
			Name:   "run",
			Params: []code.Param{{Name: "id", Type: "&Pubkey"}},
			Body: []code.Stmt{
				code.Let{Name: "v", Mut: true, Type: "Vec<u8>", Value: code.Macro{Name: "vec"}},
				code.ExprStmt{Expr: code.MethodCall{Recv: code.Ident{Name: "v"}, Method: "clear"}},
			},
		}},
	}

	got, err := Item(impl)
	require.NoError(t, err)
	assert.Equal(t, "impl Exit for Foo {\n"+
		"    pub fn run(id: &Pubkey) {\n"+
		"        let mut v: Vec<u8> = vec![];\n"+
		"        v.clear();\n"+
		"    }\n"+
		"}\n", got)
}

func TestFile_HeaderAndUnits(t *testing.T) {
	u := &code.Unit{Schema: "Foo", Fragments: []code.Fragment{
		{Name: "a", Items: []code.Item{code.Use{Path: "a::*"}}},
		{Name: "b", Items: []code.Item{code.Use{Path: "b::*"}}},
	}}

	got, err := File(u)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n\nuse a::*;\n\nuse b::*;\n", string(got))

	body, err := Unit(u)
	require.NoError(t, err)
	assert.Equal(t, "use a::*;\n\nuse b::*;\n", string(body))
}

func TestUnknownNodes(t *testing.T) {
	_, err := Expr(nil)
	assert.True(t, errors.Is(err, ErrUnknownNode))

	_, err = Item(code.Cfg{Feature: "x"})
	assert.True(t, errors.Is(err, ErrUnknownNode))

	_, err = Unit(&code.Unit{Fragments: []code.Fragment{{Items: []code.Item{
		code.Impl{Fns: []code.Fn{{Name: "f", Body: []code.Stmt{nil}}}},
	}}}})
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestItem_IfLet(t *testing.T) {
	impl := code.Impl{
		Trait: code.TypeName{Name: "T"},
		For:   code.TypeName{Name: "S"},
		Fns: []code.Fn{{
			Name: "f",
			Body: []code.Stmt{code.IfLet{
				Pattern: "Some(a)",
				Value:   code.SelfField("a"),
				Then:    []code.Stmt{code.ExprStmt{Expr: code.Ident{Name: "x"}}},
				Else:    []code.Stmt{code.ExprStmt{Expr: code.Ident{Name: "y"}}},
			}},
		}},
	}

	got, err := Item(impl)
	require.NoError(t, err)
	assert.Equal(t, "impl T for S {\n"+
		"    fn f() {\n"+
		"        if let Some(a) = self.a {\n"+
		"            x;\n"+
		"        } else {\n"+
		"            y;\n"+
		"        }\n"+
		"    }\n"+
		"}\n", got)
}
