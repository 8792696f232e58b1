package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/common"
	"accounts-generator/internal/schema"
)

// ClientAccountsModule returns the name of the client mirror module of a
// schema type, e.g. "__client_accounts_create_vault".
func ClientAccountsModule(ident string) string {
	return "__client_accounts_" + common.ToSnake(ident)
}

// ClientAccounts generates a mirror of the schema holding plain resource
// addresses, used off-chain to build instructions.
type ClientAccounts struct{}

// Name implements Generator.
func (ClientAccounts) Name() string { return ClientAccountsName }

// Generate implements Generator.
func (ClientAccounts) Generate(s *schema.Schema) (code.Fragment, error) {
	st := code.Struct{
		Docs:    []string{"Generated client accounts for [`" + s.Ident + "`]."},
		Derives: []string{RuntimePath("AnchorSerialize")},
		Pub:     true,
		Name:    s.Ident,
	}

	stmts := make([]code.Stmt, 0, len(s.Fields))

	for _, f := range s.Fields {
		sf := code.StructField{Docs: f.Docs, Pub: true, Name: f.Ident}

		switch {
		case f.IsComposite():
			name := f.TypeName()
			sf.Type = ClientAccountsModule(name) + "::" + name

			stmts = append(stmts, extend("account_metas", code.MethodCall{
				Recv:   code.SelfField(f.Ident),
				Method: "to_account_metas",
				Args:   []code.Expr{code.None},
			}))
		case f.Optional:
			sf.Type = "Option<" + pubkeyType + ">"

			stmts = append(stmts, code.IfLet{
				Pattern: "Some(" + f.Ident + ")",
				Value:   code.SelfField(f.Ident),
				Then:    []code.Stmt{push("account_metas", newMeta(code.Ident{Name: f.Ident}, f))},
			})
		default:
			sf.Type = pubkeyType

			stmts = append(stmts, push("account_metas", newMeta(code.SelfField(f.Ident), f)))
		}

		st.Fields = append(st.Fields, sf)
	}

	metas := code.Impl{
		Trait: code.TypeName{Name: RuntimePath("ToAccountMetas")},
		For:   code.TypeName{Name: s.Ident},
		Fns:   []code.Fn{metasFn(collect("account_metas", stmts))},
	}

	mod := code.Module{
		Pub:  true,
		Name: ClientAccountsModule(s.Ident),
		Items: []code.Item{
			code.Use{Path: "super::*"},
			st,
			metas,
		},
	}

	return code.Fragment{Name: ClientAccountsName, Items: []code.Item{mod}}, nil
}
