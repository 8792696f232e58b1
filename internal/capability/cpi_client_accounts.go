package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/common"
	"accounts-generator/internal/schema"
)

// CpiClientAccountsModule returns the name of the CPI mirror module of a
// schema type, e.g. "__cpi_client_accounts_create_vault".
func CpiClientAccountsModule(ident string) string {
	return "__cpi_client_accounts_" + common.ToSnake(ident)
}

// CpiClientAccounts generates a mirror of the schema holding resource handles,
// used by other programs to invoke this one.
type CpiClientAccounts struct{}

// Name implements Generator.
func (CpiClientAccounts) Name() string { return CpiClientAccountsName }

// Generate implements Generator.
func (CpiClientAccounts) Generate(s *schema.Schema) (code.Fragment, error) {
	lt := canonicalLifetime
	info := accountInfoType(lt)
	generics := []schema.GenericParam{schema.Lifetime(lt)}

	st := code.Struct{
		Docs:     []string{"Generated CPI accounts for [`" + s.Ident + "`]."},
		Pub:      true,
		Name:     s.Ident,
		Generics: generics,
	}

	var metas, infos []code.Stmt

	for _, f := range s.Fields {
		sf := code.StructField{Docs: f.Docs, Pub: true, Name: f.Ident}
		self := code.SelfField(f.Ident)

		switch {
		case f.IsComposite():
			name := f.TypeName()
			sf.Type = CpiClientAccountsModule(name) + "::" + name + "<" + lt + ">"

			metas = append(metas, extend("account_metas", code.MethodCall{
				Recv:   self,
				Method: "to_account_metas",
				Args:   []code.Expr{code.None},
			}))
			infos = append(infos, extend("account_infos", code.Call{
				Func: runtimeCall("ToAccountInfos", "to_account_infos"),
				Args: []code.Expr{code.Ref{Expr: self}},
			}))
		case f.Optional:
			sf.Type = "Option<" + info + ">"
			bound := code.Ident{Name: f.Ident}

			metas = append(metas, code.IfLet{
				Pattern: "Some(" + f.Ident + ")",
				Value:   code.Ref{Expr: self},
				Then:    []code.Stmt{push("account_metas", newMeta(keyOf(bound), f))},
			})
			infos = append(infos, code.IfLet{
				Pattern: "Some(" + f.Ident + ")",
				Value:   code.Ref{Expr: self},
				Then:    []code.Stmt{push("account_infos", toAccountInfo(bound))},
			})
		default:
			sf.Type = info

			metas = append(metas, push("account_metas", newMeta(keyOf(code.Ref{Expr: self}), f)))
			infos = append(infos, push("account_infos", toAccountInfo(code.Ref{Expr: self})))
		}

		st.Fields = append(st.Fields, sf)
	}

	self := code.TypeName{Name: s.Ident, Args: generics}

	mod := code.Module{
		Pub:  true,
		Name: CpiClientAccountsModule(s.Ident),
		Items: []code.Item{
			code.Use{Path: "super::*"},
			st,
			code.Impl{
				Generics: generics,
				Trait:    code.TypeName{Name: RuntimePath("ToAccountMetas")},
				For:      self,
				Fns:      []code.Fn{metasFn(collect("account_metas", metas))},
			},
			code.Impl{
				Generics: generics,
				Trait:    code.TypeName{Name: RuntimePath("ToAccountInfos"), Args: generics},
				For:      self,
				Fns:      []code.Fn{infosFn(lt, collect("account_infos", infos))},
			},
		},
	}

	return code.Fragment{Name: CpiClientAccountsName, Items: []code.Item{mod}}, nil
}

func keyOf(e code.Expr) code.Expr {
	return code.Call{Func: runtimeCall("Key", "key"), Args: []code.Expr{e}}
}

func toAccountInfo(e code.Expr) code.Expr {
	return code.Call{Func: runtimeCall("ToAccountInfo", "to_account_info"), Args: []code.Expr{e}}
}
