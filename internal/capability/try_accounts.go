package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// TryAccounts generates the Accounts impl that constructs the schema type from
// the runtime context, consuming resources field by field in declaration order.
type TryAccounts struct{}

// Name implements Generator.
func (TryAccounts) Name() string { return TryAccountsName }

// Generate implements Generator.
func (TryAccounts) Generate(s *schema.Schema) (code.Fragment, error) {
	v := viewOf(s)

	args := []code.Expr{
		code.Ident{Name: "program_id"},
		code.Ident{Name: "accounts"},
		code.Ident{Name: "ix_data"},
	}

	body := make([]code.Stmt, 0, len(s.Fields)+1)
	names := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		body = append(body, code.Let{
			Name: f.Ident,
			Type: v.fieldType(f),
			Value: code.Try{Expr: code.Call{
				Func: runtimeCall("Accounts", "try_accounts"),
				Args: args,
			}},
		})
		names = append(names, f.Ident)
	}

	body = append(body, code.Return{Expr: code.Ok(code.StructLit{Type: s.Ident, Fields: names})})

	fn := code.Fn{
		Name: "try_accounts",
		Params: []code.Param{
			{Name: "program_id", Type: "&" + pubkeyType},
			{Name: "accounts", Type: "&mut &" + v.lifetime + " [" + accountInfoType(v.lifetime) + "]"},
			{Name: "ix_data", Type: "&[u8]"},
		},
		Result: resultType + "<Self>",
		Body:   body,
	}

	trait := code.TypeName{Name: RuntimePath("Accounts"), Args: v.lifetimeArg()}

	return code.Fragment{Name: TryAccountsName, Items: []code.Item{v.impl(trait, fn)}}, nil
}
