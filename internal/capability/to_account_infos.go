package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// ToAccountInfos generates the impl flattening the schema value to the list of
// resource handles it holds, recursing into composites.
type ToAccountInfos struct{}

// Name implements Generator.
func (ToAccountInfos) Name() string { return ToAccountInfosName }

// Generate implements Generator.
func (ToAccountInfos) Generate(s *schema.Schema) (code.Fragment, error) {
	v := viewOf(s)

	stmts := make([]code.Stmt, 0, len(s.Fields))
	for _, f := range s.Fields {
		stmts = append(stmts, extend("account_infos", code.MethodCall{
			Recv:   code.SelfField(f.Ident),
			Method: "to_account_infos",
		}))
	}

	fn := infosFn(v.lifetime, collect("account_infos", stmts))
	trait := code.TypeName{Name: RuntimePath("ToAccountInfos"), Args: v.lifetimeArg()}

	return code.Fragment{Name: ToAccountInfosName, Items: []code.Item{v.impl(trait, fn)}}, nil
}

func infosFn(lifetime string, body []code.Stmt) code.Fn {
	return code.Fn{
		Name:     "to_account_infos",
		Receiver: code.RefSelf,
		Result:   vecOf(accountInfoType(lifetime)),
		Body:     body,
	}
}
