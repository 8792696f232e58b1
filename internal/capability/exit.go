package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// Exit generates the AccountsExit impl run when the operation finishes.
// Writable leaves persist their state; composites always delegate.
type Exit struct{}

// Name implements Generator.
func (Exit) Name() string { return ExitName }

// Generate implements Generator.
func (Exit) Generate(s *schema.Schema) (code.Fragment, error) {
	v := viewOf(s)

	var body []code.Stmt

	for _, f := range s.Fields {
		if f.Kind == schema.FieldLeaf && !f.Mut {
			continue
		}

		body = append(body, code.ExprStmt{Expr: code.Try{Expr: code.Call{
			Func: runtimeCall("AccountsExit", "exit"),
			Args: []code.Expr{code.Ref{Expr: code.SelfField(f.Ident)}, code.Ident{Name: "program_id"}},
		}}})
	}

	body = append(body, code.Return{Expr: code.Ok(code.UnitValue)})

	fn := code.Fn{
		Name:     "exit",
		Receiver: code.RefSelf,
		Params:   []code.Param{{Name: "program_id", Type: "&" + pubkeyType}},
		Result:   resultType + "<()>",
		Body:     body,
	}

	trait := code.TypeName{Name: RuntimePath("AccountsExit"), Args: v.lifetimeArg()}

	return code.Fragment{Name: ExitName, Items: []code.Item{v.impl(trait, fn)}}, nil
}
