package capability

import (
	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// ToAccountMetas generates the impl serializing the schema value to a list of
// resource metadata. Signer leaves force the signer flag; composites pass the
// caller's override through.
type ToAccountMetas struct{}

// Name implements Generator.
func (ToAccountMetas) Name() string { return ToAccountMetasName }

// Generate implements Generator.
func (ToAccountMetas) Generate(s *schema.Schema) (code.Fragment, error) {
	v := viewOf(s)

	stmts := make([]code.Stmt, 0, len(s.Fields))

	for _, f := range s.Fields {
		var signer code.Expr = code.None

		switch f.Kind {
		case schema.FieldLeaf:
			if f.Signer {
				signer = code.Some(code.BoolLit{Value: true})
			}
		case schema.FieldComposite:
			signer = code.Ident{Name: "is_signer"}
		}

		stmts = append(stmts, extend("account_metas", code.MethodCall{
			Recv:   code.SelfField(f.Ident),
			Method: "to_account_metas",
			Args:   []code.Expr{signer},
		}))
	}

	fn := metasFn(collect("account_metas", stmts))
	trait := code.TypeName{Name: RuntimePath("ToAccountMetas")}

	return code.Fragment{Name: ToAccountMetasName, Items: []code.Item{v.impl(trait, fn)}}, nil
}

func metasFn(body []code.Stmt) code.Fn {
	return code.Fn{
		Name:     "to_account_metas",
		Receiver: code.RefSelf,
		Params:   []code.Param{{Name: "is_signer", Type: "Option<bool>"}},
		Result:   vecOf(accountMetaType),
		Body:     body,
	}
}
