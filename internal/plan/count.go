package plan

import (
	"fmt"

	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// CountMethod is the slot-counting method every schema type implements.
const CountMethod = "num_accounts"

// BuildCountExpression returns the slot-count formula of s: fields in
// declaration order, leaves as the literal 1 and composites as a call to the
// nested value's own CountMethod, joined by addition.
func BuildCountExpression(s *schema.Schema) (code.Sum, error) {
	if len(s.Fields) == 0 {
		return code.Sum{}, fmt.Errorf("%w: %s declares no fields", schema.ErrRejectedSchema, s.Ident)
	}

	terms := make([]code.Expr, 0, len(s.Fields))

	for _, f := range s.Fields {
		term, err := contribution(f)
		if err != nil {
			return code.Sum{}, fmt.Errorf("%s.%s: %w", s.Ident, f.Ident, err)
		}

		terms = append(terms, term)
	}

	return code.Sum{Terms: terms}, nil
}

func contribution(f schema.Field) (code.Expr, error) {
	switch f.Kind {
	case schema.FieldLeaf:
		return code.IntLit{Value: 1}, nil
	case schema.FieldComposite:
		return code.MethodCall{Recv: code.SelfField(f.Ident), Method: CountMethod}, nil
	default:
		return nil, fmt.Errorf("%w: invalid field kind %s", schema.ErrRejectedSchema, f.Kind)
	}
}
