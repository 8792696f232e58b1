package plan

import (
	"errors"
	"fmt"

	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// ErrUnresolvedComposite is returned when a composite field has no nested
// schema to delegate to.
var ErrUnresolvedComposite = errors.New("unresolved composite")

// Instance is a live value of a schema: the schema itself and one nested
// instance per composite field, keyed by field identifier.
type Instance struct {
	Schema *schema.Schema
	Nested map[string]*Instance
}

// NewInstance builds an instance of s, resolving composites through cat.
func NewInstance(cat *schema.Catalog, s *schema.Schema) (*Instance, error) {
	return newInstance(cat, s, map[string]bool{})
}

func newInstance(cat *schema.Catalog, s *schema.Schema, visiting map[string]bool) (*Instance, error) {
	if visiting[s.Ident] {
		return nil, fmt.Errorf("%w: %s embeds itself", schema.ErrCompositeCycle, s.Ident)
	}

	visiting[s.Ident] = true
	defer delete(visiting, s.Ident)

	in := &Instance{Schema: s, Nested: map[string]*Instance{}}

	for _, f := range s.Composites() {
		nested, ok := cat.Nested(f)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s refers to %s", ErrUnresolvedComposite, s.Ident, f.Ident, f.TypeName())
		}

		child, err := newInstance(cat, nested, visiting)
		if err != nil {
			return nil, err
		}

		in.Nested[f.Ident] = child
	}

	return in, nil
}

// NumAccounts evaluates the schema's count formula against this instance.
func (in *Instance) NumAccounts() (int, error) {
	expr, err := BuildCountExpression(in.Schema)
	if err != nil {
		return 0, err
	}

	return code.Eval(expr, in)
}

// Call implements code.Env: self.<field>.num_accounts() evaluates the nested
// instance's own formula.
func (in *Instance) Call(call code.MethodCall) (int, error) {
	f, ok := call.Recv.(code.Field)
	if !ok || f.Recv != code.Self {
		return 0, fmt.Errorf("%w: call on %T", code.ErrNotArithmetic, call.Recv)
	}

	if call.Method != CountMethod {
		return 0, fmt.Errorf("%w: unknown method %s", code.ErrNotArithmetic, call.Method)
	}

	child, ok := in.Nested[f.Name]
	if !ok {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnresolvedComposite, in.Schema.Ident, f.Name)
	}

	return child.NumAccounts()
}

// ExpandLeaves counts the leaves reachable from s by expanding every
// composite through cat, without going through the count formula.
func ExpandLeaves(cat *schema.Catalog, s *schema.Schema) (int, error) {
	in, err := NewInstance(cat, s)
	if err != nil {
		return 0, err
	}

	return in.expand(), nil
}

func (in *Instance) expand() int {
	n := 0

	for _, f := range in.Schema.Fields {
		switch f.Kind {
		case schema.FieldLeaf:
			n++
		case schema.FieldComposite:
			n += in.Nested[f.Ident].expand()
		}
	}

	return n
}
