package schema

import (
	"slices"
	"strings"

	"accounts-generator/internal/common"
)

// Schema is the parsed representation of a declared accounts structure.
type Schema struct {
	// Ident is the name of the declared type.
	Ident string
	// Generics holds the declared generic parameters and bound clause.
	Generics Generics
	// Fields is the ordered, non-empty list of resource fields.
	Fields []Field
	// Docs are documentation lines copied onto generated helper types.
	Docs []string
}

// Generics is the declared generic parameter list plus an optional bound clause.
type Generics struct {
	// Params keeps declaration order across lifetimes, types and consts.
	Params []GenericParam
	// Where is nil when the declaration has no bound clause.
	Where *WhereClause
}

// GenericParam is a single declared generic parameter.
type GenericParam struct {
	Kind ParamKind
	// Name includes the leading quote for lifetimes ("'a").
	Name string
	// Bounds are outlived lifetimes for a lifetime parameter and trait bounds
	// for a type parameter. Const parameters have none.
	Bounds []string
	// Default is the default type or value, if declared.
	Default string
	// ConstType is the value type of a const parameter.
	ConstType string
}

// WhereClause is an ordered set of bound predicates.
type WhereClause struct {
	Predicates []Predicate
}

// Predicate is a single bound-clause entry, e.g. "T: Clone" or "'a: 'info".
type Predicate struct {
	Kind    PredicateKind
	Subject string
	Bounds  []string
}

// Field is a single resource field of a schema.
type Field struct {
	Kind FieldKind
	// Ident is the field name.
	Ident string
	// Type names the nested schema for composites. For leaves it is the
	// resource wrapper type; empty means a plain resource handle.
	Type string
	// Mut marks a resource the operation may write.
	Mut bool
	// Signer marks a resource that must sign the operation.
	Signer bool
	// Optional marks a resource that may be absent in client mirrors.
	Optional bool
	// Docs are documentation lines.
	Docs []string
}

// Leaf returns a leaf field with the given name.
func Leaf(ident string) Field {
	return Field{Kind: FieldLeaf, Ident: ident}
}

// Composite returns a composite field delegating to the schema typ.
func Composite(ident, typ string) Field {
	return Field{Kind: FieldComposite, Ident: ident, Type: typ}
}

// Lifetime returns a lifetime parameter with optional outlives bounds.
func Lifetime(name string, bounds ...string) GenericParam {
	return GenericParam{Kind: ParamLifetime, Name: name, Bounds: bounds}
}

// TypeParam returns a type parameter with optional trait bounds.
func TypeParam(name string, bounds ...string) GenericParam {
	return GenericParam{Kind: ParamType, Name: name, Bounds: bounds}
}

// ConstParam returns a const parameter of the given value type.
func ConstParam(name, typ string) GenericParam {
	return GenericParam{Kind: ParamConst, Name: name, ConstType: typ}
}

// Outlives returns the predicate "lifetime: bound".
func Outlives(lifetime, bound string) Predicate {
	return Predicate{Kind: PredicateLifetime, Subject: lifetime, Bounds: []string{bound}}
}

// Bound returns the type predicate "subject: b1 + b2".
func Bound(subject string, bounds ...string) Predicate {
	return Predicate{Kind: PredicateType, Subject: subject, Bounds: bounds}
}

// Lifetimes returns the declared lifetime parameters in declaration order.
func (g Generics) Lifetimes() []GenericParam {
	var out []GenericParam

	for _, p := range g.Params {
		if p.Kind == ParamLifetime {
			out = append(out, p)
		}
	}

	return out
}

// HasLifetimes reports whether at least one lifetime is declared.
func (g Generics) HasLifetimes() bool {
	return slices.ContainsFunc(g.Params, func(p GenericParam) bool {
		return p.Kind == ParamLifetime
	})
}

// IsEmpty reports whether no parameters and no bound clause are declared.
func (g Generics) IsEmpty() bool {
	return len(g.Params) == 0 && (g.Where == nil || len(g.Where.Predicates) == 0)
}

// Clone returns a deep copy of the generics.
func (g Generics) Clone() Generics {
	var out Generics

	if g.Params != nil {
		out.Params = make([]GenericParam, len(g.Params))
		for i, p := range g.Params {
			out.Params[i] = p.Clone()
		}
	}

	if g.Where != nil {
		out.Where = g.Where.Clone()
	}

	return out
}

// Clone returns a deep copy of the parameter.
func (p GenericParam) Clone() GenericParam {
	p.Bounds = slices.Clone(p.Bounds)
	return p
}

// String renders the parameter as it appears in a declaration header,
// e.g. "'a: 'b", "T: Clone + Default = u8", "const N: usize".
func (p GenericParam) String() string {
	var sb strings.Builder

	if p.Kind == ParamConst {
		sb.WriteString("const ")
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.ConstType)
	} else {
		sb.WriteString(p.Name)

		if len(p.Bounds) > 0 {
			sb.WriteString(": ")
			sb.WriteString(strings.Join(p.Bounds, " + "))
		}
	}

	if p.Default != "" {
		sb.WriteString(" = ")
		sb.WriteString(p.Default)
	}

	return sb.String()
}

// Clone returns a deep copy of the clause.
func (w *WhereClause) Clone() *WhereClause {
	out := &WhereClause{Predicates: make([]Predicate, len(w.Predicates))}
	for i, p := range w.Predicates {
		p.Bounds = slices.Clone(p.Bounds)
		out.Predicates[i] = p
	}

	return out
}

// String renders the predicate, e.g. "T: Clone + Default".
func (p Predicate) String() string {
	return p.Subject + ": " + strings.Join(p.Bounds, " + ")
}

// TypeName returns the bare schema name a composite field refers to:
// path prefixes and generic arguments are stripped
// ("crate::Vault<'info>" -> "Vault").
func (f Field) TypeName() string {
	name := f.Type
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}

	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}

	return strings.TrimSpace(name)
}

// IsComposite reports whether the field delegates to a nested schema.
func (f Field) IsComposite() bool {
	return f.Kind == FieldComposite
}

// Last returns the final declared field.
func (s *Schema) Last() (Field, bool) {
	return common.Last(s.Fields)
}

// Composites returns the composite fields in declaration order.
func (s *Schema) Composites() []Field {
	var out []Field

	for _, f := range s.Fields {
		if f.IsComposite() {
			out = append(out, f)
		}
	}

	return out
}

// Clone returns a deep copy of the schema.
func (s *Schema) Clone() *Schema {
	out := &Schema{
		Ident:    s.Ident,
		Generics: s.Generics.Clone(),
		Fields:   make([]Field, len(s.Fields)),
		Docs:     slices.Clone(s.Docs),
	}

	for i, f := range s.Fields {
		f.Docs = slices.Clone(f.Docs)
		out.Fields[i] = f
	}

	return out
}
