package capability

import (
	"slices"
	"strings"

	"accounts-generator/internal/code"
	"accounts-generator/internal/common"
	"accounts-generator/internal/schema"
)

const canonicalLifetime = "'info"

// view is the generics view of the capability impls: the impl header
// parameters, the lifetime the traits are bound to, the self type and the
// declared bound clause. placeholder is set when field types spell the
// canonical lifetime without the schema declaring it.
type view struct {
	lifetime    string
	placeholder bool
	params   []schema.GenericParam
	self     code.TypeName
	where    []schema.Predicate
}

func viewOf(s *schema.Schema) view {
	g := s.Generics.Clone()

	v := view{lifetime: canonicalLifetime, params: g.Params}

	lifetimes := g.Lifetimes()
	if first, ok := common.First(lifetimes); ok {
		v.lifetime = first.Name
		v.placeholder = !slices.ContainsFunc(lifetimes, func(p schema.GenericParam) bool {
			return p.Name == canonicalLifetime
		})
	} else {
		v.params = append([]schema.GenericParam{schema.Lifetime(canonicalLifetime)}, g.Params...)
	}

	// Defaults are not allowed in impl headers.
	for i := range v.params {
		v.params[i].Default = ""
	}

	v.self = code.TypeName{Name: s.Ident}
	for _, p := range g.Params {
		v.self.Args = append(v.self.Args, schema.GenericParam{Kind: argKind(p.Kind), Name: p.Name})
	}

	if g.Where != nil {
		v.where = g.Where.Predicates
	}

	return v
}

func argKind(k schema.ParamKind) schema.ParamKind {
	if k == schema.ParamLifetime {
		return k
	}

	return schema.ParamType
}

// fieldType is the declared type of a field as seen from the impl. Leaves
// without a type are plain resource handles. Composites written without
// arguments take the trait lifetime.
func (v view) fieldType(f schema.Field) string {
	typ := f.Type

	switch {
	case typ == "":
		typ = accountInfoType(v.lifetime)
	case v.placeholder:
		typ = withLifetime(typ, v.lifetime)
	}

	if f.IsComposite() && !strings.Contains(typ, "<") {
		typ += "<" + v.lifetime + ">"
	}

	if f.Optional && !strings.HasPrefix(typ, "Option<") {
		typ = "Option<" + typ + ">"
	}

	return typ
}

// lifetimeArg returns the trait lifetime as a generic argument.
func (v view) lifetimeArg() []schema.GenericParam {
	return []schema.GenericParam{schema.Lifetime(v.lifetime)}
}

// impl returns an impl of trait for the schema type.
func (v view) impl(trait code.TypeName, fns ...code.Fn) code.Impl {
	return code.Impl{
		Generics: v.params,
		Trait:    trait,
		For:      v.self,
		Where:    v.where,
		Fns:      fns,
	}
}
