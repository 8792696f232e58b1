package plan

import (
	"errors"
	"fmt"

	"accounts-generator/internal/common"
	"accounts-generator/internal/schema"
)

// CanonicalLifetime is synthesized when a schema declares no lifetime.
const CanonicalLifetime = "'info"

// ErrMalformedCanonicalLifetime means the canonical lifetime constant does not
// parse. It cannot happen with the shipped constant.
var ErrMalformedCanonicalLifetime = errors.New("malformed canonical lifetime")

// Resolve computes the GenericsPlan of s. It never modifies s.
func Resolve(s *schema.Schema) (*GenericsPlan, error) {
	return resolve(s, CanonicalLifetime)
}

func resolve(s *schema.Schema, canonical string) (*GenericsPlan, error) {
	declared := s.Generics.Clone()
	lifetimes := declared.Lifetimes()

	p := &GenericsPlan{}

	first, declaredLifetime := common.First(lifetimes)
	if !declaredLifetime {
		name, err := schema.ParseLifetime(canonical)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCanonicalLifetime, err)
		}

		p.TraitLifetime = schema.Lifetime(name)
		p.Synthesized = true
	} else {
		p.TraitLifetime = bare(first)
	}

	p.TraitGenerics = []schema.GenericParam{p.TraitLifetime}

	if declared.Where != nil {
		p.BoundClause = declared.Where.Predicates
	}

	for _, lt := range lifetimes {
		p.BoundClause = append(p.BoundClause, schema.Outlives(lt.Name, p.TraitLifetime.Name))
	}

	if p.Synthesized {
		p.CombinedGenerics = append([]schema.GenericParam{p.TraitLifetime}, declared.Params...)
	} else {
		p.CombinedGenerics = declared.Params
	}

	p.StructGenerics = make([]schema.GenericParam, len(declared.Params))
	for i, param := range declared.Params {
		p.StructGenerics[i] = bare(param)
	}

	return p, nil
}

// bare reduces a parameter to its identifier. Lifetimes lose their bounds;
// type and const parameters become unbound type identifiers, since they are
// only used to name the original type.
func bare(p schema.GenericParam) schema.GenericParam {
	switch p.Kind {
	case schema.ParamLifetime:
		return schema.GenericParam{Kind: schema.ParamLifetime, Name: p.Name}
	default:
		return schema.GenericParam{Kind: schema.ParamType, Name: p.Name}
	}
}
