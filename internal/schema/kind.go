package schema

//go:generate go tool stringer -type=FieldKind -linecomment -output=field_kind_string.go
//go:generate go tool stringer -type=ParamKind -linecomment -output=param_kind_string.go
//go:generate go tool stringer -type=PredicateKind -linecomment -output=predicate_kind_string.go

// FieldKind tells whether a field is a single resource slot or a nested schema.
type FieldKind int

const (
	_ FieldKind = iota // skip zero value, an unset kind is invalid

	FieldLeaf      // leaf
	FieldComposite // composite
)

// ParamKind is the kind of a declared generic parameter.
type ParamKind int

const (
	_ ParamKind = iota

	ParamLifetime // lifetime
	ParamType     // type
	ParamConst    // const
)

// PredicateKind is the kind of a bound-clause predicate.
type PredicateKind int

const (
	_ PredicateKind = iota

	PredicateLifetime // lifetime
	PredicateType     // type
)
