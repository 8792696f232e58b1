package schema

import (
	"errors"
	"fmt"

	"accounts-generator/internal/common"
	"accounts-generator/internal/diagnostic"
)

// Sentinel errors. Every validation failure wraps ErrRejectedSchema.
var (
	ErrRejectedSchema   = errors.New("rejected schema")
	ErrUnknownComposite = errors.New("unknown composite type")
	ErrCompositeCycle   = errors.New("composite cycle")
)

// Diagnostic codes reported by validation.
const (
	CodeMissingIdent      = "SCH001"
	CodeNoFields          = "SCH002"
	CodeDuplicateField    = "SCH003"
	CodeMalformedLifetime = "SCH004"
	CodeCompositeNoType   = "SCH005"
	CodeDuplicateParam    = "SCH006"
	CodeInvalidFieldKind  = "SCH007"
	CodeInvalidFieldIdent = "SCH008"
	CodeUnknownComposite  = "SCH010"
	CodeCompositeCycle    = "SCH011"
	CodeDuplicateSchema   = "SCH012"
	CodeUnusedExternal    = "SCH013"
)

// ValidationError carries the diagnostics of a rejected schema or catalog.
type ValidationError struct {
	Diagnostics diagnostic.Diagnostics
	sentinels   []error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrRejectedSchema, e.Diagnostics.Error())
}

// Unwrap exposes ErrRejectedSchema plus any more specific sentinel.
func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrRejectedSchema}, e.sentinels...)
}

func newValidationError(d diagnostic.Diagnostics, sentinels ...error) error {
	if d.IsValid() {
		return nil
	}

	return &ValidationError{Diagnostics: d, sentinels: sentinels}
}

// Validate checks the structural preconditions the generator relies on and
// returns a *ValidationError wrapping ErrRejectedSchema on failure.
func Validate(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema", ErrRejectedSchema)
	}

	d := Check(s)

	return newValidationError(d)
}

// Check collects every diagnostic for a single schema without failing fast.
func Check(s *Schema) diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	if !IsIdent(s.Ident) {
		d.AddError(CodeMissingIdent, fmt.Sprintf("invalid schema identifier %q", s.Ident), s.Ident, "")
	}

	if common.IsEmpty(s.Fields) {
		d.AddError(CodeNoFields, "schema declares no fields", s.Ident, "")
	}

	checkGenerics(s, &d)

	seen := make(map[string]bool, len(s.Fields))

	for _, f := range s.Fields {
		if !IsIdent(f.Ident) {
			d.AddError(CodeInvalidFieldIdent, fmt.Sprintf("invalid field identifier %q", f.Ident), s.Ident, f.Ident)
		}

		if seen[f.Ident] {
			d.AddError(CodeDuplicateField, "duplicate field identifier", s.Ident, f.Ident)
		}

		seen[f.Ident] = true

		switch f.Kind {
		case FieldLeaf:
		case FieldComposite:
			if f.TypeName() == "" {
				d.AddError(CodeCompositeNoType, "composite field has no schema type", s.Ident, f.Ident)
			}
		default:
			d.AddError(CodeInvalidFieldKind, fmt.Sprintf("invalid field kind %s", f.Kind), s.Ident, f.Ident)
		}
	}

	return d
}

func checkGenerics(s *Schema, d *diagnostic.Diagnostics) {
	names := make(map[string]bool, len(s.Generics.Params))

	for _, p := range s.Generics.Params {
		if names[p.Name] {
			d.AddError(CodeDuplicateParam, fmt.Sprintf("duplicate generic parameter %s", p.Name), s.Ident, "")
		}

		names[p.Name] = true

		if p.Kind != ParamLifetime {
			continue
		}

		if _, err := ParseLifetime(p.Name); err != nil {
			d.AddError(CodeMalformedLifetime, err.Error(), s.Ident, "")
		}

		for _, b := range p.Bounds {
			if b == "'static" {
				continue
			}

			if _, err := ParseLifetime(b); err != nil {
				d.AddError(CodeMalformedLifetime, err.Error(), s.Ident, "")
			}
		}
	}

	if s.Generics.Where == nil {
		return
	}

	for _, p := range s.Generics.Where.Predicates {
		if p.Kind != PredicateLifetime {
			continue
		}

		if _, err := ParseLifetime(p.Subject); err != nil {
			d.AddError(CodeMalformedLifetime, err.Error(), s.Ident, "")
		}
	}
}
