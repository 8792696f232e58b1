package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedLifetime is returned when a lifetime name is not of the form 'ident.
var ErrMalformedLifetime = errors.New("malformed lifetime")

var (
	lifetimeRe = regexp.MustCompile(`^'[A-Za-z_][A-Za-z0-9_]*$`)
	identRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ParseLifetime validates a lifetime name that may be declared as a generic
// parameter. The reserved lifetimes 'static and '_ are rejected.
func ParseLifetime(s string) (string, error) {
	s = strings.TrimSpace(s)

	if !lifetimeRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrMalformedLifetime, s)
	}

	if s == "'static" || s == "'_" {
		return "", fmt.Errorf("%w: %q is reserved", ErrMalformedLifetime, s)
	}

	return s, nil
}

// IsIdent reports whether s is a plain identifier.
func IsIdent(s string) bool {
	return identRe.MatchString(s)
}

// ParseGenericParam parses a single generic parameter as written in a
// declaration header:
//
//	'a
//	'a: 'b + 'c
//	T
//	T: Clone + Default = u8
//	const N: usize
func ParseGenericParam(s string) (GenericParam, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return GenericParam{}, errors.New("empty generic parameter")
	}

	if rest, ok := strings.CutPrefix(s, "const "); ok {
		name, typ, found := cutTopLevelColon(rest)
		if !found {
			return GenericParam{}, fmt.Errorf("const parameter %q has no type", s)
		}

		p := ConstParam(strings.TrimSpace(name), "")
		typ, def, _ := strings.Cut(typ, "=")
		p.ConstType = strings.TrimSpace(typ)
		p.Default = strings.TrimSpace(def)

		if !IsIdent(p.Name) || p.ConstType == "" {
			return GenericParam{}, fmt.Errorf("malformed const parameter %q", s)
		}

		return p, nil
	}

	head, def, _ := cutTopLevel(s, '=')
	name, bounds, _ := cutTopLevelColon(head)
	name = strings.TrimSpace(name)

	p := GenericParam{
		Name:    name,
		Bounds:  splitBounds(bounds),
		Default: strings.TrimSpace(def),
	}

	if strings.HasPrefix(name, "'") {
		if _, err := ParseLifetime(name); err != nil {
			return GenericParam{}, err
		}

		if p.Default != "" {
			return GenericParam{}, fmt.Errorf("lifetime %s cannot have a default", name)
		}

		p.Kind = ParamLifetime

		return p, nil
	}

	if !IsIdent(name) {
		return GenericParam{}, fmt.Errorf("malformed type parameter %q", s)
	}

	p.Kind = ParamType

	return p, nil
}

// ParsePredicate parses a bound-clause predicate such as "T: Clone + Default"
// or "'a: 'b".
func ParsePredicate(s string) (Predicate, error) {
	subject, bounds, found := cutTopLevelColon(strings.TrimSpace(s))
	if !found {
		return Predicate{}, fmt.Errorf("predicate %q has no bounds", s)
	}

	p := Predicate{
		Subject: strings.TrimSpace(subject),
		Bounds:  splitBounds(bounds),
	}

	if p.Subject == "" || len(p.Bounds) == 0 {
		return Predicate{}, fmt.Errorf("malformed predicate %q", s)
	}

	if strings.HasPrefix(p.Subject, "'") {
		if _, err := ParseLifetime(p.Subject); err != nil {
			return Predicate{}, err
		}

		p.Kind = PredicateLifetime

		return p, nil
	}

	p.Kind = PredicateType

	return p, nil
}

// cutTopLevelColon splits at the first ':' outside brackets that is not
// part of a "::" path separator.
func cutTopLevelColon(s string) (before, after string, found bool) {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
		case ':':
			if depth != 0 {
				continue
			}

			if i+1 < len(s) && s[i+1] == ':' {
				i++
				continue
			}

			return s[:i], s[i+1:], true
		}
	}

	return s, "", false
}

// cutTopLevel splits at the first sep outside brackets.
func cutTopLevel(s string, sep byte) (before, after string, found bool) {
	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			// "->" in Fn bounds is not a closing bracket.
			if i > 0 && s[i-1] == '-' {
				continue
			}
			depth--
		case sep:
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}

	return s, "", false
}

// splitBounds splits "A + B<C + D>" into ["A", "B<C + D>"].
func splitBounds(s string) []string {
	var out []string

	rest := s
	for {
		before, after, found := cutTopLevel(rest, '+')
		if b := strings.TrimSpace(before); b != "" {
			out = append(out, b)
		}

		if !found {
			return out
		}

		rest = after
	}
}
