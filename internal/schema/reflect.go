package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"accounts-generator/internal/common"
)

// TagName is the struct tag key read by FromType.
const TagName = "accounts"

// ErrNotStruct is returned when reflection meets a non-struct type.
var ErrNotStruct = errors.New("not a struct type")

// Tag is a parsed `accounts:"..."` struct tag.
type Tag struct {
	Kind     FieldKind
	Mut      bool
	Signer   bool
	Optional bool
}

// ParseTag parses a struct tag value such as "leaf,mut,signer" or
// "composite". An empty value or "-" yields a zero Tag and ok == false.
func ParseTag(value string) (tag Tag, ok bool, err error) {
	if value == "" || value == "-" {
		return Tag{}, false, nil
	}

	parts := strings.Split(value, ",")

	switch strings.TrimSpace(parts[0]) {
	case FieldLeaf.String():
		tag.Kind = FieldLeaf
	case FieldComposite.String():
		tag.Kind = FieldComposite
	default:
		return Tag{}, false, fmt.Errorf("unknown %s tag kind %q", TagName, parts[0])
	}

	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "mut":
			tag.Mut = true
		case "signer":
			tag.Signer = true
		case "optional":
			tag.Optional = true
		default:
			return Tag{}, false, fmt.Errorf("unknown %s tag option %q", TagName, opt)
		}
	}

	return tag, true, nil
}

// FromType builds a catalog from the Go struct type of v and every struct
// type it embeds through composite fields. Struct fields tagged
// `accounts:"leaf"` become leaves and `accounts:"composite"` become composites
// named after the field's type; untagged fields are ignored. Field identifiers
// are the snake_case Go field names. The returned schema is the root.
func FromType(v any) (*Catalog, *Schema, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, nil, fmt.Errorf("%w: nil", ErrNotStruct)
	}

	cat, err := NewCatalog()
	if err != nil {
		return nil, nil, err
	}

	root, err := fromType(cat, t)
	if err != nil {
		return nil, nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, nil, err
	}

	return cat, root, nil
}

func fromType(cat *Catalog, t reflect.Type) (*Schema, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	if s, ok := cat.Get(t.Name()); ok {
		return s, nil
	}

	s := &Schema{Ident: t.Name()}

	// Registered before walking fields so a self-embedding type terminates
	// here and is rejected by Validate as a cycle.
	if err := cat.Add(s); err != nil {
		return nil, err
	}

	for i := range t.NumField() {
		sf := t.Field(i)

		tag, ok, err := ParseTag(sf.Tag.Get(TagName))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name(), sf.Name, err)
		}

		if !ok {
			continue
		}

		f := Field{
			Kind:     tag.Kind,
			Ident:    common.ToSnake(sf.Name),
			Mut:      tag.Mut,
			Signer:   tag.Signer,
			Optional: tag.Optional,
		}

		if tag.Kind == FieldComposite {
			nested, err := fromType(cat, sf.Type)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.Name(), sf.Name, err)
			}

			f.Type = nested.Ident
		}

		s.Fields = append(s.Fields, f)
	}

	return s, nil
}
