package plan

import (
	"fmt"
	"reflect"

	"accounts-generator/internal/schema"
)

// CountSlots counts the resource slots of an annotated Go struct directly,
// without generating anything: leaves tagged `accounts:"leaf"` count one and
// fields tagged `accounts:"composite"` contribute their own count.
//
// The count depends only on the type, so nil composite pointers are counted
// by their element type.
func CountSlots(v any) (int, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return 0, fmt.Errorf("%w: nil", schema.ErrNotStruct)
	}

	return countType(t, map[reflect.Type]bool{})
}

func countType(t reflect.Type, visiting map[reflect.Type]bool) (int, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return 0, fmt.Errorf("%w: %s", schema.ErrNotStruct, t)
	}

	if visiting[t] {
		return 0, fmt.Errorf("%w: %s embeds itself", schema.ErrCompositeCycle, t)
	}

	visiting[t] = true
	defer delete(visiting, t)

	n, tagged := 0, 0

	for i := range t.NumField() {
		sf := t.Field(i)

		tag, ok, err := schema.ParseTag(sf.Tag.Get(schema.TagName))
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
		}

		if !ok {
			continue
		}

		tagged++

		switch tag.Kind {
		case schema.FieldLeaf:
			n++
		case schema.FieldComposite:
			nested, err := countType(sf.Type, visiting)
			if err != nil {
				return 0, fmt.Errorf("%s.%s: %w", t, sf.Name, err)
			}

			n += nested
		}
	}

	if tagged == 0 {
		return 0, fmt.Errorf("%w: %s declares no fields", schema.ErrRejectedSchema, t)
	}

	return n, nil
}
