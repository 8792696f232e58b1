package schema

import (
	"errors"
	"fmt"

	"accounts-generator/internal/common"
)

// Document is the on-disk form of a schema catalog.
type Document struct {
	Version  string      `yaml:"version" json:"version"`
	External []string    `yaml:"external,omitempty" json:"external,omitempty"`
	Schemas  []SchemaDoc `yaml:"schemas" json:"schemas"`
}

// SchemaDoc is the on-disk form of a single schema.
type SchemaDoc struct {
	Name     string     `yaml:"name" json:"name"`
	Docs     []string   `yaml:"docs,omitempty" json:"docs,omitempty"`
	Generics []string   `yaml:"generics,omitempty" json:"generics,omitempty"`
	Where    []string   `yaml:"where,omitempty" json:"where,omitempty"`
	Fields   []FieldDoc `yaml:"fields" json:"fields"`
}

// FieldDoc is the on-disk form of a field. A field with Composite set is a
// composite; otherwise it is a leaf and Type is its resource wrapper type.
type FieldDoc struct {
	Name      string   `yaml:"name" json:"name"`
	Type      string   `yaml:"type,omitempty" json:"type,omitempty"`
	Composite string   `yaml:"composite,omitempty" json:"composite,omitempty"`
	Mut       bool     `yaml:"mut,omitempty" json:"mut,omitempty"`
	Signer    bool     `yaml:"signer,omitempty" json:"signer,omitempty"`
	Optional  bool     `yaml:"optional,omitempty" json:"optional,omitempty"`
	Docs      []string `yaml:"docs,omitempty" json:"docs,omitempty"`
}

// Schema converts the document form into a model Schema. It parses generic
// parameters and predicates but does not validate field structure.
func (sd SchemaDoc) Schema() (*Schema, error) {
	s := &Schema{Ident: sd.Name, Docs: sd.Docs}

	for _, raw := range sd.Generics {
		p, err := ParseGenericParam(raw)
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", sd.Name, err)
		}

		s.Generics.Params = append(s.Generics.Params, p)
	}

	if len(sd.Where) > 0 {
		s.Generics.Where = &WhereClause{}

		for _, raw := range sd.Where {
			p, err := ParsePredicate(raw)
			if err != nil {
				return nil, fmt.Errorf("schema %s: %w", sd.Name, err)
			}

			s.Generics.Where.Predicates = append(s.Generics.Where.Predicates, p)
		}
	}

	for _, fd := range sd.Fields {
		f, err := fd.Field()
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", sd.Name, err)
		}

		s.Fields = append(s.Fields, f)
	}

	return s, nil
}

// Field converts the document form into a model Field.
func (fd FieldDoc) Field() (Field, error) {
	f := Field{
		Kind:     FieldLeaf,
		Ident:    fd.Name,
		Type:     fd.Type,
		Mut:      fd.Mut,
		Signer:   fd.Signer,
		Optional: fd.Optional,
		Docs:     fd.Docs,
	}

	if fd.Composite != "" {
		if fd.Type != "" {
			return Field{}, fmt.Errorf("field %s: set either type or composite, not both", fd.Name)
		}

		if fd.Signer {
			return Field{}, fmt.Errorf("field %s: a composite cannot be a signer", fd.Name)
		}

		f.Kind = FieldComposite
		f.Type = fd.Composite
	}

	return f, nil
}

// Catalog converts every schema in the document and validates the result.
func (d *Document) Catalog() (*Catalog, error) {
	if common.IsEmpty(d.Schemas) {
		return nil, errors.New("document declares no schemas")
	}

	c, err := NewCatalog()
	if err != nil {
		return nil, err
	}

	c.DeclareExternal(d.External...)

	for _, sd := range d.Schemas {
		s, err := sd.Schema()
		if err != nil {
			return nil, err
		}

		if err := c.Add(s); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// DocumentOf returns the document form of the given schemas.
func DocumentOf(schemas ...*Schema) *Document {
	d := &Document{Version: DocumentVersion}

	for _, s := range schemas {
		sd := SchemaDoc{Name: s.Ident, Docs: s.Docs}

		for _, p := range s.Generics.Params {
			sd.Generics = append(sd.Generics, p.String())
		}

		if s.Generics.Where != nil {
			for _, p := range s.Generics.Where.Predicates {
				sd.Where = append(sd.Where, p.String())
			}
		}

		for _, f := range s.Fields {
			fd := FieldDoc{
				Name:     f.Ident,
				Mut:      f.Mut,
				Signer:   f.Signer,
				Optional: f.Optional,
				Docs:     f.Docs,
			}

			if f.IsComposite() {
				fd.Composite = f.Type
			} else {
				fd.Type = f.Type
			}

			sd.Fields = append(sd.Fields, fd)
		}

		d.Schemas = append(d.Schemas, sd)
	}

	return d
}
