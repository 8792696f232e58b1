package schema

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"accounts-generator/internal/diagnostic"
)

// Catalog is a set of schemas loaded together, keyed by identifier.
// Composite fields may refer to schemas in the catalog or to names declared
// external (provided by another compilation unit).
type Catalog struct {
	schemas  map[string]*Schema
	external map[string]bool
}

// NewCatalog returns a catalog holding the given schemas.
func NewCatalog(schemas ...*Schema) (*Catalog, error) {
	c := &Catalog{
		schemas:  make(map[string]*Schema, len(schemas)),
		external: make(map[string]bool),
	}

	for _, s := range schemas {
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add inserts a schema. Identifiers must be unique within the catalog.
func (c *Catalog) Add(s *Schema) error {
	if _, ok := c.schemas[s.Ident]; ok {
		var d diagnostic.Diagnostics
		d.AddError(CodeDuplicateSchema, "schema declared more than once", s.Ident, "")

		return newValidationError(d)
	}

	c.schemas[s.Ident] = s

	return nil
}

// DeclareExternal marks names as schemas provided elsewhere. Composite fields
// may refer to them; they are never generated.
func (c *Catalog) DeclareExternal(names ...string) {
	for _, n := range names {
		c.external[n] = true
	}
}

// IsExternal reports whether name was declared external.
func (c *Catalog) IsExternal(name string) bool {
	return c.external[name]
}

// Get returns the schema with the given identifier.
func (c *Catalog) Get(name string) (*Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

// Len returns the number of schemas.
func (c *Catalog) Len() int {
	return len(c.schemas)
}

// Names returns schema identifiers in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.schemas))
	for n := range c.schemas {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Nested returns the schema a composite field delegates to, if it is part of
// the catalog.
func (c *Catalog) Nested(f Field) (*Schema, bool) {
	if !f.IsComposite() {
		return nil, false
	}

	return c.Get(f.TypeName())
}

// Validate checks every schema, that composite references resolve and that
// no schema embeds itself through a chain of composites.
func (c *Catalog) Validate() error {
	var (
		d         diagnostic.Diagnostics
		sentinels []error
	)

	names := c.Names()
	known := append(slices.Clone(names), c.externalNames()...)

	for _, name := range names {
		s := c.schemas[name]
		d.Merge(Check(s))

		for _, f := range s.Composites() {
			ref := f.TypeName()
			if ref == "" || c.external[ref] {
				continue
			}

			if _, ok := c.schemas[ref]; ok {
				continue
			}

			d.AddError(CodeUnknownComposite,
				fmt.Sprintf("composite refers to unknown schema %s", ref),
				s.Ident, f.Ident, suggest(ref, known)...)

			if !slices.Contains(sentinels, ErrUnknownComposite) {
				sentinels = append(sentinels, ErrUnknownComposite)
			}
		}
	}

	d.Merge(c.Lint())

	if d.IsValid() {
		if _, err := c.Order(); err != nil {
			return err
		}
	}

	return newValidationError(d, sentinels...)
}

// Lint reports problems that do not prevent generation: external names no
// composite field refers to.
func (c *Catalog) Lint() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics

	used := make(map[string]bool)

	for _, s := range c.schemas {
		for _, f := range s.Composites() {
			used[f.TypeName()] = true
		}
	}

	for _, n := range c.externalNames() {
		if !used[n] {
			d.AddWarning(CodeUnusedExternal, "declared external but no composite refers to it", n, "")
		}
	}

	return d
}

// Order returns the schemas so that every nested schema precedes the schemas
// that embed it. Ties are broken by identifier, so the order is stable.
func (c *Catalog) Order() ([]*Schema, error) {
	names := c.Names()

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	order, stuck, err := topoSort(len(names), func(i int) []int {
		var deps []int

		for _, f := range c.schemas[names[i]].Composites() {
			if j, ok := index[f.TypeName()]; ok && !slices.Contains(deps, j) {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		var d diagnostic.Diagnostics

		members := make([]string, len(stuck))
		for i, j := range stuck {
			members[i] = names[j]
		}

		for _, m := range members {
			d.AddError(CodeCompositeCycle,
				"composite fields form a cycle through "+strings.Join(members, ", "),
				m, "")
		}

		if len(members) == 0 {
			return nil, fmt.Errorf("ordering catalog: %w", err)
		}

		return nil, newValidationError(d, ErrCompositeCycle)
	}

	out := make([]*Schema, len(order))
	for i, j := range order {
		out[i] = c.schemas[names[j]]
	}

	return out, nil
}

func (c *Catalog) externalNames() []string {
	out := make([]string, 0, len(c.external))
	for n := range c.external {
		out = append(out, n)
	}

	sort.Strings(out)

	return out
}
