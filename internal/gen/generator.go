package gen

import (
	"fmt"

	"accounts-generator/internal/capability"
	"accounts-generator/internal/code"
	"accounts-generator/internal/common"
	"accounts-generator/internal/plan"
	"accounts-generator/internal/render"
	"accounts-generator/internal/schema"
)

// Feature markers guarding the helper modules. A consumer enabling a marker
// compiles the corresponding module out.
const (
	FeatureNoClientAccounts = "no-client-accounts"
	FeatureNoCpiSupport     = "no-cpi-support"
)

// CountFragmentName names the slot-count fragment in a unit.
const CountFragmentName = plan.CountMethod

// Flags selects the optional helper modules.
type Flags struct {
	GenerateClientHelpers bool
	GenerateCpiHelpers    bool
}

// DefaultFlags enables both helper modules.
func DefaultFlags() Flags {
	return Flags{GenerateClientHelpers: true, GenerateCpiHelpers: true}
}

// Option configures a Generator.
type Option func(*Generator)

// WithCapabilities replaces the capability generators.
func WithCapabilities(gs ...capability.Generator) Option {
	return func(g *Generator) {
		g.capabilities = gs
	}
}

// WithClientHelper replaces the client mirror generator.
func WithClientHelper(c capability.Generator) Option {
	return func(g *Generator) {
		g.client = c
	}
}

// WithCpiHelper replaces the CPI mirror generator.
func WithCpiHelper(c capability.Generator) Option {
	return func(g *Generator) {
		g.cpi = c
	}
}

// Generator emits the code unit of a schema. It holds no per-call state and
// may be shared between goroutines.
type Generator struct {
	capabilities []capability.Generator
	client       capability.Generator
	cpi          capability.Generator
}

// NewGenerator returns a Generator using the default collaborators unless
// replaced by opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		capabilities: capability.Default(),
		client:       capability.ClientHelper(),
		cpi:          capability.CpiHelper(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GeneratedFile represents a rendered source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "create_vault_accounts.rs").
	Filename string
	// Content is the rendered source.
	Content []byte
}

// Generate returns the code unit of s. The schema is validated first; any
// failure aborts generation and no unit is returned.
func (g *Generator) Generate(s *schema.Schema, flags Flags) (*code.Unit, error) {
	if err := schema.Validate(s); err != nil {
		return nil, err
	}

	p, err := plan.Resolve(s)
	if err != nil {
		return nil, fmt.Errorf("resolving generics of %s: %w", s.Ident, err)
	}

	expr, err := plan.BuildCountExpression(s)
	if err != nil {
		return nil, fmt.Errorf("building count expression of %s: %w", s.Ident, err)
	}

	unit := &code.Unit{Schema: s.Ident}
	unit.Fragments = append(unit.Fragments, countFragment(s, p, expr))

	for _, c := range g.capabilities {
		frag, err := c.Generate(s)
		if err != nil {
			return nil, fmt.Errorf("generating %s for %s: %w", c.Name(), s.Ident, err)
		}

		unit.Fragments = append(unit.Fragments, frag)
	}

	helpers := []struct {
		enabled bool
		gen     capability.Generator
		feature string
	}{
		{flags.GenerateClientHelpers, g.client, FeatureNoClientAccounts},
		{flags.GenerateCpiHelpers, g.cpi, FeatureNoCpiSupport},
	}

	for _, h := range helpers {
		if !h.enabled || h.gen == nil {
			continue
		}

		frag, err := h.gen.Generate(s)
		if err != nil {
			return nil, fmt.Errorf("generating %s for %s: %w", h.gen.Name(), s.Ident, err)
		}

		unit.Fragments = append(unit.Fragments, guard(frag, h.feature))
	}

	return unit, nil
}

// GenerateCatalog renders one file per schema of cat, nested schemas first.
func (g *Generator) GenerateCatalog(cat *schema.Catalog, flags Flags) ([]GeneratedFile, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	order, err := cat.Order()
	if err != nil {
		return nil, err
	}

	files := make([]GeneratedFile, 0, len(order))

	for _, s := range order {
		unit, err := g.Generate(s, flags)
		if err != nil {
			return nil, err
		}

		content, err := render.File(unit)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", s.Ident, err)
		}

		files = append(files, GeneratedFile{Filename: Filename(s.Ident), Content: content})
	}

	return files, nil
}

// Filename returns the output file name of a schema.
func Filename(ident string) string {
	return common.ToSnake(ident) + "_accounts.rs"
}

func countFragment(s *schema.Schema, p *plan.GenericsPlan, expr code.Sum) code.Fragment {
	impl := code.Impl{
		Generics: implParams(p.CombinedGenerics),
		Trait:    code.TypeName{Name: capability.RuntimePath("NumAccounts")},
		For:      code.TypeName{Name: s.Ident, Args: p.StructGenerics},
		Where:    p.BoundClause,
		Fns: []code.Fn{{
			Name:     plan.CountMethod,
			Receiver: code.RefSelf,
			Result:   "usize",
			Body:     []code.Stmt{code.Return{Expr: expr}},
		}},
	}

	return code.Fragment{Name: CountFragmentName, Items: []code.Item{impl}}
}

// implParams drops parameter defaults, which impl headers do not accept.
func implParams(params []schema.GenericParam) []schema.GenericParam {
	out := make([]schema.GenericParam, len(params))
	for i, p := range params {
		p.Default = ""
		out[i] = p
	}

	return out
}

func guard(frag code.Fragment, feature string) code.Fragment {
	items := make([]code.Item, len(frag.Items))
	for i, it := range frag.Items {
		items[i] = code.Cfg{Feature: feature, Negate: true, Item: it}
	}

	return code.Fragment{Name: frag.Name, Items: items}
}
