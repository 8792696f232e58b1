package code

import "accounts-generator/internal/schema"

// Stmt is a statement inside a function body.
type Stmt interface {
	stmtNode()
}

// Let binds Name, optionally typed and mutable.
type Let struct {
	Name  string
	Mut   bool
	Type  string
	Value Expr
}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	Expr Expr
}

// Return is the tail expression of a body.
type Return struct {
	Expr Expr
}

// IfLet runs Then when Value matches Pattern, Else otherwise.
type IfLet struct {
	Pattern string
	Value   Expr
	Then    []Stmt
	Else    []Stmt
}

func (Let) stmtNode()      {}
func (ExprStmt) stmtNode() {}
func (Return) stmtNode()   {}
func (IfLet) stmtNode()    {}

// Item is a top-level declaration.
type Item interface {
	itemNode()
}

// TypeName names a type with generic arguments, e.g. Foo<'info, T>.
type TypeName struct {
	Name string
	Args []schema.GenericParam
}

// Receiver is how a method takes self.
type Receiver int

const (
	NoReceiver Receiver = iota
	RefSelf
	RefMutSelf
)

// Param is a function parameter.
type Param struct {
	Name string
	Type string
}

// Fn is a function or method.
type Fn struct {
	Docs     []string
	Pub      bool
	Name     string
	Receiver Receiver
	Params   []Param
	Result   string
	Body     []Stmt
}

// Impl implements Trait for For.
type Impl struct {
	Generics []schema.GenericParam
	Trait    TypeName
	For      TypeName
	Where    []schema.Predicate
	Fns      []Fn
}

// StructField is a named struct member.
type StructField struct {
	Docs []string
	Pub  bool
	Name string
	Type string
}

// Struct declares a named struct type.
type Struct struct {
	Docs     []string
	Derives  []string
	Pub      bool
	Name     string
	Generics []schema.GenericParam
	Where    []schema.Predicate
	Fields   []StructField
}

// Module groups items under a name.
type Module struct {
	Docs  []string
	Pub   bool
	Name  string
	Items []Item
}

// Use imports a path into the enclosing module.
type Use struct {
	Path string
}

// Cfg includes Item only when the feature condition holds. With Negate set
// the item is included when the feature is off.
type Cfg struct {
	Feature string
	Negate  bool
	Item    Item
}

func (Impl) itemNode()   {}
func (Struct) itemNode() {}
func (Module) itemNode() {}
func (Use) itemNode()    {}
func (Cfg) itemNode()    {}
