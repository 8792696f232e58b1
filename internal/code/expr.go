package code

// Expr is an expression node.
type Expr interface {
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// Ident is a bare identifier such as a local variable or "self".
type Ident struct {
	Name string
}

// Path is a "::"-separated path such as Accounts::try_accounts.
type Path struct {
	Segments []string
}

// Field selects a named member: Recv.Name.
type Field struct {
	Recv Expr
	Name string
}

// MethodCall is Recv.Method(Args...).
type MethodCall struct {
	Recv   Expr
	Method string
	Args   []Expr
}

// Call is Func(Args...).
type Call struct {
	Func Expr
	Args []Expr
}

// Macro is a macro invocation with bracketed arguments: Name![Args...].
type Macro struct {
	Name string
	Args []Expr
}

// Ref takes a reference: &Expr or &mut Expr.
type Ref struct {
	Mut  bool
	Expr Expr
}

// Try propagates a failure: Expr?.
type Try struct {
	Expr Expr
}

// Sum adds its terms left to right. The last term has no trailing operator.
type Sum struct {
	Terms []Expr
}

// StructLit builds a value of Type using field init shorthand: Type { a, b }.
type StructLit struct {
	Type   string
	Fields []string
}

func (IntLit) exprNode()     {}
func (BoolLit) exprNode()    {}
func (Ident) exprNode()      {}
func (Path) exprNode()       {}
func (Field) exprNode()      {}
func (MethodCall) exprNode() {}
func (Call) exprNode()       {}
func (Macro) exprNode()      {}
func (Ref) exprNode()        {}
func (Try) exprNode()        {}
func (Sum) exprNode()        {}
func (StructLit) exprNode()  {}

// Self is the receiver identifier.
var Self = Ident{Name: "self"}

// None is the empty option value.
var None = Ident{Name: "None"}

// SelfField returns self.name.
func SelfField(name string) Field {
	return Field{Recv: Self, Name: name}
}

// Some wraps v in an option.
func Some(v Expr) Call {
	return Call{Func: Ident{Name: "Some"}, Args: []Expr{v}}
}

// Ok wraps v in a success result.
func Ok(v Expr) Call {
	return Call{Func: Ident{Name: "Ok"}, Args: []Expr{v}}
}

// UnitValue is the empty tuple value "()".
var UnitValue = Ident{Name: "()"}

// NewPath builds a Path from its segments.
func NewPath(segments ...string) Path {
	return Path{Segments: segments}
}
