package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// Header prefixes every rendered file.
const Header = "// Code generated by accounts-generator. DO NOT EDIT."

// ErrUnknownNode is returned for tree nodes the renderer does not know.
var ErrUnknownNode = errors.New("unknown node")

const indentUnit = "    "

type printer struct {
	buf    bytes.Buffer
	indent int
	err    error
}

// File renders units into one file body, preceded by Header.
func File(units ...*code.Unit) ([]byte, error) {
	p := &printer{}
	p.line(Header)

	for _, u := range units {
		p.buf.WriteByte('\n')
		p.unit(u)
	}

	if p.err != nil {
		return nil, p.err
	}

	return p.buf.Bytes(), nil
}

// Unit renders all fragments of u, in order.
func Unit(u *code.Unit) ([]byte, error) {
	p := &printer{}
	p.unit(u)

	if p.err != nil {
		return nil, p.err
	}

	return p.buf.Bytes(), nil
}

// Item renders a single declaration.
func Item(it code.Item) (string, error) {
	p := &printer{}
	p.item(it)

	if p.err != nil {
		return "", p.err
	}

	return p.buf.String(), nil
}

// Expr renders an expression.
func Expr(e code.Expr) (string, error) {
	p := &printer{}
	s := p.expr(e)

	if p.err != nil {
		return "", p.err
	}

	return s, nil
}

// Generics renders a parameter list with its angle brackets, or nothing
// when the list is empty.
func Generics(params []schema.GenericParam) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, gp := range params {
		parts[i] = gp.String()
	}

	return "<" + strings.Join(parts, ", ") + ">"
}

// TypeName renders a type name with its generic arguments.
func TypeName(t code.TypeName) string {
	return t.Name + Generics(t.Args)
}

func (p *printer) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *printer) line(s string) {
	if s != "" {
		p.buf.WriteString(strings.Repeat(indentUnit, p.indent))
		p.buf.WriteString(s)
	}

	p.buf.WriteByte('\n')
}

func (p *printer) docs(lines []string) {
	for _, l := range lines {
		p.line("/// " + l)
	}
}

func (p *printer) unit(u *code.Unit) {
	first := true

	for _, f := range u.Fragments {
		for _, it := range f.Items {
			if !first {
				p.buf.WriteByte('\n')
			}

			first = false

			p.item(it)
		}
	}
}

func (p *printer) item(it code.Item) {
	switch n := it.(type) {
	case code.Impl:
		p.impl(n)
	case code.Struct:
		p.structDecl(n)
	case code.Module:
		p.module(n)
	case code.Use:
		p.line("use " + n.Path + ";")
	case code.Cfg:
		cond := fmt.Sprintf("feature = %q", n.Feature)
		if n.Negate {
			cond = "not(" + cond + ")"
		}

		p.line("#[cfg(" + cond + ")]")
		p.item(n.Item)
	default:
		p.fail(fmt.Errorf("%w: item %T", ErrUnknownNode, it))
	}
}

func (p *printer) where(preds []schema.Predicate) {
	if len(preds) == 0 {
		return
	}

	p.line("where")

	p.indent++
	for _, pr := range preds {
		p.line(pr.String() + ",")
	}
	p.indent--
}

func (p *printer) impl(n code.Impl) {
	head := "impl" + Generics(n.Generics) + " " + TypeName(n.Trait) + " for " + TypeName(n.For)

	if len(n.Where) == 0 {
		p.line(head + " {")
	} else {
		p.line(head)
		p.where(n.Where)
		p.line("{")
	}

	p.indent++
	for i, fn := range n.Fns {
		if i > 0 {
			p.line("")
		}

		p.fn(fn)
	}
	p.indent--

	p.line("}")
}

func (p *printer) fn(fn code.Fn) {
	p.docs(fn.Docs)

	var params []string

	switch fn.Receiver {
	case code.RefSelf:
		params = append(params, "&self")
	case code.RefMutSelf:
		params = append(params, "&mut self")
	}

	for _, prm := range fn.Params {
		params = append(params, prm.Name+": "+prm.Type)
	}

	head := "fn " + fn.Name + "(" + strings.Join(params, ", ") + ")"
	if fn.Pub {
		head = "pub " + head
	}

	if fn.Result != "" {
		head += " -> " + fn.Result
	}

	p.line(head + " {")
	p.block(fn.Body)
	p.line("}")
}

func (p *printer) block(body []code.Stmt) {
	p.indent++
	for _, st := range body {
		p.stmt(st)
	}
	p.indent--
}

func (p *printer) stmt(st code.Stmt) {
	switch n := st.(type) {
	case code.Let:
		s := "let "
		if n.Mut {
			s += "mut "
		}

		s += n.Name
		if n.Type != "" {
			s += ": " + n.Type
		}

		p.line(s + " = " + p.expr(n.Value) + ";")
	case code.ExprStmt:
		p.line(p.expr(n.Expr) + ";")
	case code.Return:
		p.line(p.expr(n.Expr))
	case code.IfLet:
		p.line("if let " + n.Pattern + " = " + p.expr(n.Value) + " {")
		p.block(n.Then)

		if len(n.Else) > 0 {
			p.line("} else {")
			p.block(n.Else)
		}

		p.line("}")
	default:
		p.fail(fmt.Errorf("%w: statement %T", ErrUnknownNode, st))
	}
}

func (p *printer) structDecl(n code.Struct) {
	p.docs(n.Docs)

	if len(n.Derives) > 0 {
		p.line("#[derive(" + strings.Join(n.Derives, ", ") + ")]")
	}

	head := "struct " + n.Name + Generics(n.Generics)
	if n.Pub {
		head = "pub " + head
	}

	if len(n.Where) == 0 {
		p.line(head + " {")
	} else {
		p.line(head)
		p.where(n.Where)
		p.line("{")
	}

	p.indent++
	for _, f := range n.Fields {
		p.docs(f.Docs)

		s := f.Name + ": " + f.Type + ","
		if f.Pub {
			s = "pub " + s
		}

		p.line(s)
	}
	p.indent--

	p.line("}")
}

func (p *printer) module(n code.Module) {
	p.docs(n.Docs)

	head := "mod " + n.Name + " {"
	if n.Pub {
		head = "pub " + head
	}

	p.line(head)

	p.indent++
	for i, it := range n.Items {
		if i > 0 {
			p.line("")
		}

		p.item(it)
	}
	p.indent--

	p.line("}")
}

func (p *printer) exprs(es []code.Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = p.expr(e)
	}

	return strings.Join(parts, ", ")
}

func (p *printer) expr(e code.Expr) string {
	switch n := e.(type) {
	case code.IntLit:
		return strconv.Itoa(n.Value)
	case code.BoolLit:
		return strconv.FormatBool(n.Value)
	case code.Ident:
		return n.Name
	case code.Path:
		return strings.Join(n.Segments, "::")
	case code.Field:
		return p.expr(n.Recv) + "." + n.Name
	case code.MethodCall:
		return p.expr(n.Recv) + "." + n.Method + "(" + p.exprs(n.Args) + ")"
	case code.Call:
		return p.expr(n.Func) + "(" + p.exprs(n.Args) + ")"
	case code.Macro:
		return n.Name + "![" + p.exprs(n.Args) + "]"
	case code.Ref:
		if n.Mut {
			return "&mut " + p.expr(n.Expr)
		}

		return "&" + p.expr(n.Expr)
	case code.Try:
		return p.expr(n.Expr) + "?"
	case code.Sum:
		if len(n.Terms) == 0 {
			return "0"
		}

		parts := make([]string, len(n.Terms))
		for i, t := range n.Terms {
			parts[i] = p.expr(t)
		}

		return strings.Join(parts, " + ")
	case code.StructLit:
		if len(n.Fields) == 0 {
			return n.Type + " {}"
		}

		return n.Type + " { " + strings.Join(n.Fields, ", ") + " }"
	default:
		p.fail(fmt.Errorf("%w: expression %T", ErrUnknownNode, e))
		return ""
	}
}
