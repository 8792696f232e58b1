package capability

import (
	"regexp"

	"accounts-generator/internal/code"
	"accounts-generator/internal/schema"
)

// RuntimeCrate is the crate the emitted code calls into.
const RuntimeCrate = "anchor_lang"

// Fragment names, also used as generator names.
const (
	TryAccountsName       = "try_accounts"
	ToAccountMetasName    = "to_account_metas"
	ToAccountInfosName    = "to_account_infos"
	ExitName              = "exit"
	ClientAccountsName    = "client_accounts"
	CpiClientAccountsName = "cpi_client_accounts"
)

// Generator produces one fragment for a schema.
type Generator interface {
	Name() string
	Generate(s *schema.Schema) (code.Fragment, error)
}

// Default returns the capability generators in emission order.
func Default() []Generator {
	return []Generator{TryAccounts{}, ToAccountInfos{}, ToAccountMetas{}, Exit{}}
}

// ClientHelper returns the client mirror generator.
func ClientHelper() Generator {
	return ClientAccounts{}
}

// CpiHelper returns the CPI mirror generator.
func CpiHelper() Generator {
	return CpiClientAccounts{}
}

// RuntimePath qualifies name with the runtime crate, e.g. "anchor_lang::Accounts".
func RuntimePath(name string) string {
	return RuntimeCrate + "::" + name
}

func runtimeCall(segments ...string) code.Path {
	return code.NewPath(append([]string{RuntimeCrate}, segments...)...)
}

var (
	pubkeyType      = RuntimePath("prelude::Pubkey")
	accountMetaType = RuntimePath("prelude::AccountMeta")
	resultType      = RuntimePath("Result")
)

func accountInfoType(lifetime string) string {
	return RuntimePath("prelude::AccountInfo") + "<" + lifetime + ">"
}

func vecOf(t string) string {
	return "Vec<" + t + ">"
}

// collect builds the "let mut acc = vec![]; ...; acc" body shared by the
// list-producing capabilities.
func collect(acc string, stmts []code.Stmt) []code.Stmt {
	body := make([]code.Stmt, 0, len(stmts)+2)
	body = append(body, code.Let{Name: acc, Mut: true, Value: code.Macro{Name: "vec"}})
	body = append(body, stmts...)
	body = append(body, code.Return{Expr: code.Ident{Name: acc}})

	return body
}

func extend(acc string, e code.Expr) code.Stmt {
	return code.ExprStmt{Expr: code.MethodCall{
		Recv:   code.Ident{Name: acc},
		Method: "extend",
		Args:   []code.Expr{e},
	}}
}

func push(acc string, e code.Expr) code.Stmt {
	return code.ExprStmt{Expr: code.MethodCall{
		Recv:   code.Ident{Name: acc},
		Method: "push",
		Args:   []code.Expr{e},
	}}
}

// newMeta builds AccountMeta::new(key, signer) for writable resources and
// AccountMeta::new_readonly(key, signer) otherwise.
func newMeta(key code.Expr, f schema.Field) code.Expr {
	ctor := "new_readonly"
	if f.Mut {
		ctor = "new"
	}

	return code.Call{
		Func: runtimeCall("prelude", "AccountMeta", ctor),
		Args: []code.Expr{key, code.BoolLit{Value: f.Signer}},
	}
}

var canonicalLifetimeRe = regexp.MustCompile(canonicalLifetime + `\b`)

// withLifetime substitutes the canonical lifetime in a declared field type
// with the view's lifetime.
func withLifetime(typ, lifetime string) string {
	if lifetime == canonicalLifetime {
		return typ
	}

	return canonicalLifetimeRe.ReplaceAllLiteralString(typ, lifetime)
}
