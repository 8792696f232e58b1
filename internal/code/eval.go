package code

import (
	"errors"
	"fmt"
)

// ErrNotArithmetic is returned when Eval meets a node that has no integer value.
var ErrNotArithmetic = errors.New("expression is not arithmetic")

// Env resolves method calls while evaluating an arithmetic tree.
type Env interface {
	Call(call MethodCall) (int, error)
}

// EnvFunc adapts a function to Env.
type EnvFunc func(call MethodCall) (int, error)

// Call implements Env.
func (f EnvFunc) Call(call MethodCall) (int, error) {
	return f(call)
}

// Eval computes the integer value of e. Literals evaluate to themselves, sums
// add their terms and method calls are delegated to env.
func Eval(e Expr, env Env) (int, error) {
	switch n := e.(type) {
	case IntLit:
		return n.Value, nil
	case Sum:
		total := 0

		for _, t := range n.Terms {
			v, err := Eval(t, env)
			if err != nil {
				return 0, err
			}

			total += v
		}

		return total, nil
	case MethodCall:
		if env == nil {
			return 0, fmt.Errorf("%w: no environment for %s call", ErrNotArithmetic, n.Method)
		}

		return env.Call(n)
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotArithmetic, e)
	}
}
