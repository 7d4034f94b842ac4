package formula

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Node is a parsed expression fragment. Evaluation never touches anything outside the
// supplied environment: no attribute access, no host calls, no control flow.
type Node interface {
	Eval(env *Env) (decimal.Decimal, error)
	String() string
}

// NumberLit is a decimal literal.
type NumberLit struct {
	Value decimal.Decimal
}

func (n *NumberLit) Eval(_ *Env) (decimal.Decimal, error) {
	return n.Value, nil
}

func (n *NumberLit) String() string {
	return n.Value.String()
}

// VarRef reads a variable from the environment.
type VarRef struct {
	Name string
}

func (n *VarRef) Eval(env *Env) (decimal.Decimal, error) {
	value, ok := env.Vars[n.Name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownVariable, n.Name)
	}
	env.tracef("%s = %s", n.Name, value.String())
	return value, nil
}

func (n *VarRef) String() string {
	return n.Name
}

// CallExpr invokes a whitelisted builtin function.
type CallExpr struct {
	Name string
	Args []Node
}

func (n *CallExpr) Eval(env *Env) (decimal.Decimal, error) {
	fn, ok := builtins[n.Name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownFunction, n.Name)
	}
	args := make([]decimal.Decimal, len(n.Args))
	for i, arg := range n.Args {
		value, err := arg.Eval(env)
		if err != nil {
			return decimal.Zero, err
		}
		args[i] = value
	}
	result, err := fn(args)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", n.Name, err)
	}
	env.tracef("%s -> %s", n.String(), result.String())
	return result, nil
}

func (n *CallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, arg := range n.Args {
		parts[i] = arg.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// UnaryExpr negates its operand.
type UnaryExpr struct {
	Op      string
	Operand Node
}

func (n *UnaryExpr) Eval(env *Env) (decimal.Decimal, error) {
	value, err := n.Operand.Eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	if n.Op == "-" {
		return value.Neg(), nil
	}
	return value, nil
}

func (n *UnaryExpr) String() string {
	return n.Op + n.Operand.String()
}

// BinaryExpr applies an arithmetic or comparison operator. Comparisons yield 1 or 0.
type BinaryExpr struct {
	Op    string
	Left  Node
	Right Node
}

func (n *BinaryExpr) Eval(env *Env) (decimal.Decimal, error) {
	left, err := n.Left.Eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	right, err := n.Right.Eval(env)
	if err != nil {
		return decimal.Zero, err
	}

	var result decimal.Decimal
	switch n.Op {
	case "+":
		result = left.Add(right)
	case "-":
		result = left.Sub(right)
	case "*":
		result = left.Mul(right)
	case "/":
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		result = left.Div(right)
	case "%":
		if right.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}
		result = left.Mod(right)
	case "==":
		result = boolToDecimal(left.Equal(right))
	case "!=":
		result = boolToDecimal(!left.Equal(right))
	case "<":
		result = boolToDecimal(left.LessThan(right))
	case "<=":
		result = boolToDecimal(left.LessThanOrEqual(right))
	case ">":
		result = boolToDecimal(left.GreaterThan(right))
	case ">=":
		result = boolToDecimal(left.GreaterThanOrEqual(right))
	default:
		return decimal.Zero, fmt.Errorf("%w: operator %q", ErrSyntax, n.Op)
	}
	env.tracef("%s %s %s = %s", left.String(), n.Op, right.String(), result.String())
	return result, nil
}

func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func boolToDecimal(b bool) decimal.Decimal {
	if b {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}
