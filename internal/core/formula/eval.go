package formula

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrSyntax marks any parse failure, including disallowed syntax.
	ErrSyntax = errors.New("formula syntax error")
	// ErrUnknownVariable marks a reference to a variable absent from the context.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrUnknownFunction marks a call outside the builtin whitelist.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrDivisionByZero marks a zero divisor in / or %.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrBadArity marks a builtin called with the wrong argument count.
	ErrBadArity = errors.New("wrong number of arguments")
)

// Env is the evaluation environment: the variable map plus an optional trace sink
// used by the formula authoring tool.
type Env struct {
	Vars  map[string]decimal.Decimal
	Trace []string

	tracing bool
}

func (e *Env) tracef(format string, args ...any) {
	if !e.tracing {
		return
	}
	e.Trace = append(e.Trace, fmt.Sprintf(format, args...))
}

// builtins is the whitelist of callable functions. Nothing outside this map can be
// invoked from a formula.
var builtins = map[string]func(args []decimal.Decimal) (decimal.Decimal, error){
	"min": func(args []decimal.Decimal) (decimal.Decimal, error) {
		if len(args) == 0 {
			return decimal.Zero, ErrBadArity
		}
		result := args[0]
		for _, arg := range args[1:] {
			if arg.LessThan(result) {
				result = arg
			}
		}
		return result, nil
	},
	"max": func(args []decimal.Decimal) (decimal.Decimal, error) {
		if len(args) == 0 {
			return decimal.Zero, ErrBadArity
		}
		result := args[0]
		for _, arg := range args[1:] {
			if arg.GreaterThan(result) {
				result = arg
			}
		}
		return result, nil
	},
	"round": func(args []decimal.Decimal) (decimal.Decimal, error) {
		switch len(args) {
		case 1:
			return args[0].Round(0), nil
		case 2:
			return args[0].Round(int32(args[1].IntPart())), nil
		}
		return decimal.Zero, ErrBadArity
	},
	"abs": func(args []decimal.Decimal) (decimal.Decimal, error) {
		if len(args) != 1 {
			return decimal.Zero, ErrBadArity
		}
		return args[0].Abs(), nil
	},
	"int": func(args []decimal.Decimal) (decimal.Decimal, error) {
		if len(args) != 1 {
			return decimal.Zero, ErrBadArity
		}
		return args[0].Truncate(0), nil
	},
	"float": func(args []decimal.Decimal) (decimal.Decimal, error) {
		if len(args) != 1 {
			return decimal.Zero, ErrBadArity
		}
		return args[0], nil
	},
}

// Evaluate parses and evaluates a formula against the given variables. The result is
// quantized to 2 decimal places, half up. Callers treat any returned error as
// recoverable: the concept contributes 0.00 and the payslip continues.
func Evaluate(input string, vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	node, err := Parse(input)
	if err != nil {
		return decimal.Zero, err
	}
	env := &Env{Vars: vars}
	result, err := node.Eval(env)
	if err != nil {
		return decimal.Zero, err
	}
	return result.Round(2), nil
}

// Validate evaluates a formula against a sample context and returns the result
// together with a step-by-step trace. Used by the concept authoring tool.
func Validate(input string, vars map[string]decimal.Decimal) (decimal.Decimal, []string, error) {
	node, err := Parse(input)
	if err != nil {
		return decimal.Zero, nil, err
	}
	env := &Env{Vars: vars, tracing: true}
	result, err := node.Eval(env)
	if err != nil {
		return decimal.Zero, env.Trace, err
	}
	result = result.Round(2)
	env.tracef("result = %s", result.String())
	return result, env.Trace, nil
}
