package formula

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vars(pairs map[string]string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(pairs))
	for k, v := range pairs {
		out[k] = decimal.RequireFromString(v)
	}
	return out
}

func TestEvaluate_Arithmetic(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		vars     map[string]decimal.Decimal
		expected string
	}{
		{"literal", "42", nil, "42"},
		{"decimal literal", "12.345", nil, "12.35"},
		{"addition", "1 + 2 + 3", nil, "6"},
		{"precedence", "2 + 3 * 4", nil, "14"},
		{"parens", "(2 + 3) * 4", nil, "20"},
		{"unary minus", "-5 + 10", nil, "5"},
		{"modulo", "10 % 3", nil, "1"},
		{"variable", "SALARY / 30", vars(map[string]string{"SALARY": "900"}), "30"},
		{"overtime", "DAILY_SALARY / 8 * 1.5 * OVERTIME_HOURS",
			vars(map[string]string{"DAILY_SALARY": "80", "OVERTIME_HOURS": "4"}), "60"},
		{"comparison true", "10 > 5", nil, "1"},
		{"comparison false", "10 <= 5", nil, "0"},
		{"comparison as factor", "(DAYS >= 15) * 100", vars(map[string]string{"DAYS": "15"}), "100"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.input, tc.vars)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"got %s, want %s", got, tc.expected)
		})
	}
}

func TestEvaluate_Builtins(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"min(3, 7)", "3"},
		{"max(3, 7, 5)", "7"},
		{"abs(-12.5)", "12.5"},
		{"int(7.9)", "7"},
		{"float(7)", "7"},
		{"round(2.675, 2)", "2.68"},
		{"round(2.4)", "2"},
		{"min(SALARY, CAP)", "650"},
	}
	env := vars(map[string]string{"SALARY": "1000", "CAP": "650"})

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Evaluate(tc.input, env)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.expected)),
				"got %s, want %s", got, tc.expected)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected error
	}{
		{"unknown variable", "MISSING * 2", ErrUnknownVariable},
		{"unknown function", "exec(1)", ErrUnknownFunction},
		{"division by zero", "1 / 0", ErrDivisionByZero},
		{"modulo by zero", "1 % 0", ErrDivisionByZero},
		{"attribute access", "contract.salary", ErrSyntax},
		{"index access", "rows[0]", ErrSyntax},
		{"statement", "x = 1; y", ErrSyntax},
		{"string literal", "\"rm -rf\"", ErrSyntax},
		{"dangling operator", "1 +", ErrSyntax},
		{"unbalanced parens", "(1 + 2", ErrSyntax},
		{"empty call", "min()", ErrSyntax},
		{"empty input", "", ErrSyntax},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.input, map[string]decimal.Decimal{"x": decimal.NewFromInt(1)})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expected)
			assert.True(t, got.IsZero())
		})
	}
}

func TestEvaluate_QuantizesHalfUp(t *testing.T) {
	got, err := Evaluate("10 / 3", nil)
	require.NoError(t, err)
	assert.Equal(t, "3.33", got.StringFixed(2))

	got, err = Evaluate("0.125 * 2 + 2.005", nil)
	require.NoError(t, err)
	assert.Equal(t, "2.26", got.StringFixed(2))
}

func TestValidate_Trace(t *testing.T) {
	env := vars(map[string]string{"SALARY": "900"})

	result, trace, err := Validate("SALARY / 30 * 2", env)
	require.NoError(t, err)
	assert.Equal(t, "60.00", result.StringFixed(2))
	assert.NotEmpty(t, trace)
	assert.Contains(t, trace[0], "SALARY = 900")
	assert.Contains(t, trace[len(trace)-1], "result = 60")
}

func TestValidate_ErrorKeepsTrace(t *testing.T) {
	env := vars(map[string]string{"A": "5"})

	_, trace, err := Validate("A + MISSING", env)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariable)
	assert.Contains(t, trace[0], "A = 5")
}
