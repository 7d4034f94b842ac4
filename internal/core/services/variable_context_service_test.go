package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/services"
)

func usdContract(amount string) domain.LaborContract {
	return domain.LaborContract{
		ContractID:      "ct-1",
		EmployeeID:      "emp-1",
		PackageAmount:   decimal.RequireFromString(amount),
		PackageCurrency: "USD",
		Frequency:       domain.Biweekly,
		Active:          true,
	}
}

func marchFirstHalf() *domain.PayrollPeriod {
	return &domain.PayrollPeriod{
		PeriodID:    "per-1",
		StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		PaymentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:      domain.PeriodOpen,
	}
}

func TestBuildContext_DerivedVariables(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES", rates: map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("45.50"),
	}}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(130))
	cfg := domain.CompanyConfig{MinimumWage: decimal.NewFromInt(130), Frequency: domain.Biweekly}
	period := marchFirstHalf()

	vars, err := builder.BuildContext(context.Background(), usdContract("100"), period, period.PaymentDate, nil, cfg, "")
	require.NoError(t, err)

	// 100 USD * 45.50 = 4550.00 monthly, daily over the fixed 30-day month.
	assert.Equal(t, "4550.00", vars[services.VarSalary].StringFixed(2))
	assert.Equal(t, "151.67", vars[services.VarDailySalary].StringFixed(2))
	// March 2026: the 1st is a Sunday, so Mondays in [1,15] are the 2nd and 9th.
	assert.True(t, vars[services.VarMondays].Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "130", vars[services.VarMinimumWage].String())
	assert.True(t, vars[services.VarDays].Equal(decimal.NewFromInt(15)))
}

func TestBuildContext_DayBuckets(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES"}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(130))
	cfg := domain.CompanyConfig{Frequency: domain.Monthly}

	tests := []struct {
		name string
		days int
		want int64
	}{
		{"calendar month maps to 30", 31, 30},
		{"28-day february maps to 30", 28, 30},
		{"half month maps to 15", 14, 15},
		{"week maps to 7", 6, 7},
		{"short stub stays exact", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			period := &domain.PayrollPeriod{
				StartDate:   start,
				EndDate:     start.AddDate(0, 0, tt.days-1),
				PaymentDate: start.AddDate(0, 0, tt.days-1),
			}
			contract := usdContract("100")
			contract.PackageCurrency = "VES"

			vars, err := builder.BuildContext(context.Background(), contract, period, period.PaymentDate, nil, cfg, "")
			require.NoError(t, err)
			assert.True(t, vars[services.VarDays].Equal(decimal.NewFromInt(tt.want)),
				"got %s, want %d", vars[services.VarDays], tt.want)
		})
	}
}

func TestBuildContext_NoPeriodSynthesizesMonth(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES"}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(130))
	cfg := domain.CompanyConfig{Frequency: domain.Biweekly}
	contract := usdContract("100")
	contract.PackageCurrency = "VES"

	paymentDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	vars, err := builder.BuildContext(context.Background(), contract, nil, paymentDate, nil, cfg, "")
	require.NoError(t, err)

	// March 2026 has 5 Mondays; DAYS falls back to the configured frequency.
	assert.True(t, vars[services.VarMondays].Equal(decimal.NewFromInt(5)))
	assert.True(t, vars[services.VarDays].Equal(decimal.NewFromInt(15)))
}

func TestBuildContext_NoveltyAliasesAndShadowing(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES"}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(130))
	cfg := domain.CompanyConfig{Frequency: domain.Biweekly}
	contract := usdContract("100")
	contract.PackageCurrency = "VES"
	period := marchFirstHalf()

	novelties := map[string]decimal.Decimal{
		"he":      decimal.NewFromInt(10),  // aliased, lowercase input
		"COMI":    decimal.NewFromInt(250), // aliased
		"CUSTOM":  decimal.NewFromInt(3),   // passes through uppercased
		"MONDAYS": decimal.NewFromInt(9),   // shadows the derived value
	}

	vars, err := builder.BuildContext(context.Background(), contract, period, period.PaymentDate, novelties, cfg, "")
	require.NoError(t, err)

	assert.True(t, vars["OVERTIME_HOURS"].Equal(decimal.NewFromInt(10)))
	assert.True(t, vars["COMMISSION_AMOUNT"].Equal(decimal.NewFromInt(250)))
	assert.True(t, vars["CUSTOM"].Equal(decimal.NewFromInt(3)))
	assert.True(t, vars[services.VarMondays].Equal(decimal.NewFromInt(9)))
}

func TestBuildContext_ConfiguredFallbackWage(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES"}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(150))
	cfg := domain.CompanyConfig{Frequency: domain.Biweekly}
	contract := usdContract("100")
	contract.PackageCurrency = "VES"
	period := marchFirstHalf()

	vars, err := builder.BuildContext(context.Background(), contract, period, period.PaymentDate, nil, cfg, "")
	require.NoError(t, err)

	// No wage in the company config, so the configured fallback backs the variable.
	assert.Equal(t, "150", vars[services.VarMinimumWage].String())
}

func TestBuildContext_MissingRateFails(t *testing.T) {
	resolver := &fakeRateResolver{local: "VES"}
	builder := services.NewVariableContextBuilder(resolver, decimal.NewFromInt(130))

	_, err := builder.BuildContext(context.Background(), usdContract("100"), marchFirstHalf(),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), nil, domain.CompanyConfig{}, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExchangeRateNotFound)
}
