package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/services"
)

func statutoryConfig() domain.CompanyConfig {
	return domain.CompanyConfig{
		MinimumWage:               decimal.NewFromInt(130),
		SocialSecurityRate:        decimal.RequireFromString("0.04"),
		SocialSecurityCapMultiple: decimal.NewFromInt(5),
		UnemploymentRate:          decimal.RequireFromString("0.005"),
		UnemploymentCapMultiple:   decimal.NewFromInt(10),
		HousingFundRate:           decimal.RequireFromString("0.01"),
	}
}

func TestCappedMonthlyBase(t *testing.T) {
	calc := services.NewLawDeductionCalculator(decimal.NewFromInt(130))

	tests := []struct {
		name        string
		monthlyBase string
		minimumWage string
		capMultiple string
		want        string
	}{
		{"above cap", "1000", "130", "5", "650"},
		{"below cap", "500", "130", "5", "500"},
		{"exactly at cap", "650", "130", "5", "650"},
		{"higher multiple", "1000", "130", "10", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CappedMonthlyBase(
				decimal.RequireFromString(tt.monthlyBase),
				decimal.RequireFromString(tt.minimumWage),
				decimal.RequireFromString(tt.capMultiple),
			)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLawDeductions_WeeklyBasis(t *testing.T) {
	calc := services.NewLawDeductionCalculator(decimal.NewFromInt(130))
	cfg := statutoryConfig()

	// Base 1000 capped at 650. Weekly base 650*12/52 = 150. Two Mondays at 4%:
	// 150*2*0.04 = 12.00.
	lines := calc.Compute(
		decimal.RequireFromString("2275.00"),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(2),
		cfg,
	)

	require.Len(t, lines, 3)

	sso := lines[0]
	assert.Equal(t, services.CodeSocialSecurity, sso.Code)
	assert.Equal(t, domain.Deduction, sso.Kind)
	assert.Equal(t, "12.00", sso.Amount.StringFixed(2))
	require.NotNil(t, sso.Quantity)
	assert.True(t, sso.Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "mondays", sso.Unit)

	// Unemployment cap is 10 wages, so the 1000 base is uncapped here.
	// 1000*12/52*2*0.005 = 2.31.
	unemployment := lines[1]
	assert.Equal(t, services.CodeUnemployment, unemployment.Code)
	assert.Equal(t, "2.31", unemployment.Amount.StringFixed(2))

	// Housing fund is a flat uncapped percentage of taxable income.
	housing := lines[2]
	assert.Equal(t, services.CodeHousingFund, housing.Code)
	assert.Equal(t, "22.75", housing.Amount.StringFixed(2))
	assert.Nil(t, housing.Quantity)
}

func TestLawDeductions_ZeroAmountsStillEmitted(t *testing.T) {
	calc := services.NewLawDeductionCalculator(decimal.NewFromInt(130))
	cfg := statutoryConfig()

	lines := calc.Compute(decimal.Zero, decimal.Zero, decimal.Zero, cfg)

	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, line.Amount.IsZero(), "line %s should be zero", line.Code)
		assert.Equal(t, domain.CategoryLawDeduction, line.Category)
	}
}

func TestLawDeductions_MinimumWageFallback(t *testing.T) {
	calc := services.NewLawDeductionCalculator(decimal.NewFromInt(130))
	cfg := statutoryConfig()
	cfg.MinimumWage = decimal.Zero

	// With no configured wage the fallback of 130 still caps the base at 650.
	lines := calc.Compute(decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(1), cfg)

	require.Len(t, lines, 3)
	// 650*12/52*1*0.04 = 6.00
	assert.Equal(t, "6.00", lines[0].Amount.StringFixed(2))
}

func TestLawDeductions_ConfiguredFallbackWage(t *testing.T) {
	calc := services.NewLawDeductionCalculator(decimal.NewFromInt(150))
	cfg := statutoryConfig()
	cfg.MinimumWage = decimal.Zero

	// The configured fallback of 150 caps the base at 750 instead of 650.
	lines := calc.Compute(decimal.Zero, decimal.NewFromInt(1000), decimal.NewFromInt(1), cfg)

	require.Len(t, lines, 3)
	// 750*12/52*1*0.04 = 6.92
	assert.Equal(t, "6.92", lines[0].Amount.StringFixed(2))
}
