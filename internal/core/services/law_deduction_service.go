package services

import (
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/utils/money"
)

// Statutory deduction line codes.
const (
	CodeSocialSecurity = "2001"
	CodeUnemployment   = "2002"
	CodeHousingFund    = "2003"
)

var (
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
	hundred  = decimal.NewFromInt(100)
)

// LawDeductionCalculator computes the statutory deductions. Social security and
// unemployment insurance work on a capped weekly basis: the monthly base is capped
// at a multiple of the minimum wage, converted to a weekly base (x12/52) and
// charged once per Monday in the period. The housing fund is a flat percentage of
// total taxable income, uncapped.
type LawDeductionCalculator struct {
	minimumWageFallback decimal.Decimal
}

// NewLawDeductionCalculator creates a new LawDeductionCalculator. The fallback wage
// backs the caps when the company config carries no minimum wage; a non-positive
// fallback falls through to the last published decree value.
func NewLawDeductionCalculator(minimumWageFallback decimal.Decimal) *LawDeductionCalculator {
	if minimumWageFallback.LessThanOrEqual(decimal.Zero) {
		minimumWageFallback = defaultMinimumWage
	}
	return &LawDeductionCalculator{minimumWageFallback: minimumWageFallback}
}

// Compute returns the statutory deduction lines. Zero amounts are still emitted:
// the receipt must show the statutory retentions even when nothing is withheld.
func (c *LawDeductionCalculator) Compute(
	totalTaxableIncome decimal.Decimal,
	monthlyBaseSalary decimal.Decimal,
	mondayCount decimal.Decimal,
	cfg domain.CompanyConfig,
) []domain.PayslipLine {
	minimumWage := cfg.MinimumWage
	if minimumWage.LessThanOrEqual(decimal.Zero) {
		minimumWage = c.minimumWageFallback
	}

	lines := []domain.PayslipLine{
		c.weeklyBasisLine(CodeSocialSecurity, "Social Security (SSO)",
			monthlyBaseSalary, minimumWage, cfg.SocialSecurityCapMultiple, cfg.SocialSecurityRate, mondayCount),
		c.weeklyBasisLine(CodeUnemployment, "Unemployment Insurance (PF)",
			monthlyBaseSalary, minimumWage, cfg.UnemploymentCapMultiple, cfg.UnemploymentRate, mondayCount),
	}

	housing := money.Quantize(totalTaxableIncome.Mul(cfg.HousingFundRate))
	lines = append(lines, domain.PayslipLine{
		Code:     CodeHousingFund,
		Name:     "Housing Fund (FAOV)",
		Kind:     domain.Deduction,
		Amount:   housing,
		Category: domain.CategoryLawDeduction,
	})

	return lines
}

// CappedMonthlyBase caps the monthly base salary at capMultiple minimum wages.
func (c *LawDeductionCalculator) CappedMonthlyBase(monthlyBase, minimumWage, capMultiple decimal.Decimal) decimal.Decimal {
	cap := minimumWage.Mul(capMultiple)
	return money.Min(monthlyBase, cap)
}

func (c *LawDeductionCalculator) weeklyBasisLine(
	code, name string,
	monthlyBase, minimumWage, capMultiple, rate, mondayCount decimal.Decimal,
) domain.PayslipLine {
	cappedBase := c.CappedMonthlyBase(monthlyBase, minimumWage, capMultiple)
	weeklyBase := cappedBase.Mul(twelve).Div(fiftyTwo)
	amount := money.Quantize(weeklyBase.Mul(mondayCount).Mul(rate))

	quantity := mondayCount
	return domain.PayslipLine{
		Code:     code,
		Name:     name,
		Kind:     domain.Deduction,
		Amount:   amount,
		Quantity: &quantity,
		Unit:     "mondays",
		Category: domain.CategoryLawDeduction,
	}
}
