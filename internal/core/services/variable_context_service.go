package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/utils/money"
)

// Variable names formulas can reference.
const (
	VarSalary      = "SALARY"       // Monthly salary in local currency
	VarDailySalary = "DAILY_SALARY" // SALARY / 30, fixed commercial month
	VarMondays     = "MONDAYS"      // Monday count within the period
	VarMinimumWage = "MINIMUM_WAGE" // Legal monthly minimum wage
	VarDays        = "DAYS"         // Payable days in the period
)

// defaultMinimumWage is the last resort when neither the company config nor the
// service configuration supplies a wage. Kept current with the last published decree.
var defaultMinimumWage = decimal.NewFromInt(130)

// noveltyAliases remaps well-known novelty concept codes onto the stable variable
// names formulas reference. Codes without an alias are exposed uppercased as-is.
var noveltyAliases = map[string]string{
	"HE":   "OVERTIME_HOURS",
	"HED":  "OVERTIME_DAY_HOURS",
	"HEN":  "OVERTIME_NIGHT_HOURS",
	"FALT": "ABSENCE_DAYS",
	"DFT":  "HOLIDAY_DAYS_WORKED",
	"COMI": "COMMISSION_AMOUNT",
}

// VariableContextBuilder assembles the numeric variable set concept formulas read.
type VariableContextBuilder struct {
	rates               portssvc.RateResolver
	minimumWageFallback decimal.Decimal
}

// NewVariableContextBuilder creates a new VariableContextBuilder. The fallback wage
// backs MINIMUM_WAGE when the company config carries none; a non-positive fallback
// falls through to the last published decree value.
func NewVariableContextBuilder(rates portssvc.RateResolver, minimumWageFallback decimal.Decimal) *VariableContextBuilder {
	if minimumWageFallback.LessThanOrEqual(decimal.Zero) {
		minimumWageFallback = defaultMinimumWage
	}
	return &VariableContextBuilder{rates: rates, minimumWageFallback: minimumWageFallback}
}

// BuildContext derives the variable map for one employee's computation. When
// period is nil the calendar month containing paymentDate is synthesized as the
// date range (simulation path).
func (b *VariableContextBuilder) BuildContext(
	ctx context.Context,
	contract domain.LaborContract,
	period *domain.PayrollPeriod,
	paymentDate time.Time,
	novelties map[string]decimal.Decimal,
	cfg domain.CompanyConfig,
	rateSource string,
) (map[string]decimal.Decimal, error) {
	rate, err := b.rates.ResolveRate(ctx, contract.PackageCurrency, paymentDate, rateSource)
	if err != nil {
		return nil, fmt.Errorf("building variable context: %w", err)
	}

	start, end := periodRange(period, paymentDate)

	salary := money.Quantize(contract.PackageAmount.Mul(rate))
	minimumWage := cfg.MinimumWage
	if minimumWage.LessThanOrEqual(decimal.Zero) {
		minimumWage = b.minimumWageFallback
	}

	vars := map[string]decimal.Decimal{
		VarSalary:      salary,
		VarDailySalary: money.Quantize(salary.Div(decimal.NewFromInt(30))),
		VarMondays:     decimal.NewFromInt(int64(countMondays(start, end))),
		VarMinimumWage: minimumWage,
		VarDays:        decimal.NewFromInt(int64(daysInPeriod(period, cfg))),
	}

	// Novelties merge last so a recorded value can shadow a derived one.
	for code, amount := range novelties {
		name := strings.ToUpper(strings.TrimSpace(code))
		if alias, ok := noveltyAliases[name]; ok {
			name = alias
		}
		vars[name] = amount
	}

	return vars, nil
}

// periodRange returns the inclusive date range the computation covers. Without a
// period the calendar month of the payment date substitutes.
func periodRange(period *domain.PayrollPeriod, paymentDate time.Time) (time.Time, time.Time) {
	if period != nil {
		return period.StartDate, period.EndDate
	}
	y, m, _ := paymentDate.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, paymentDate.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

// countMondays counts Mondays in the inclusive range [start, end].
func countMondays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Monday {
			count++
		}
	}
	return count
}

// daysInPeriod returns the payable day count. The company's frequency default is
// overridden when the actual period length lands in a different bucket.
// TODO(product): confirm the bucket thresholds are a legal rule and not a data
// workaround before they harden further.
func daysInPeriod(period *domain.PayrollPeriod, cfg domain.CompanyConfig) int {
	if period == nil {
		return cfg.DefaultDaysInPeriod()
	}
	actual := period.DayCount()
	switch {
	case actual >= 28:
		return 30
	case actual >= 13:
		return 15
	case actual >= 6:
		return 7
	default:
		return actual
	}
}
