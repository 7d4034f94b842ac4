package domain

import "github.com/shopspring/decimal"

// PaymentFrequency determines how often an employee is paid and which fraction of a
// monthly amount applies to a single period.
type PaymentFrequency string

const (
	Weekly   PaymentFrequency = "WEEKLY"
	Biweekly PaymentFrequency = "BIWEEKLY"
	Monthly  PaymentFrequency = "MONTHLY"
)

// ProrationFactor returns the fraction of a monthly amount payable in one period of
// this frequency. The weekly factor uses the fixed 30-day commercial month.
func (f PaymentFrequency) ProrationFactor() decimal.Decimal {
	switch f {
	case Biweekly:
		return decimal.NewFromFloat(0.5)
	case Weekly:
		return decimal.NewFromInt(7).Div(decimal.NewFromInt(30))
	default:
		return decimal.NewFromInt(1)
	}
}

// LaborContract captures the compensation agreement for one employee.
// Exactly one active contract may exist per employee at any time.
type LaborContract struct {
	ContractID       string           `json:"contractID"` // Primary Key (e.g., UUID)
	EmployeeID       string           `json:"employeeID"`
	PackageAmount    decimal.Decimal  `json:"packageAmount"`   // Total agreed package, in PackageCurrency
	PackageCurrency  string           `json:"packageCurrency"` // FK -> Currency.currencyCode
	BaseSalaryLocal  decimal.Decimal  `json:"baseSalaryLocal"` // Contractual base salary in local currency
	Frequency        PaymentFrequency `json:"frequency"`
	MealBenefitOptIn bool             `json:"mealBenefitOptIn"`
	Active           bool             `json:"active"`
	AuditFields
}
