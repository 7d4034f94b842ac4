package domain

import "github.com/shopspring/decimal"

// MealBenefitMode selects when the meal benefit is paid out.
type MealBenefitMode string

const (
	// MealPeriodic prorates the configured amount into every period.
	MealPeriodic MealBenefitMode = "PERIODIC"
	// MealMonthly pays the full amount only in the period spanning the payment day.
	MealMonthly MealBenefitMode = "MONTHLY"
)

// CompanyConfig carries the company-level payroll parameters. It is an explicit value
// threaded into every computation call rather than an ambient singleton.
type CompanyConfig struct {
	CompanyID         string           `json:"companyID"`
	LocalCurrencyCode string           `json:"localCurrencyCode"`
	MinimumWage       decimal.Decimal  `json:"minimumWage"` // Monthly, local currency
	Frequency         PaymentFrequency `json:"frequency"`   // Default payroll frequency

	MealBenefitAmount     decimal.Decimal `json:"mealBenefitAmount"` // Monthly, in MealBenefitCurrency
	MealBenefitCurrency   string          `json:"mealBenefitCurrency"`
	MealBenefitMode       MealBenefitMode `json:"mealBenefitMode"`
	MealBenefitPaymentDay int             `json:"mealBenefitPaymentDay"` // Day of month, MONTHLY mode only

	ShowBaseSalary  bool `json:"showBaseSalary"`
	ShowMealBenefit bool `json:"showMealBenefit"`
	ShowComplement  bool `json:"showComplement"`

	SocialSecurityRate        decimal.Decimal `json:"socialSecurityRate"`        // e.g. 0.04
	SocialSecurityCapMultiple decimal.Decimal `json:"socialSecurityCapMultiple"` // e.g. 5 minimum wages
	UnemploymentRate          decimal.Decimal `json:"unemploymentRate"`          // e.g. 0.005
	UnemploymentCapMultiple   decimal.Decimal `json:"unemploymentCapMultiple"`   // e.g. 10 minimum wages
	HousingFundRate           decimal.Decimal `json:"housingFundRate"`           // e.g. 0.01, uncapped
	AuditFields
}

// DefaultDaysInPeriod returns the day count implied by the company's configured
// payroll frequency.
func (c CompanyConfig) DefaultDaysInPeriod() int {
	switch c.Frequency {
	case Weekly:
		return 7
	case Biweekly:
		return 15
	default:
		return 30
	}
}
