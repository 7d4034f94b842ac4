package domain

import "github.com/shopspring/decimal"

// PayrollNovelty is a transient per-period, per-employee numeric input (hours, days,
// amounts) feeding concept formulas. Unique per (employee, period, concept code).
type PayrollNovelty struct {
	NoveltyID   string          `json:"noveltyID"` // Primary Key (e.g., UUID)
	EmployeeID  string          `json:"employeeID"`
	PeriodID    string          `json:"periodID"`
	ConceptCode string          `json:"conceptCode"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}
