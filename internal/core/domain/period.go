package domain

import "time"

// PeriodStatus indicates the lifecycle state of a payroll period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// PayrollPeriod is the date range a payroll run covers. Closed periods are
// immutable history.
type PayrollPeriod struct {
	PeriodID    string       `json:"periodID"` // Primary Key (e.g., UUID)
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	PaymentDate time.Time    `json:"paymentDate"`
	Status      PeriodStatus `json:"status"`
	AuditFields
}

// DayCount returns the inclusive number of calendar days the period spans.
func (p PayrollPeriod) DayCount() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}
