package domain

import "github.com/shopspring/decimal"

// LoanStatus is the lifecycle state of an employee loan.
type LoanStatus string

const (
	LoanDraft     LoanStatus = "DRAFT"
	LoanApproved  LoanStatus = "APPROVED"
	LoanActive    LoanStatus = "ACTIVE"
	LoanPaid      LoanStatus = "PAID"
	LoanCancelled LoanStatus = "CANCELLED"
)

// CollectionFrequency restricts which periods a loan installment is collected in.
type CollectionFrequency string

const (
	EveryPeriod    CollectionFrequency = "EVERY_PERIOD"
	SecondHalfOnly CollectionFrequency = "SECOND_HALF_ONLY"
)

// BalanceEpsilon is the residual below which a loan balance is considered settled.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// Loan is money advanced to an employee, repaid through payroll deductions.
// Balance mutates only through amortization events applied at period close.
type Loan struct {
	LoanID            string              `json:"loanID"` // Primary Key (e.g., UUID)
	EmployeeID        string              `json:"employeeID"`
	Principal         decimal.Decimal     `json:"principal"`
	InterestRate      decimal.Decimal     `json:"interestRate"` // Annual, percentage
	Balance           decimal.Decimal     `json:"balance"`
	InstallmentAmount decimal.Decimal     `json:"installmentAmount"`
	CurrencyCode      string              `json:"currencyCode"` // FK -> Currency.currencyCode
	Frequency         CollectionFrequency `json:"frequency"`
	Status            LoanStatus          `json:"status"`
	AuditFields
}

// InstallmentDue returns the amount to collect this period, never exceeding the
// remaining balance.
func (l Loan) InstallmentDue() decimal.Decimal {
	if l.InstallmentAmount.GreaterThan(l.Balance) {
		return l.Balance
	}
	return l.InstallmentAmount
}

// Settled reports whether the balance has dropped to the rounding epsilon or below.
func (l Loan) Settled() bool {
	return l.Balance.LessThanOrEqual(BalanceEpsilon)
}
