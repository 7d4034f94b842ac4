package domain

import "github.com/shopspring/decimal"

// LineCategory tags a payslip line with the receipt section it belongs to.
// It also fixes the ordering of sections on the receipt.
type LineCategory string

const (
	CategoryStructural   LineCategory = "STRUCTURAL"
	CategoryEarning      LineCategory = "EARNING"
	CategoryLawDeduction LineCategory = "LAW_DEDUCTION"
	CategoryLoan         LineCategory = "LOAN"
	CategoryDeduction    LineCategory = "DEDUCTION"
)

// PayslipLine is one itemized earning or deduction, always in local currency.
type PayslipLine struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Kind     ConceptKind      `json:"kind"`
	Amount   decimal.Decimal  `json:"amount"` // Local currency, 2dp
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Unit     string           `json:"unit,omitempty"`
	Category LineCategory     `json:"category"`
	LoanID   string           `json:"loanID,omitempty"` // Set only for loan installment lines
}

// PayslipTotals aggregates the lines of a payslip.
type PayslipTotals struct {
	Income     decimal.Decimal `json:"income"`
	Deductions decimal.Decimal `json:"deductions"`
	Net        decimal.Decimal `json:"net"`
	NetRef     decimal.Decimal `json:"netRef"` // Net expressed in the contract's package currency
}

// PayslipResult is the full outcome of one employee's payroll computation.
// It is a pure value: the engine never persists it.
type PayslipResult struct {
	EmployeeID string          `json:"employeeID"`
	Lines      []PayslipLine   `json:"lines"`
	Totals     PayslipTotals   `json:"totals"`
	RateUsed   decimal.Decimal `json:"rateUsed"` // Rate applied to the contract's package currency
}
