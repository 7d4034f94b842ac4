package dto

import (
	"time"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputePayslipRequest asks the engine to compute one employee's payslip. Either
// PeriodID or PaymentDate must be set; a bare date drives a simulation over a
// synthesized calendar month.
type ComputePayslipRequest struct {
	EmployeeID  string                     `json:"employeeID" binding:"required"`
	PeriodID    string                     `json:"periodID"`
	PaymentDate *time.Time                 `json:"paymentDate"`
	Novelties   map[string]decimal.Decimal `json:"novelties"`
	RateSource  string                     `json:"rateSource"`
}

// PayslipLineResponse is one itemized line of the computed payslip.
type PayslipLineResponse struct {
	Code     string           `json:"code"`
	Name     string           `json:"name"`
	Kind     string           `json:"kind"`
	Amount   decimal.Decimal  `json:"amount"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Unit     string           `json:"unit,omitempty"`
	Category string           `json:"category"`
	LoanID   string           `json:"loanID,omitempty"`
}

// PayslipResponse is the full computed payslip for one employee.
type PayslipResponse struct {
	EmployeeID string                `json:"employeeID"`
	Lines      []PayslipLineResponse `json:"lines"`
	Income     decimal.Decimal       `json:"income"`
	Deductions decimal.Decimal       `json:"deductions"`
	Net        decimal.Decimal       `json:"net"`
	NetRef     decimal.Decimal       `json:"netRef"`
	RateUsed   decimal.Decimal       `json:"rateUsed"`
}

// ToPayslipResponse converts a domain.PayslipResult to PayslipResponse DTO
func ToPayslipResponse(result *domain.PayslipResult) PayslipResponse {
	resp := PayslipResponse{
		EmployeeID: result.EmployeeID,
		Lines:      make([]PayslipLineResponse, len(result.Lines)),
		Income:     result.Totals.Income,
		Deductions: result.Totals.Deductions,
		Net:        result.Totals.Net,
		NetRef:     result.Totals.NetRef,
		RateUsed:   result.RateUsed,
	}
	for i, line := range result.Lines {
		resp.Lines[i] = PayslipLineResponse{
			Code:     line.Code,
			Name:     line.Name,
			Kind:     string(line.Kind),
			Amount:   line.Amount,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Category: string(line.Category),
			LoanID:   line.LoanID,
		}
	}
	return resp
}

// CloseRunSummary reports the outcome of a period close: how many payslips were
// computed and which employees failed with what error. A single employee's failure
// never aborts the close.
type CloseRunSummary struct {
	PeriodID  string            `json:"periodID"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Warnings  map[string]string `json:"warnings,omitempty"` // employeeID -> reason
	Payslips  []PayslipResponse `json:"payslips"`
}
