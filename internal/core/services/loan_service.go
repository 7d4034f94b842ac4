package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/utils/money"
)

// CodeLoanInstallment is the line code shared by all loan deduction lines; the
// individual loan is identified by the line's LoanID.
const CodeLoanInstallment = "2100"

// LoanService computes the period's loan installment deductions and, at period
// close, applies the amortization events. Payslip computation itself never
// mutates a balance, which keeps preview calls side-effect free.
type LoanService struct {
	BaseService
	loanRepo portsrepo.LoanRepositoryWithTx
	rates    portssvc.RateResolver
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanRepositoryWithTx, rates portssvc.RateResolver) *LoanService {
	return &LoanService{loanRepo: loanRepo, rates: rates}
}

// ComputeInstallments derives the deduction lines for an employee's active loans.
// Skips: settled or unconfigured loans, and second-half-only loans when the
// payment date falls in the first half of the month.
func (s *LoanService) ComputeInstallments(
	ctx context.Context,
	loans []domain.Loan,
	paymentDate time.Time,
	rateSource string,
) ([]domain.PayslipLine, error) {
	var lines []domain.PayslipLine
	for _, loan := range loans {
		if loan.Status != domain.LoanActive {
			continue
		}
		if loan.Balance.LessThanOrEqual(decimal.Zero) || loan.InstallmentAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if loan.Frequency == domain.SecondHalfOnly && paymentDate.Day() <= 15 {
			continue
		}

		rate, err := s.rates.ResolveRate(ctx, loan.CurrencyCode, paymentDate, rateSource)
		if err != nil {
			return nil, fmt.Errorf("resolving rate for loan %s: %w", loan.LoanID, err)
		}

		due := loan.InstallmentDue()
		lines = append(lines, domain.PayslipLine{
			Code:     CodeLoanInstallment,
			Name:     "Loan Installment",
			Kind:     domain.Deduction,
			Amount:   money.Quantize(due.Mul(rate)),
			Category: domain.CategoryLoan,
			LoanID:   loan.LoanID,
		})
	}
	return lines, nil
}

// SettleCollected decrements the balance of every loan that produced a deduction
// line, inside a single transaction scoped to the period close. Amounts are in
// each loan's own currency; the repository flips a loan to PAID when its
// remaining balance reaches the rounding epsilon.
func (s *LoanService) SettleCollected(
	ctx context.Context,
	collected map[string]decimal.Decimal, // loanID -> amount in loan currency
	userID string,
	now time.Time,
) error {
	if len(collected) == 0 {
		return nil
	}

	tx, err := s.loanRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning loan settlement transaction: %w", err)
	}

	for loanID, amount := range collected {
		if err := s.loanRepo.ApplyAmortizationInTx(ctx, tx, loanID, amount, userID, now); err != nil {
			_ = s.loanRepo.Rollback(ctx, tx)
			return fmt.Errorf("applying amortization for loan %s: %w", loanID, err)
		}
		s.LogInfo(ctx, "Loan amortization applied",
			slog.String("loan_id", loanID),
			slog.String("amount", amount.String()))
	}

	if err := s.loanRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("committing loan settlement transaction: %w", err)
	}
	return nil
}
