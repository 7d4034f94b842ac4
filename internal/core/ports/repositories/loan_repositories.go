package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// LoanReader defines read operations for employee loan data
type LoanReader interface {
	// ListActiveLoansForEmployee retrieves loans in ACTIVE status for an employee.
	ListActiveLoansForEmployee(ctx context.Context, employeeID string) ([]domain.Loan, error)

	// FindLoanByID retrieves a loan.
	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
}

// LoanSettlement applies amortization events after a successful period close. The
// engine itself never mutates loan balances; this is the persistence-side
// collaborator that does, inside the close's single-writer transaction.
type LoanSettlement interface {
	// ApplyAmortizationInTx decrements the loan balance by amount (in the loan's
	// currency) and transitions the loan to PAID when the remaining balance is at
	// or below the rounding epsilon.
	ApplyAmortizationInTx(ctx context.Context, tx pgx.Tx, loanID string, amount decimal.Decimal, userID string, now time.Time) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanSettlement
}

// LoanRepositoryWithTx extends LoanRepositoryFacade with transaction capabilities
type LoanRepositoryWithTx interface {
	LoanRepositoryFacade
	TransactionManager
}
