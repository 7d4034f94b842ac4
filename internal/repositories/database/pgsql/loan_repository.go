package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxLoanRepository implements the loan ports using pgxpool. Balance mutations go
// through ApplyAmortizationInTx only, inside the period close transaction.
type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for employee loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) *PgxLoanRepository {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, employee_id, principal, interest_rate, balance, installment_amount, currency_code, frequency, status, created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (domain.Loan, error) {
	var l domain.Loan
	err := row.Scan(
		&l.LoanID,
		&l.EmployeeID,
		&l.Principal,
		&l.InterestRate,
		&l.Balance,
		&l.InstallmentAmount,
		&l.CurrencyCode,
		&l.Frequency,
		&l.Status,
		&l.CreatedAt,
		&l.CreatedBy,
		&l.LastUpdatedAt,
		&l.LastUpdatedBy,
	)
	return l, err
}

// ListActiveLoansForEmployee retrieves loans in ACTIVE status for an employee.
func (r *PgxLoanRepository) ListActiveLoansForEmployee(ctx context.Context, employeeID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE employee_id = $1 AND status = $2 ORDER BY loan_id;`

	rows, err := r.Pool.Query(ctx, query, employeeID, domain.LoanActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	loans, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Loan, error) {
		return scanLoan(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan loans for employee %s: %w", employeeID, err)
	}
	return loans, nil
}

// FindLoanByID retrieves a loan.
func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1;`

	loan, err := scanLoan(r.Pool.QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	return &loan, nil
}

// ApplyAmortizationInTx decrements the loan balance by amount and flips the loan
// to PAID when the remaining balance is at or below the rounding epsilon. The row
// is locked for the duration of the transaction.
func (r *PgxLoanRepository) ApplyAmortizationInTx(ctx context.Context, tx pgx.Tx, loanID string, amount decimal.Decimal, userID string, now time.Time) error {
	row := tx.QueryRow(ctx, `SELECT balance FROM loans WHERE loan_id = $1 AND status = $2 FOR UPDATE;`, loanID, domain.LoanActive)

	var balance decimal.Decimal
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: active loan %s", apperrors.ErrNotFound, loanID)
		}
		return fmt.Errorf("failed to lock loan %s: %w", loanID, err)
	}

	newBalance := balance.Sub(amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	status := domain.LoanActive
	if newBalance.LessThanOrEqual(domain.BalanceEpsilon) {
		status = domain.LoanPaid
	}

	_, err := tx.Exec(ctx, `
		UPDATE loans
		SET balance = $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE loan_id = $1;`,
		loanID, newBalance, status, now, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to amortize loan %s: %w", loanID, err)
	}
	return nil
}
