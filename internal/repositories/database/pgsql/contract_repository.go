package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxContractRepository implements the labor contract ports using pgxpool.
type PgxContractRepository struct {
	BaseRepository
}

// newPgxContractRepository creates a new repository for labor contract data.
func newPgxContractRepository(pool *pgxpool.Pool) *PgxContractRepository {
	return &PgxContractRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ContractRepositoryFacade = (*PgxContractRepository)(nil)

const contractColumns = `contract_id, employee_id, package_amount, package_currency, base_salary_local, frequency, meal_benefit_opt_in, active, created_at, created_by, last_updated_at, last_updated_by`

func scanContract(row pgx.Row) (domain.LaborContract, error) {
	var c domain.LaborContract
	err := row.Scan(
		&c.ContractID,
		&c.EmployeeID,
		&c.PackageAmount,
		&c.PackageCurrency,
		&c.BaseSalaryLocal,
		&c.Frequency,
		&c.MealBenefitOptIn,
		&c.Active,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// FindActiveContractByEmployee retrieves the single active contract for an employee.
func (r *PgxContractRepository) FindActiveContractByEmployee(ctx context.Context, employeeID string) (*domain.LaborContract, error) {
	query := `SELECT ` + contractColumns + ` FROM labor_contracts WHERE employee_id = $1 AND active LIMIT 1;`

	contract, err := scanContract(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNoActiveContract, employeeID)
		}
		return nil, fmt.Errorf("failed to find contract for employee %s: %w", employeeID, err)
	}
	return &contract, nil
}

// ListActiveContracts retrieves every active contract, ordered by employee ID.
func (r *PgxContractRepository) ListActiveContracts(ctx context.Context) ([]domain.LaborContract, error) {
	query := `SELECT ` + contractColumns + ` FROM labor_contracts WHERE active ORDER BY employee_id;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active contracts: %w", err)
	}
	defer rows.Close()

	contracts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LaborContract, error) {
		return scanContract(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan contracts: %w", err)
	}
	return contracts, nil
}

// SaveContract persists a new contract, deactivating any previous active contract
// for the same employee in the same transaction.
func (r *PgxContractRepository) SaveContract(ctx context.Context, contract domain.LaborContract) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if contract.Active {
		_, err = tx.Exec(ctx,
			`UPDATE labor_contracts SET active = false, last_updated_at = $2, last_updated_by = $3 WHERE employee_id = $1 AND active;`,
			contract.EmployeeID, contract.LastUpdatedAt, contract.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate previous contract for employee %s: %w", contract.EmployeeID, err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO labor_contracts (`+contractColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		contract.ContractID,
		contract.EmployeeID,
		contract.PackageAmount,
		contract.PackageCurrency,
		contract.BaseSalaryLocal,
		contract.Frequency,
		contract.MealBenefitOptIn,
		contract.Active,
		contract.CreatedAt,
		contract.CreatedBy,
		contract.LastUpdatedAt,
		contract.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contract %s: %w", contract.ContractID, err)
	}

	return r.Commit(ctx, tx)
}
