package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxNoveltyRepository implements the payroll novelty reader using pgxpool.
type PgxNoveltyRepository struct {
	BaseRepository
}

// newPgxNoveltyRepository creates a new repository for payroll novelty data.
func newPgxNoveltyRepository(pool *pgxpool.Pool) *PgxNoveltyRepository {
	return &PgxNoveltyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.NoveltyReader = (*PgxNoveltyRepository)(nil)

// ListNoveltiesForEmployee retrieves the novelties recorded for one employee in
// one period.
func (r *PgxNoveltyRepository) ListNoveltiesForEmployee(ctx context.Context, employeeID, periodID string) ([]domain.PayrollNovelty, error) {
	query := `
		SELECT novelty_id, employee_id, period_id, concept_code, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM payroll_novelties
		WHERE employee_id = $1 AND period_id = $2
		ORDER BY concept_code;
	`

	rows, err := r.Pool.Query(ctx, query, employeeID, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query novelties for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	novelties, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PayrollNovelty, error) {
		var n domain.PayrollNovelty
		err := row.Scan(
			&n.NoveltyID,
			&n.EmployeeID,
			&n.PeriodID,
			&n.ConceptCode,
			&n.Amount,
			&n.CreatedAt,
			&n.CreatedBy,
			&n.LastUpdatedAt,
			&n.LastUpdatedBy,
		)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan novelties for employee %s: %w", employeeID, err)
	}
	return novelties, nil
}
