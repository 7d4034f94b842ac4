package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxConceptRepository implements the payroll concept ports using pgxpool.
type PgxConceptRepository struct {
	BaseRepository
}

// newPgxConceptRepository creates a new repository for payroll concept data.
func newPgxConceptRepository(pool *pgxpool.Pool) *PgxConceptRepository {
	return &PgxConceptRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ConceptRepositoryFacade = (*PgxConceptRepository)(nil)

const conceptColumns = `concept_id, code, name, kind, method, value, currency_code, formula_text, visible_on_receipt, receipt_order, class, active, created_at, created_by, last_updated_at, last_updated_by`

func scanConcept(row pgx.Row) (domain.PayrollConcept, error) {
	var c domain.PayrollConcept
	err := row.Scan(
		&c.ConceptID,
		&c.Code,
		&c.Name,
		&c.Kind,
		&c.Method,
		&c.Value,
		&c.CurrencyCode,
		&c.FormulaText,
		&c.VisibleOnReceipt,
		&c.ReceiptOrder,
		&c.Class,
		&c.Active,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// ListActiveConcepts retrieves all active concepts in stable receipt order.
func (r *PgxConceptRepository) ListActiveConcepts(ctx context.Context) ([]domain.PayrollConcept, error) {
	query := `SELECT ` + conceptColumns + ` FROM payroll_concepts WHERE active ORDER BY receipt_order, code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query concepts: %w", err)
	}
	defer rows.Close()

	concepts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PayrollConcept, error) {
		return scanConcept(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan concepts: %w", err)
	}
	return concepts, nil
}

// FindConceptByCode retrieves a concept by its business code.
func (r *PgxConceptRepository) FindConceptByCode(ctx context.Context, code string) (*domain.PayrollConcept, error) {
	query := `SELECT ` + conceptColumns + ` FROM payroll_concepts WHERE code = $1;`

	concept, err := scanConcept(r.Pool.QueryRow(ctx, query, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find concept %s: %w", code, err)
	}
	return &concept, nil
}

// ListOverridesForEmployee retrieves the active value overrides keyed by concept code.
func (r *PgxConceptRepository) ListOverridesForEmployee(ctx context.Context, employeeID string) (map[string]domain.EmployeeConceptOverride, error) {
	query := `
		SELECT employee_id, concept_code, value, active, created_at, created_by, last_updated_at, last_updated_by
		FROM employee_concept_overrides
		WHERE employee_id = $1 AND active;
	`

	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	overrides := map[string]domain.EmployeeConceptOverride{}
	for rows.Next() {
		var o domain.EmployeeConceptOverride
		err := rows.Scan(
			&o.EmployeeID,
			&o.ConceptCode,
			&o.Value,
			&o.Active,
			&o.CreatedAt,
			&o.CreatedBy,
			&o.LastUpdatedAt,
			&o.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides[o.ConceptCode] = o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overrides for employee %s: %w", employeeID, err)
	}
	return overrides, nil
}

// SaveConcept persists a new user concept.
func (r *PgxConceptRepository) SaveConcept(ctx context.Context, concept domain.PayrollConcept) error {
	query := `
		INSERT INTO payroll_concepts (` + conceptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`

	_, err := r.Pool.Exec(ctx, query,
		concept.ConceptID,
		concept.Code,
		concept.Name,
		concept.Kind,
		concept.Method,
		concept.Value,
		concept.CurrencyCode,
		concept.FormulaText,
		concept.VisibleOnReceipt,
		concept.ReceiptOrder,
		concept.Class,
		concept.Active,
		concept.CreatedAt,
		concept.CreatedBy,
		concept.LastUpdatedAt,
		concept.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save concept %s: %w", concept.Code, err)
	}
	return nil
}

// UpdateConcept updates an existing user concept. Structural rows are protected at
// the SQL level too: the WHERE clause refuses to touch them.
func (r *PgxConceptRepository) UpdateConcept(ctx context.Context, concept domain.PayrollConcept) error {
	query := `
		UPDATE payroll_concepts
		SET name = $2, value = $3, currency_code = $4, formula_text = $5,
		    visible_on_receipt = $6, receipt_order = $7, active = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE code = $1 AND class <> $11;
	`

	tag, err := r.Pool.Exec(ctx, query,
		concept.Code,
		concept.Name,
		concept.Value,
		concept.CurrencyCode,
		concept.FormulaText,
		concept.VisibleOnReceipt,
		concept.ReceiptOrder,
		concept.Active,
		concept.LastUpdatedAt,
		concept.LastUpdatedBy,
		domain.StructuralConcept,
	)
	if err != nil {
		return fmt.Errorf("failed to update concept %s: %w", concept.Code, err)
	}
	if tag.RowsAffected() == 0 {
		if concept.IsStructural() {
			return fmt.Errorf("%w: %s", apperrors.ErrSystemConcept, concept.Code)
		}
		return apperrors.ErrNotFound
	}
	return nil
}
