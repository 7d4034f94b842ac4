package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxPeriodRepository implements the payroll period ports using pgxpool.
type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for payroll period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, start_date, end_date, payment_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (domain.PayrollPeriod, error) {
	var p domain.PayrollPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.StartDate,
		&p.EndDate,
		&p.PaymentDate,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	return p, err
}

// FindPeriodByID retrieves a payroll period.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.PayrollPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE period_id = $1;`

	period, err := scanPeriod(r.Pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, periodID)
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return &period, nil
}

// SavePeriod persists a new open period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.PayrollPeriod) error {
	query := `
		INSERT INTO payroll_periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		period.PeriodID,
		period.StartDate,
		period.EndDate,
		period.PaymentDate,
		period.Status,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save period %s: %w", period.PeriodID, err)
	}
	return nil
}

// MarkPeriodClosed flips an open period to closed. The WHERE clause on status makes
// the close idempotence check atomic.
func (r *PgxPeriodRepository) MarkPeriodClosed(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE payroll_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1 AND status = $5;
	`

	tag, err := r.Pool.Exec(ctx, query, periodID, domain.PeriodClosed, now, userID, domain.PeriodOpen)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, periodID)
	}
	return nil
}
