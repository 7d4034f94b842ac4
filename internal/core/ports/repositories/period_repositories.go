package repositories

import (
	"context"
	"time"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// PeriodReader defines read operations for payroll period data
type PeriodReader interface {
	// FindPeriodByID retrieves a payroll period.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.PayrollPeriod, error)
}

// PeriodWriter defines write operations for payroll period data
type PeriodWriter interface {
	// SavePeriod persists a new open period.
	SavePeriod(ctx context.Context, period domain.PayrollPeriod) error

	// MarkPeriodClosed flips an open period to closed. Closed periods are
	// immutable; re-closing returns apperrors.ErrPeriodClosed.
	MarkPeriodClosed(ctx context.Context, periodID string, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
