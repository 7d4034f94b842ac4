package repositories

import (
	"context"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// NoveltyReader defines read operations for payroll novelty data
type NoveltyReader interface {
	// ListNoveltiesForEmployee retrieves the novelties recorded for one employee
	// in one period, keyed by concept code (unique per triple).
	ListNoveltiesForEmployee(ctx context.Context, employeeID, periodID string) ([]domain.PayrollNovelty, error)
}
