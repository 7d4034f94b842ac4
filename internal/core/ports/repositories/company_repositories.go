package repositories

import (
	"context"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// CompanyConfigReader defines read operations for company payroll configuration.
// The config is loaded once per batch and threaded explicitly into every
// computation call.
type CompanyConfigReader interface {
	// GetCompanyConfig retrieves the company payroll parameters.
	GetCompanyConfig(ctx context.Context) (*domain.CompanyConfig, error)
}
