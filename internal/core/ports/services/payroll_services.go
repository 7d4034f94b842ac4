package services

import (
	"context"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// PayslipSvcFacade is the engine's main entry point: a pure computation from
// contract, period and novelties to an itemized payslip. Identical inputs always
// yield identical output.
type PayslipSvcFacade interface {
	// ComputePayslip computes one employee's payslip for a period or, when only a
	// payment date is given, a simulation over the synthesized calendar month.
	ComputePayslip(ctx context.Context, req dto.ComputePayslipRequest) (*domain.PayslipResult, error)

	// ValidateFormula parses and evaluates a formula against a sample context,
	// returning the result or failure plus an evaluation trace.
	ValidateFormula(ctx context.Context, formulaText string, sampleVars map[string]decimal.Decimal) dto.ValidateFormulaResponse
}

// PayrollRunSvcFacade drives a whole-company payroll run for one period.
type PayrollRunSvcFacade interface {
	// ClosePeriod computes every active employee's payslip, applies loan
	// amortizations, marks the period closed and reports per-employee warnings.
	// One employee's failure never aborts the close.
	ClosePeriod(ctx context.Context, periodID string, userID string) (*dto.CloseRunSummary, error)
}

// ConceptSvcFacade manages user-configured payroll concepts. Structural concepts
// are rejected at this write boundary.
type ConceptSvcFacade interface {
	// ListConcepts retrieves all active concepts in stable receipt order.
	ListConcepts(ctx context.Context) ([]domain.PayrollConcept, error)

	// CreateConcept persists a new user concept.
	CreateConcept(ctx context.Context, req dto.CreateConceptRequest, creatorUserID string) (*domain.PayrollConcept, error)

	// UpdateConceptValue changes a user concept's base value. Returns
	// apperrors.ErrSystemConcept for structural concepts.
	UpdateConceptValue(ctx context.Context, code string, value decimal.Decimal, updaterUserID string) (*domain.PayrollConcept, error)
}
