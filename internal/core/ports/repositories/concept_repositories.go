package repositories

import (
	"context"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// ConceptReader defines read operations for payroll concept data
type ConceptReader interface {
	// ListActiveConcepts retrieves all active concepts ordered by receipt order
	// then code. The ordering is computed once here and reused for the whole batch.
	ListActiveConcepts(ctx context.Context) ([]domain.PayrollConcept, error)

	// FindConceptByCode retrieves a concept by its business code.
	FindConceptByCode(ctx context.Context, code string) (*domain.PayrollConcept, error)

	// ListOverridesForEmployee retrieves the active per-employee value overrides,
	// keyed by concept code.
	ListOverridesForEmployee(ctx context.Context, employeeID string) (map[string]domain.EmployeeConceptOverride, error)
}

// ConceptWriter defines write operations for payroll concept data. Implementations
// must reject updates to structural-class concepts: immutability is enforced here,
// at the write boundary.
type ConceptWriter interface {
	// SaveConcept persists a new user concept.
	SaveConcept(ctx context.Context, concept domain.PayrollConcept) error

	// UpdateConcept updates an existing user concept. Returns
	// apperrors.ErrSystemConcept for structural concepts.
	UpdateConcept(ctx context.Context, concept domain.PayrollConcept) error
}

// ConceptRepositoryFacade combines all concept-related repository interfaces
type ConceptRepositoryFacade interface {
	ConceptReader
	ConceptWriter
}
