package repositories

import (
	"context"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// ContractReader defines read operations for labor contract data
type ContractReader interface {
	// FindActiveContractByEmployee retrieves the single active contract for an
	// employee. Returns apperrors.ErrNoActiveContract when none exists.
	FindActiveContractByEmployee(ctx context.Context, employeeID string) (*domain.LaborContract, error)

	// ListActiveContracts retrieves every active contract, ordered by employee ID.
	// The batch close iterates this list.
	ListActiveContracts(ctx context.Context) ([]domain.LaborContract, error)
}

// ContractWriter defines write operations for labor contract data
type ContractWriter interface {
	// SaveContract persists a new contract, deactivating any previous active
	// contract for the same employee in the same transaction.
	SaveContract(ctx context.Context, contract domain.LaborContract) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}
