package pgsql

import (
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ContractRepo:     newPgxContractRepository(dbPool),
		ConceptRepo:      newPgxConceptRepository(dbPool),
		PeriodRepo:       newPgxPeriodRepository(dbPool),
		NoveltyRepo:      newPgxNoveltyRepository(dbPool),
		LoanRepo:         newPgxLoanRepository(dbPool),
		CompanyRepo:      newPgxCompanyRepository(dbPool),
	}
}
