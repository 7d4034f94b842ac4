package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ContractRepo     ContractRepositoryFacade
	ConceptRepo      ConceptRepositoryFacade
	PeriodRepo       PeriodRepositoryFacade
	NoveltyRepo      NoveltyReader
	LoanRepo         LoanRepositoryWithTx
	CompanyRepo      CompanyConfigReader
}
