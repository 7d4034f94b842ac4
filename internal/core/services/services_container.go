package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency and rate resolution come first since everything else prices
	// through them.
	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	rateSvc := NewExchangeRateService(repos.ExchangeRateRepo, currencySvc, cfg.LocalCurrencyCode)

	container.Currency = currencySvc
	container.ExchangeRate = rateSvc
	container.Concept = NewConceptService(repos.ConceptRepo, currencySvc)

	minimumWageFallback := decimal.NewFromFloat(cfg.MinimumWageFallback)
	contextBuilder := NewVariableContextBuilder(rateSvc, minimumWageFallback)
	lawCalc := NewLawDeductionCalculator(minimumWageFallback)
	loanSvc := NewLoanService(repos.LoanRepo, rateSvc)

	payslipSvc := NewPayslipService(
		repos.ContractRepo,
		repos.ConceptRepo,
		repos.PeriodRepo,
		repos.NoveltyRepo,
		repos.LoanRepo,
		repos.CompanyRepo,
		rateSvc,
		contextBuilder,
		lawCalc,
		loanSvc,
	)
	container.Payslip = payslipSvc

	container.PayrollRun = NewPayrollRunService(
		repos.PeriodRepo,
		repos.ContractRepo,
		repos.ConceptRepo,
		repos.NoveltyRepo,
		repos.LoanRepo,
		repos.CompanyRepo,
		payslipSvc,
		loanSvc,
	)

	return container
}
