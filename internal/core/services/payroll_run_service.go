package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
)

// PayrollRunService closes payroll periods: it computes every active employee's
// payslip, applies loan amortizations and marks the period closed. Reference data
// is loaded once per run, not once per employee.
type PayrollRunService struct {
	BaseService
	periodRepo   portsrepo.PeriodRepositoryFacade
	contractRepo portsrepo.ContractReader
	conceptRepo  portsrepo.ConceptReader
	noveltyRepo  portsrepo.NoveltyReader
	loanRepo     portsrepo.LoanReader
	companyRepo  portsrepo.CompanyConfigReader
	payslipSvc   *PayslipService
	loanService  *LoanService
}

// NewPayrollRunService creates a new PayrollRunService.
func NewPayrollRunService(
	periodRepo portsrepo.PeriodRepositoryFacade,
	contractRepo portsrepo.ContractReader,
	conceptRepo portsrepo.ConceptReader,
	noveltyRepo portsrepo.NoveltyReader,
	loanRepo portsrepo.LoanReader,
	companyRepo portsrepo.CompanyConfigReader,
	payslipSvc *PayslipService,
	loanService *LoanService,
) *PayrollRunService {
	return &PayrollRunService{
		periodRepo:   periodRepo,
		contractRepo: contractRepo,
		conceptRepo:  conceptRepo,
		noveltyRepo:  noveltyRepo,
		loanRepo:     loanRepo,
		companyRepo:  companyRepo,
		payslipSvc:   payslipSvc,
		loanService:  loanService,
	}
}

var _ portssvc.PayrollRunSvcFacade = (*PayrollRunService)(nil)

// ClosePeriod runs the whole-company close for one period. A single employee's
// computation failure is recorded as a warning and the run continues; only
// period-level problems (missing period, already closed, settlement failure)
// abort the close.
func (s *PayrollRunService) ClosePeriod(ctx context.Context, periodID string, userID string) (*dto.CloseRunSummary, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status == domain.PeriodClosed {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPeriodClosed, periodID)
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	cfg, err := s.companyRepo.GetCompanyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading company config: %w", err)
	}
	concepts, err := s.conceptRepo.ListActiveConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading concepts: %w", err)
	}
	contracts, err := s.contractRepo.ListActiveContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading active contracts: %w", err)
	}

	summary := &dto.CloseRunSummary{
		PeriodID: periodID,
		Warnings: map[string]string{},
	}
	collected := map[string]decimal.Decimal{} // loanID -> amount in loan currency

	for _, contract := range contracts {
		result, loanAmounts, err := s.computeEmployee(ctx, contract, period, *cfg, concepts)
		if err != nil {
			s.LogWarn(ctx, "Employee skipped during period close",
				slog.String("employee_id", contract.EmployeeID),
				slog.String("error", err.Error()))
			summary.Failed++
			summary.Warnings[contract.EmployeeID] = err.Error()
			continue
		}

		summary.Processed++
		summary.Payslips = append(summary.Payslips, dto.ToPayslipResponse(result))
		for loanID, amount := range loanAmounts {
			collected[loanID] = collected[loanID].Add(amount)
		}
	}

	now := time.Now()
	if err := s.loanService.SettleCollected(ctx, collected, userID, now); err != nil {
		return nil, err
	}
	if err := s.periodRepo.MarkPeriodClosed(ctx, periodID, userID, now); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payroll period closed",
		slog.String("period_id", periodID),
		slog.Int("processed", summary.Processed),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

// computeEmployee assembles one employee's input from the per-run reference data
// and computes the payslip. It also returns the amortization amounts, keyed by
// loan ID in each loan's own currency, for the settlement step.
func (s *PayrollRunService) computeEmployee(
	ctx context.Context,
	contract domain.LaborContract,
	period *domain.PayrollPeriod,
	cfg domain.CompanyConfig,
	concepts []domain.PayrollConcept,
) (*domain.PayslipResult, map[string]decimal.Decimal, error) {
	novelties, err := s.noveltyRepo.ListNoveltiesForEmployee(ctx, contract.EmployeeID, period.PeriodID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading novelties: %w", err)
	}
	overrides, err := s.conceptRepo.ListOverridesForEmployee(ctx, contract.EmployeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading overrides: %w", err)
	}
	loans, err := s.loanRepo.ListActiveLoansForEmployee(ctx, contract.EmployeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading loans: %w", err)
	}

	in := computeInput{
		contract:    contract,
		period:      period,
		paymentDate: period.PaymentDate,
		novelties:   make(map[string]decimal.Decimal, len(novelties)),
		cfg:         cfg,
		concepts:    concepts,
		overrides:   overrides,
		loans:       loans,
	}
	for _, novelty := range novelties {
		in.novelties[novelty.ConceptCode] = novelty.Amount
	}

	result, err := s.payslipSvc.compute(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	loanAmounts := map[string]decimal.Decimal{}
	loansByID := make(map[string]domain.Loan, len(loans))
	for _, loan := range loans {
		loansByID[loan.LoanID] = loan
	}
	for _, line := range result.Lines {
		if line.LoanID == "" {
			continue
		}
		if loan, ok := loansByID[line.LoanID]; ok {
			loanAmounts[line.LoanID] = loan.InstallmentDue()
		}
	}

	return result, loanAmounts, nil
}
