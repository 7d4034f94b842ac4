package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/core/formula"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/nominasuite/payroll_engine/internal/utils/money"
)

// Structural concept line codes, derived from the contract rather than concept
// configuration.
const (
	CodeBaseSalary  = "1001"
	CodeMealBenefit = "1101"
	CodeComplement  = "1201"
)

// PayslipService computes itemized payslips. It is pure with respect to persisted
// state: identical inputs always yield identical output, and nothing is written.
type PayslipService struct {
	BaseService
	contractRepo   portsrepo.ContractReader
	conceptRepo    portsrepo.ConceptReader
	periodRepo     portsrepo.PeriodReader
	noveltyRepo    portsrepo.NoveltyReader
	loanRepo       portsrepo.LoanReader
	companyRepo    portsrepo.CompanyConfigReader
	rates          portssvc.RateResolver
	contextBuilder *VariableContextBuilder
	lawCalc        *LawDeductionCalculator
	loanService    *LoanService
}

// NewPayslipService creates a new payslip computation service.
func NewPayslipService(
	contractRepo portsrepo.ContractReader,
	conceptRepo portsrepo.ConceptReader,
	periodRepo portsrepo.PeriodReader,
	noveltyRepo portsrepo.NoveltyReader,
	loanRepo portsrepo.LoanReader,
	companyRepo portsrepo.CompanyConfigReader,
	rates portssvc.RateResolver,
	contextBuilder *VariableContextBuilder,
	lawCalc *LawDeductionCalculator,
	loanService *LoanService,
) *PayslipService {
	return &PayslipService{
		contractRepo:   contractRepo,
		conceptRepo:    conceptRepo,
		periodRepo:     periodRepo,
		noveltyRepo:    noveltyRepo,
		loanRepo:       loanRepo,
		companyRepo:    companyRepo,
		rates:          rates,
		contextBuilder: contextBuilder,
		lawCalc:        lawCalc,
		loanService:    loanService,
	}
}

var _ portssvc.PayslipSvcFacade = (*PayslipService)(nil)

// computeInput gathers everything one computation needs. The batch close builds
// it with reference data loaded once; the preview path loads per call.
type computeInput struct {
	contract    domain.LaborContract
	period      *domain.PayrollPeriod
	paymentDate time.Time
	novelties   map[string]decimal.Decimal
	cfg         domain.CompanyConfig
	concepts    []domain.PayrollConcept
	overrides   map[string]domain.EmployeeConceptOverride
	loans       []domain.Loan
	rateSource  string
}

// ComputePayslip computes one employee's payslip. Either a period ID or a bare
// payment date drives the computation; the bare date path is the simulation used
// by previews.
func (s *PayslipService) ComputePayslip(ctx context.Context, req dto.ComputePayslipRequest) (*domain.PayslipResult, error) {
	contract, err := s.contractRepo.FindActiveContractByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.companyRepo.GetCompanyConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading company config: %w", err)
	}

	in := computeInput{
		contract:   *contract,
		cfg:        *cfg,
		novelties:  map[string]decimal.Decimal{},
		rateSource: req.RateSource,
	}

	if req.PeriodID != "" {
		period, err := s.periodRepo.FindPeriodByID(ctx, req.PeriodID)
		if err != nil {
			return nil, err
		}
		if err := validatePeriod(period); err != nil {
			return nil, err
		}
		in.period = period
		in.paymentDate = period.PaymentDate

		novelties, err := s.noveltyRepo.ListNoveltiesForEmployee(ctx, req.EmployeeID, period.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("loading novelties: %w", err)
		}
		for _, novelty := range novelties {
			in.novelties[novelty.ConceptCode] = novelty.Amount
		}
	} else {
		if req.PaymentDate == nil {
			return nil, fmt.Errorf("%w: either periodID or paymentDate is required", apperrors.ErrMalformedPeriod)
		}
		in.paymentDate = *req.PaymentDate
	}

	// Request novelties overlay persisted ones, so previews can ask "what if".
	for code, amount := range req.Novelties {
		in.novelties[code] = amount
	}

	in.concepts, err = s.conceptRepo.ListActiveConcepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading concepts: %w", err)
	}
	in.overrides, err = s.conceptRepo.ListOverridesForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}
	in.loans, err = s.loanRepo.ListActiveLoansForEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("loading loans: %w", err)
	}

	return s.compute(ctx, in)
}

// compute runs the full pipeline: structural concepts, dynamic earnings, law
// deductions, loan installments, dynamic deductions, then totals.
func (s *PayslipService) compute(ctx context.Context, in computeInput) (*domain.PayslipResult, error) {
	contractRate, err := s.rates.ResolveRate(ctx, in.contract.PackageCurrency, in.paymentDate, in.rateSource)
	if err != nil {
		return nil, err
	}

	vars, err := s.contextBuilder.BuildContext(ctx, in.contract, in.period, in.paymentDate, in.novelties, in.cfg, in.rateSource)
	if err != nil {
		return nil, err
	}

	structural, err := s.structuralLines(ctx, in, contractRate)
	if err != nil {
		return nil, err
	}

	emitted := map[string]bool{
		CodeBaseSalary: true, CodeMealBenefit: true, CodeComplement: true,
		CodeSocialSecurity: true, CodeUnemployment: true, CodeHousingFund: true,
		CodeLoanInstallment: true,
	}

	taxable := decimal.Zero
	for _, line := range structural {
		taxable = taxable.Add(line.Amount)
	}

	// Earnings pass first: the taxable income they accumulate feeds the
	// statutory deduction bases.
	earnings := s.dynamicLines(ctx, in, vars, emitted, domain.Earning)
	for _, line := range earnings {
		taxable = taxable.Add(line.Amount)
	}

	lawLines := s.lawCalc.Compute(taxable, vars[VarSalary], vars[VarMondays], in.cfg)

	loanLines, err := s.loanService.ComputeInstallments(ctx, in.loans, in.paymentDate, in.rateSource)
	if err != nil {
		return nil, err
	}

	deductions := s.dynamicLines(ctx, in, vars, emitted, domain.Deduction)

	lines := make([]domain.PayslipLine, 0, len(structural)+len(earnings)+len(lawLines)+len(loanLines)+len(deductions))
	lines = append(lines, structural...)
	lines = append(lines, earnings...)
	lines = append(lines, lawLines...)
	lines = append(lines, loanLines...)
	lines = append(lines, deductions...)

	totals := sumTotals(lines, contractRate)

	return &domain.PayslipResult{
		EmployeeID: in.contract.EmployeeID,
		Lines:      lines,
		Totals:     totals,
		RateUsed:   contractRate,
	}, nil
}

// structuralLines derives the three contract-based earnings: base salary, meal
// benefit and the salary complement that tops the package up.
func (s *PayslipService) structuralLines(ctx context.Context, in computeInput, contractRate decimal.Decimal) ([]domain.PayslipLine, error) {
	factor := in.contract.Frequency.ProrationFactor()
	var lines []domain.PayslipLine

	base := money.Quantize(in.contract.BaseSalaryLocal.Mul(factor))
	if in.cfg.ShowBaseSalary && structuralVisible(in.concepts, CodeBaseSalary) && base.IsPositive() {
		lines = append(lines, domain.PayslipLine{
			Code: CodeBaseSalary, Name: "Base Salary",
			Kind: domain.Earning, Amount: base, Category: domain.CategoryStructural,
		})
	}

	meal, err := s.mealBenefit(ctx, in, factor)
	if err != nil {
		return nil, err
	}
	if in.cfg.ShowMealBenefit && structuralVisible(in.concepts, CodeMealBenefit) && meal.IsPositive() {
		lines = append(lines, domain.PayslipLine{
			Code: CodeMealBenefit, Name: "Meal Benefit",
			Kind: domain.Earning, Amount: meal, Category: domain.CategoryStructural,
		})
	}

	packageLocal := in.contract.PackageAmount.Mul(contractRate)
	complement := money.Quantize(money.NonNegative(packageLocal.Mul(factor).Sub(base).Sub(meal)))
	if in.cfg.ShowComplement && structuralVisible(in.concepts, CodeComplement) && complement.IsPositive() {
		lines = append(lines, domain.PayslipLine{
			Code: CodeComplement, Name: "Salary Complement",
			Kind: domain.Earning, Amount: complement, Category: domain.CategoryStructural,
		})
	}

	return lines, nil
}

// structuralVisible reports whether the structural concept row for code allows the
// line on the receipt. Visibility is gated at both levels: the company config flag
// and the concept row's own flag. A code without a row stays visible, so the
// computation does not depend on the seed data being loaded.
func structuralVisible(concepts []domain.PayrollConcept, code string) bool {
	for i := range concepts {
		if concepts[i].Code == code {
			return concepts[i].VisibleOnReceipt
		}
	}
	return true
}

// mealBenefit computes the meal benefit amount for the period. PERIODIC mode
// prorates the monthly amount; MONTHLY mode pays it whole, but only in the period
// whose day range spans the configured payment day.
func (s *PayslipService) mealBenefit(ctx context.Context, in computeInput, factor decimal.Decimal) (decimal.Decimal, error) {
	if !in.contract.MealBenefitOptIn || in.cfg.MealBenefitAmount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	rate, err := s.rates.ResolveRate(ctx, in.cfg.MealBenefitCurrency, in.paymentDate, in.rateSource)
	if err != nil {
		return decimal.Zero, fmt.Errorf("resolving meal benefit rate: %w", err)
	}
	full := in.cfg.MealBenefitAmount.Mul(rate)

	switch in.cfg.MealBenefitMode {
	case domain.MealMonthly:
		if periodSpansDay(in.period, in.paymentDate, in.cfg.MealBenefitPaymentDay) {
			return money.Quantize(full), nil
		}
		return decimal.Zero, nil
	default: // PERIODIC
		return money.Quantize(full.Mul(factor)), nil
	}
}

// dynamicLines evaluates the configured concepts of one kind, in the stable
// receipt order computed once per batch. A formula failure contributes 0.00 and a
// warning; it never aborts the payslip.
func (s *PayslipService) dynamicLines(
	ctx context.Context,
	in computeInput,
	vars map[string]decimal.Decimal,
	emitted map[string]bool,
	kind domain.ConceptKind,
) []domain.PayslipLine {
	var lines []domain.PayslipLine
	for _, concept := range in.concepts {
		if concept.Kind != kind || concept.IsStructural() {
			continue
		}
		if !concept.Active || !concept.VisibleOnReceipt || emitted[concept.Code] {
			continue
		}

		amount := s.conceptAmount(ctx, in, concept, vars)
		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		category := domain.CategoryEarning
		if kind == domain.Deduction {
			category = domain.CategoryDeduction
		}
		lines = append(lines, domain.PayslipLine{
			Code:     concept.Code,
			Name:     concept.Name,
			Kind:     kind,
			Amount:   amount,
			Category: category,
		})
		emitted[concept.Code] = true
	}
	return lines
}

// conceptAmount resolves one concept's amount per its computation method. A
// per-employee override replaces the base value, never the formula text.
func (s *PayslipService) conceptAmount(
	ctx context.Context,
	in computeInput,
	concept domain.PayrollConcept,
	vars map[string]decimal.Decimal,
) decimal.Decimal {
	value := concept.Value
	if override, ok := in.overrides[concept.Code]; ok && override.Active {
		value = override.Value
	}

	switch concept.Method {
	case domain.FixedAmount:
		rate, err := s.rates.ResolveRate(ctx, concept.CurrencyCode, in.paymentDate, in.rateSource)
		if err != nil {
			s.LogWarn(ctx, "Concept skipped: rate resolution failed",
				slog.String("concept", concept.Code),
				slog.String("error", err.Error()))
			return decimal.Zero
		}
		return money.Quantize(value.Mul(rate))

	case domain.PercentageOfBasic:
		return money.Quantize(vars[VarSalary].Mul(value).Div(hundred))

	case domain.Formula:
		// The override value is exposed to the formula as VALUE.
		scoped := make(map[string]decimal.Decimal, len(vars)+1)
		for k, v := range vars {
			scoped[k] = v
		}
		scoped["VALUE"] = value

		result, err := formula.Evaluate(concept.FormulaText, scoped)
		if err != nil {
			s.LogWarn(ctx, "Formula evaluation failed, concept contributes 0.00",
				slog.String("concept", concept.Code),
				slog.String("formula", concept.FormulaText),
				slog.String("error", err.Error()))
			return decimal.Zero
		}
		return result

	default:
		s.LogWarn(ctx, "Unknown computation method", slog.String("concept", concept.Code))
		return decimal.Zero
	}
}

// ValidateFormula checks a formula against a sample context for the authoring tool.
func (s *PayslipService) ValidateFormula(_ context.Context, formulaText string, sampleVars map[string]decimal.Decimal) dto.ValidateFormulaResponse {
	result, trace, err := formula.Validate(formulaText, sampleVars)
	if err != nil {
		return dto.ValidateFormulaResponse{Valid: false, Error: err.Error(), Trace: trace}
	}
	return dto.ValidateFormulaResponse{Valid: true, Result: &result, Trace: trace}
}

// sumTotals folds lines into the payslip totals. NetRef converts the net back to
// the contract's package currency; a zero rate yields 0 rather than dividing.
func sumTotals(lines []domain.PayslipLine, contractRate decimal.Decimal) domain.PayslipTotals {
	income := decimal.Zero
	deductions := decimal.Zero
	for _, line := range lines {
		if line.Kind == domain.Earning {
			income = income.Add(line.Amount)
		} else {
			deductions = deductions.Add(line.Amount)
		}
	}

	net := income.Sub(deductions)
	netRef := decimal.Zero
	if !contractRate.IsZero() {
		netRef = money.Quantize(net.Div(contractRate))
	}

	return domain.PayslipTotals{
		Income:     money.Quantize(income),
		Deductions: money.Quantize(deductions),
		Net:        money.Quantize(net),
		NetRef:     netRef,
	}
}

// validatePeriod rejects ranges that cannot drive a computation.
func validatePeriod(period *domain.PayrollPeriod) error {
	if period.EndDate.Before(period.StartDate) {
		return fmt.Errorf("%w: end date precedes start date", apperrors.ErrMalformedPeriod)
	}
	if period.PaymentDate.IsZero() {
		return fmt.Errorf("%w: payment date is required", apperrors.ErrMalformedPeriod)
	}
	return nil
}

// periodSpansDay reports whether the period's day range covers the given day of
// month. Without a period the synthesized calendar month always does.
func periodSpansDay(period *domain.PayrollPeriod, paymentDate time.Time, day int) bool {
	if day <= 0 {
		return false
	}
	if period == nil {
		return true
	}
	for d := period.StartDate; !d.After(period.EndDate); d = d.AddDate(0, 0, 1) {
		if d.Day() == day {
			return true
		}
	}
	return false
}
