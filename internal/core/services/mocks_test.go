package services_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time, source string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, asOf, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, currencyCode string, before *time.Time, limit int) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock ContractRepository ---
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindActiveContractByEmployee(ctx context.Context, employeeID string) (*domain.LaborContract, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LaborContract), args.Error(1)
}

func (m *MockContractRepository) ListActiveContracts(ctx context.Context) ([]domain.LaborContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LaborContract), args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.LaborContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

// --- Mock ConceptRepository ---
type MockConceptRepository struct {
	mock.Mock
}

func (m *MockConceptRepository) ListActiveConcepts(ctx context.Context) ([]domain.PayrollConcept, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollConcept), args.Error(1)
}

func (m *MockConceptRepository) FindConceptByCode(ctx context.Context, code string) (*domain.PayrollConcept, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollConcept), args.Error(1)
}

func (m *MockConceptRepository) ListOverridesForEmployee(ctx context.Context, employeeID string) (map[string]domain.EmployeeConceptOverride, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.EmployeeConceptOverride), args.Error(1)
}

func (m *MockConceptRepository) SaveConcept(ctx context.Context, concept domain.PayrollConcept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

func (m *MockConceptRepository) UpdateConcept(ctx context.Context, concept domain.PayrollConcept) error {
	args := m.Called(ctx, concept)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.PayrollPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.PayrollPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) MarkPeriodClosed(ctx context.Context, periodID string, userID string, now time.Time) error {
	args := m.Called(ctx, periodID, userID, now)
	return args.Error(0)
}

// --- Mock NoveltyRepository ---
type MockNoveltyRepository struct {
	mock.Mock
}

func (m *MockNoveltyRepository) ListNoveltiesForEmployee(ctx context.Context, employeeID, periodID string) ([]domain.PayrollNovelty, error) {
	args := m.Called(ctx, employeeID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollNovelty), args.Error(1)
}

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) ListActiveLoansForEmployee(ctx context.Context, employeeID string) ([]domain.Loan, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ApplyAmortizationInTx(ctx context.Context, tx pgx.Tx, loanID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, loanID, amount, userID, now)
	return args.Error(0)
}

func (m *MockLoanRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLoanRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLoanRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) GetCompanyConfig(ctx context.Context) (*domain.CompanyConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyConfig), args.Error(1)
}

// fakeRateResolver is a deterministic in-memory RateResolver. The local currency
// resolves to 1; everything else comes from the rates map. Lookups counts how
// often a non-local resolution was attempted.
type fakeRateResolver struct {
	local   string
	rates   map[string]decimal.Decimal
	Lookups int
}

func (f *fakeRateResolver) ResolveRate(_ context.Context, currencyCode string, _ time.Time, _ string) (decimal.Decimal, error) {
	code := strings.ToUpper(currencyCode)
	if code == "" || code == f.local {
		return decimal.NewFromInt(1), nil
	}
	f.Lookups++
	rate, ok := f.rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrExchangeRateNotFound, code)
	}
	return rate, nil
}
