package services

import (
	"context"
	"time"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// RateResolver resolves a currency to its local-currency rate at a date. The local
// currency always resolves to 1 without a lookup; a missing rate is fatal for the
// payslip being computed.
type RateResolver interface {
	// ResolveRate returns units of local currency per one unit of currencyCode,
	// applicable at end of day asOf. Source filters the series when non-empty.
	ResolveRate(ctx context.Context, currencyCode string, asOf time.Time, source string) (decimal.Decimal, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	RateResolver

	// ListRates returns one page of a currency's rate series plus the cursor for
	// the next page.
	ListRates(ctx context.Context, currencyCode string, pageToken string, limit int) ([]domain.ExchangeRate, string, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate appends a rate row to a currency's series.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
