package repositories

import (
	"context"
	"time"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations over the append-only rate series.
type ExchangeRateReader interface {
	// FindRateAsOf retrieves the series row with the greatest valid_from at or
	// before asOf for the given currency, optionally filtered by source
	// (empty source matches any). Returns apperrors.ErrExchangeRateNotFound
	// when no row qualifies.
	FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time, source string) (*domain.ExchangeRate, error)

	// ListRates retrieves the series for a currency ordered by valid_from
	// descending, starting strictly before the cursor date when provided.
	ListRates(ctx context.Context, currencyCode string, before *time.Time, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data. The series is
// append-only: rows are never updated or deleted.
type ExchangeRateWriter interface {
	// SaveExchangeRate appends a new rate row.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
