package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
)

// PgxExchangeRateRepository implements the exchange rate ports over the
// append-only rate series table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, currency_code, rate, valid_from, source, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (domain.ExchangeRate, error) {
	var r domain.ExchangeRate
	err := row.Scan(
		&r.ExchangeRateID,
		&r.CurrencyCode,
		&r.Rate,
		&r.ValidFrom,
		&r.Source,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	return r, err
}

// FindRateAsOf retrieves the latest series row at or before asOf. An empty source
// matches any source.
func (r *PgxExchangeRateRepository) FindRateAsOf(ctx context.Context, currencyCode string, asOf time.Time, source string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1
		  AND valid_from <= $2
		  AND ($3 = '' OR source = $3)
		ORDER BY valid_from DESC
		LIMIT 1;
	`

	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, strings.ToUpper(currencyCode), asOf, source))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s as of %s", apperrors.ErrExchangeRateNotFound, currencyCode, asOf.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find rate for %s: %w", currencyCode, err)
	}
	return &rate, nil
}

// ListRates retrieves the series for a currency, newest first. A cursor date
// restricts to rows strictly before it.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, currencyCode string, before *time.Time, limit int) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1
		  AND ($2::timestamptz IS NULL OR valid_from < $2)
		ORDER BY valid_from DESC
		LIMIT $3;
	`

	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(currencyCode), before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for %s: %w", currencyCode, err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rates for %s: %w", currencyCode, err)
	}
	return rates, nil
}

// SaveExchangeRate appends a new series row. Rows are never updated.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		rate.ExchangeRateID,
		strings.ToUpper(rate.CurrencyCode),
		rate.Rate,
		rate.ValidFrom,
		rate.Source,
		rate.CreatedAt,
		rate.CreatedBy,
		rate.LastUpdatedAt,
		rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate for %s: %w", rate.CurrencyCode, err)
	}
	return nil
}
