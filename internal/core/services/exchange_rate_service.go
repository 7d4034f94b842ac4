package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	portsrepo "github.com/nominasuite/payroll_engine/internal/core/ports/repositories"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/nominasuite/payroll_engine/internal/utils/pagination"
)

const defaultRatePageSize = 50

// ExchangeRateService resolves historical exchange rates and manages the
// append-only rate series.
type ExchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService *CurrencyService
	localCurrency   string
}

// NewExchangeRateService creates a new ExchangeRateService. localCurrency is the
// payroll (base) currency code; it always resolves to 1 without a lookup.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService *CurrencyService, localCurrency string) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		localCurrency:   strings.ToUpper(localCurrency),
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// endOfDay pins a lookup date to 23:59:59.999999999, so a rate published at any
// moment of the as-of day is applicable.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ResolveRate returns units of local currency per one unit of currencyCode at the
// given date. The local currency resolves to exactly 1 with no repository call.
// A currency with no applicable rate row is a fatal condition for the payslip:
// payroll must never silently assume a rate.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, currencyCode string, asOf time.Time, source string) (decimal.Decimal, error) {
	code := strings.ToUpper(currencyCode)
	if code == "" || code == s.localCurrency {
		return decimal.NewFromInt(1), nil
	}

	rate, err := s.rateRepo.FindRateAsOf(ctx, code, endOfDay(asOf), source)
	if err != nil {
		if errors.Is(err, apperrors.ErrExchangeRateNotFound) || errors.Is(err, apperrors.ErrNotFound) {
			// Distinguish an unknown currency from a known one with no rate yet.
			if _, currErr := s.currencyService.GetCurrencyByCode(ctx, code); currErr != nil && errors.Is(currErr, apperrors.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrCurrencyNotFound, code)
			}
			return decimal.Zero, fmt.Errorf("%w: %s as of %s", apperrors.ErrExchangeRateNotFound, code, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, fmt.Errorf("failed to resolve rate for %s: %w", code, err)
	}

	return rate.Rate, nil
}

// CreateExchangeRate appends a new rate row to a currency's series.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	code := strings.ToUpper(req.CurrencyCode)
	if code == s.localCurrency {
		return nil, fmt.Errorf("%w: the local currency has a fixed rate of 1", apperrors.ErrValidation)
	}

	if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   code,
		Rate:           req.Rate,
		ValidFrom:      req.ValidFrom,
		Source:         req.Source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate appended",
		slog.String("currency", code),
		slog.String("rate", req.Rate.String()),
		slog.Time("valid_from", req.ValidFrom))
	return &rate, nil
}

// ListRates returns one page of a currency's series, newest first, with a cursor
// token for the next page.
func (s *ExchangeRateService) ListRates(ctx context.Context, currencyCode string, pageToken string, limit int) ([]domain.ExchangeRate, string, error) {
	code := strings.ToUpper(currencyCode)
	if len(code) != 3 {
		return nil, "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultRatePageSize
	}

	var before *time.Time
	if pageToken != "" {
		cursor, err := pagination.DecodeDateBasedToken(pageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		before = &cursor
	}

	rates, err := s.rateRepo.ListRates(ctx, code, before, limit)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list exchange rates in service: %w", err)
	}

	nextToken := ""
	if len(rates) == limit {
		nextToken = pagination.EncodeDateBasedToken(rates[len(rates)-1].ValidFrom)
	}
	return rates, nextToken, nil
}
