package dto

import (
	"time"

	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for appending a rate row to a
// currency's series.
type CreateExchangeRateRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	ValidFrom    time.Time       `json:"validFrom" binding:"required"`
	Source       string          `json:"source"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	ValidFrom      time.Time       `json:"validFrom"`
	Source         string          `json:"source"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		Rate:           rate.Rate,
		ValidFrom:      rate.ValidFrom,
		Source:         rate.Source,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
	}
}

// ListExchangeRatesResponse carries one page of a currency's rate series.
type ListExchangeRatesResponse struct {
	Rates         []ExchangeRateResponse `json:"rates"`
	NextPageToken string                 `json:"nextPageToken,omitempty"`
}

// ToListExchangeRatesResponse converts domain rates plus a cursor into the response DTO.
func ToListExchangeRatesResponse(rates []domain.ExchangeRate, nextPageToken string) ListExchangeRatesResponse {
	out := ListExchangeRatesResponse{
		Rates:         make([]ExchangeRateResponse, len(rates)),
		NextPageToken: nextPageToken,
	}
	for i := range rates {
		out.Rates[i] = ToExchangeRateResponse(&rates[i])
	}
	return out
}
