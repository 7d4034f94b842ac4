package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the append-only rate series for a currency.
// The applicable rate at date D is the row with the greatest ValidFrom <= end of day D.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (e.g., UUID)
	CurrencyCode   string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	Rate           decimal.Decimal `json:"rate"`           // Units of local currency per 1 unit of CurrencyCode
	ValidFrom      time.Time       `json:"validFrom"`
	Source         string          `json:"source"` // Publishing source tag (e.g., "BCV")
	AuditFields
}
