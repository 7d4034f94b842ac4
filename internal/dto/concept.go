package dto

import (
	"github.com/nominasuite/payroll_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateConceptRequest defines the data needed to configure a new payroll concept.
// Only user-class concepts can be created through the API; structural concepts are
// seeded by migration and immutable.
type CreateConceptRequest struct {
	Code             string          `json:"code" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Kind             string          `json:"kind" binding:"required,oneof=EARNING DEDUCTION"`
	Method           string          `json:"method" binding:"required,oneof=FIXED_AMOUNT PERCENTAGE_OF_BASIC FORMULA"`
	Value            decimal.Decimal `json:"value"`
	CurrencyCode     string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	FormulaText      string          `json:"formulaText"`
	VisibleOnReceipt bool            `json:"visibleOnReceipt"`
	ReceiptOrder     int             `json:"receiptOrder"`
}

// ConceptResponse defines the data returned for a payroll concept.
type ConceptResponse struct {
	ConceptID        string          `json:"conceptID"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Method           string          `json:"method"`
	Value            decimal.Decimal `json:"value"`
	CurrencyCode     string          `json:"currencyCode"`
	FormulaText      string          `json:"formulaText,omitempty"`
	VisibleOnReceipt bool            `json:"visibleOnReceipt"`
	ReceiptOrder     int             `json:"receiptOrder"`
	Class            string          `json:"class"`
	Active           bool            `json:"active"`
}

// ToConceptResponse converts a domain.PayrollConcept to ConceptResponse DTO
func ToConceptResponse(c *domain.PayrollConcept) ConceptResponse {
	return ConceptResponse{
		ConceptID:        c.ConceptID,
		Code:             c.Code,
		Name:             c.Name,
		Kind:             string(c.Kind),
		Method:           string(c.Method),
		Value:            c.Value,
		CurrencyCode:     c.CurrencyCode,
		FormulaText:      c.FormulaText,
		VisibleOnReceipt: c.VisibleOnReceipt,
		ReceiptOrder:     c.ReceiptOrder,
		Class:            string(c.Class),
		Active:           c.Active,
	}
}

// ToListConceptResponse converts a slice of concepts to response DTOs.
func ToListConceptResponse(concepts []domain.PayrollConcept) []ConceptResponse {
	out := make([]ConceptResponse, len(concepts))
	for i := range concepts {
		out[i] = ToConceptResponse(&concepts[i])
	}
	return out
}
