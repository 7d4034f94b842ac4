package domain

import "github.com/shopspring/decimal"

// ConceptKind distinguishes earnings from deductions.
type ConceptKind string

const (
	Earning   ConceptKind = "EARNING"
	Deduction ConceptKind = "DEDUCTION"
)

// ComputationMethod selects how a concept's amount is derived.
type ComputationMethod string

const (
	FixedAmount       ComputationMethod = "FIXED_AMOUNT"
	PercentageOfBasic ComputationMethod = "PERCENTAGE_OF_BASIC"
	Formula           ComputationMethod = "FORMULA"
)

// ConceptClass is the tagged variant separating contract-derived (structural) concepts
// from user-configured ones. Structural concepts are immutable at the write boundary.
type ConceptClass string

const (
	StructuralConcept ConceptClass = "STRUCTURAL"
	UserConcept       ConceptClass = "USER"
)

// PayrollConcept is a configured earning or deduction rule.
type PayrollConcept struct {
	ConceptID        string            `json:"conceptID"` // Primary Key (e.g., UUID)
	Code             string            `json:"code"`      // Unique business code (e.g., "1001")
	Name             string            `json:"name"`
	Kind             ConceptKind       `json:"kind"`
	Method           ComputationMethod `json:"method"`
	Value            decimal.Decimal   `json:"value"`        // Fixed amount or percentage, per Method
	CurrencyCode     string            `json:"currencyCode"` // Currency of Value for FIXED_AMOUNT
	FormulaText      string            `json:"formulaText"`  // Only used when Method == FORMULA
	VisibleOnReceipt bool              `json:"visibleOnReceipt"`
	ReceiptOrder     int               `json:"receiptOrder"`
	Class            ConceptClass      `json:"class"`
	Active           bool              `json:"active"`
	AuditFields
}

// IsStructural reports whether the concept belongs to the protected structural class.
func (c PayrollConcept) IsStructural() bool {
	return c.Class == StructuralConcept
}

// EmployeeConceptOverride replaces a concept's base value for one employee.
// It never replaces formula text, only the numeric value formulas and fixed
// computations start from.
type EmployeeConceptOverride struct {
	EmployeeID  string          `json:"employeeID"`
	ConceptCode string          `json:"conceptCode"`
	Value       decimal.Decimal `json:"value"`
	Active      bool            `json:"active"`
	AuditFields
}
