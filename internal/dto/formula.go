package dto

import "github.com/shopspring/decimal"

// ValidateFormulaRequest asks the engine to parse and evaluate a formula against a
// sample variable context. Used by the concept authoring tool.
type ValidateFormulaRequest struct {
	Formula   string                     `json:"formula" binding:"required"`
	Variables map[string]decimal.Decimal `json:"variables"`
}

// ValidateFormulaResponse carries either the evaluated result or the failure reason,
// plus the evaluation trace in both cases.
type ValidateFormulaResponse struct {
	Valid  bool             `json:"valid"`
	Result *decimal.Decimal `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
	Trace  []string         `json:"trace,omitempty"`
}
