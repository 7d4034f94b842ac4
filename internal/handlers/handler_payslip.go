package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/nominasuite/payroll_engine/internal/middleware"
	"github.com/nominasuite/payroll_engine/pkg/config"
)

// payslipHandler exposes the payslip computation and formula validation endpoints.
// Both are read-only: a preview computes without persisting anything.
type payslipHandler struct {
	payslipService portssvc.PayslipSvcFacade
	cfg            *config.Config
}

// newPayslipHandler creates a new payslipHandler.
func newPayslipHandler(ps portssvc.PayslipSvcFacade, cfg *config.Config) *payslipHandler {
	return &payslipHandler{
		payslipService: ps,
		cfg:            cfg,
	}
}

// registerPayslipRoutes registers routes related to payslip computation.
func registerPayslipRoutes(rg *gin.RouterGroup, cfg *config.Config, payslipService portssvc.PayslipSvcFacade) {
	h := newPayslipHandler(payslipService, cfg)

	payslips := rg.Group("/payslips")
	{
		payslips.POST("/preview", h.previewPayslip)
	}
	formulas := rg.Group("/formulas")
	{
		formulas.POST("/validate", h.validateFormula)
	}
}

func (h *payslipHandler) previewPayslip(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ComputePayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewPayslip", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.RateSource == "" {
		req.RateSource = h.cfg.DefaultRateSource
	}

	result, err := h.payslipService.ComputePayslip(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoActiveContract),
			errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrMalformedPeriod),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCurrencyNotFound),
			errors.Is(err, apperrors.ErrExchangeRateNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to compute payslip", slog.String("employee_id", req.EmployeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute payslip"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPayslipResponse(result))
}

func (h *payslipHandler) validateFormula(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ValidateFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateFormula", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// Always 200: an invalid formula is a successful validation outcome.
	resp := h.payslipService.ValidateFormula(c.Request.Context(), req.Formula, req.Variables)
	c.JSON(http.StatusOK, resp)
}
