package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/nominasuite/payroll_engine/internal/middleware"
)

// exchangeRateHandler handles HTTP requests for the append-only rate series.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:code", h.listRates)
		rates.GET("/:code/resolve", h.resolveRate)
	}
}

func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	created, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrCurrencyNotFound) {
			logger.Warn("Validation error creating exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exchange rate"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(created))
}

func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))
	pageToken := c.Query("pageToken")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	rates, nextToken, err := h.rateService.ListRates(c.Request.Context(), code, pageToken, limit)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list exchange rates", slog.String("currency_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, nextToken))
}

// resolveRate answers "what rate applies to this currency at this date", the same
// lookup the engine performs during payslip computation.
func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("code"))
	source := c.Query("source")

	asOf := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	rate, err := h.rateService.ResolveRate(c.Request.Context(), code, asOf, source)
	if err != nil {
		if errors.Is(err, apperrors.ErrCurrencyNotFound) || errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve exchange rate", slog.String("currency_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"currencyCode": code,
		"date":         asOf.Format("2006-01-02"),
		"rate":         rate,
	})
}
