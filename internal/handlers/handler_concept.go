package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/dto"
	"github.com/nominasuite/payroll_engine/internal/middleware"
)

// conceptHandler handles HTTP requests for payroll concept configuration.
type conceptHandler struct {
	conceptService portssvc.ConceptSvcFacade
}

// newConceptHandler creates a new conceptHandler.
func newConceptHandler(cs portssvc.ConceptSvcFacade) *conceptHandler {
	return &conceptHandler{
		conceptService: cs,
	}
}

// registerConceptRoutes registers routes related to payroll concepts.
func registerConceptRoutes(rg *gin.RouterGroup, conceptService portssvc.ConceptSvcFacade) {
	h := newConceptHandler(conceptService)

	concepts := rg.Group("/concepts")
	{
		concepts.GET("", h.listConcepts)
		concepts.POST("", h.createConcept)
		concepts.PATCH("/:code/value", h.updateConceptValue)
	}
}

func (h *conceptHandler) listConcepts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	concepts, err := h.conceptService.ListConcepts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list concepts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list concepts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListConceptResponse(concepts))
}

func (h *conceptHandler) createConcept(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateConceptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConcept", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	created, err := h.conceptService.CreateConcept(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create concept", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create concept"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToConceptResponse(created))
}

type updateConceptValueRequest struct {
	Value decimal.Decimal `json:"value" binding:"required"`
}

func (h *conceptHandler) updateConceptValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	var req updateConceptValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID := middleware.GetActorIDFromContext(c)

	updated, err := h.conceptService.UpdateConceptValue(c.Request.Context(), code, req.Value, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSystemConcept):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update concept value", slog.String("concept_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update concept"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConceptResponse(updated))
}
