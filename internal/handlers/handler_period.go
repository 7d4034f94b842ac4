package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nominasuite/payroll_engine/internal/apperrors"
	portssvc "github.com/nominasuite/payroll_engine/internal/core/ports/services"
	"github.com/nominasuite/payroll_engine/internal/middleware"
)

// periodHandler exposes the payroll run endpoints.
type periodHandler struct {
	runService portssvc.PayrollRunSvcFacade
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(rs portssvc.PayrollRunSvcFacade) *periodHandler {
	return &periodHandler{
		runService: rs,
	}
}

// registerPeriodRoutes registers routes related to payroll periods.
func registerPeriodRoutes(rg *gin.RouterGroup, runService portssvc.PayrollRunSvcFacade) {
	h := newPeriodHandler(runService)

	periods := rg.Group("/periods")
	{
		periods.POST("/:id/close", h.closePeriod)
	}
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")
	actorID := middleware.GetActorIDFromContext(c)

	summary, err := h.runService.ClosePeriod(c.Request.Context(), periodID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrPeriodClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrMalformedPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period", slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}
