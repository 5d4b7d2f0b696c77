package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openledgerhq/gl_backend/internal/apperrors"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/openledgerhq/gl_backend/internal/middleware"
)

// periodHandler handles HTTP requests related to the fiscal period calendar.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers routes related to fiscal periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/current", h.getCurrentPeriod)
		periods.GET("/:id", h.getPeriod)
		periods.POST("/:id/close", h.closePeriod)
	}
}

// createPeriod godoc
// @Summary Create a fiscal period
// @Description Registers a new open fiscal period. The date range must not overlap any existing period.
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input or overlapping range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Validation error creating period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	logger.Info("Fiscal period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// getPeriod godoc
// @Summary Get a fiscal period by ID
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /periods/{id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get period from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getCurrentPeriod godoc
// @Summary Get the current fiscal period
// @Description Retrieves the open period containing today's date
// @Tags periods
// @Produce  json
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "No open period covers today"
// @Failure 500 {object} map[string]string "Failed to retrieve period"
// @Security BearerAuth
// @Router /periods/current [get]
func (h *periodHandler) getCurrentPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.periodService.GetCurrentPeriod(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No open period covers the current date"})
		} else {
			logger.Error("Failed to get current period from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List fiscal periods of a year
// @Tags periods
// @Produce  json
// @Param   year query int true "Fiscal year"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} map[string]string "Missing or invalid year"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'year' must be an integer"})
		return
	}

	periods, err := h.periodService.GetPeriodsByYear(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Periods: dto.ToPeriodResponses(periods)})
}

// closePeriod godoc
// @Summary Close a fiscal period
// @Description Transitions a period OPEN to CLOSED. Closing is permanent; there is no reopen.
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 204 "Period closed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Period already closed"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /periods/{id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.periodService.ClosePeriod(c.Request.Context(), periodID, actorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to close period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Fiscal period closed", slog.String("period_id", periodID))
	c.Status(http.StatusNoContent)
}
