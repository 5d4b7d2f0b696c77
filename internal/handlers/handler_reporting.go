package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/openledgerhq/gl_backend/internal/core/ports/services"
	"github.com/openledgerhq/gl_backend/internal/dto"
	"github.com/openledgerhq/gl_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for derived financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

// parseAsOf resolves the optional asOf query parameter, defaulting to today.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	asOfStr := c.Query("asOf")
	if asOfStr == "" {
		return time.Now().UTC(), true
	}
	asOf, err := time.Parse(dateLayout, asOfStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'asOf' must be a YYYY-MM-DD date"})
		return time.Time{}, false
	}
	return asOf, true
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Lists every account with activity on or before asOf, net balance in the account's normal column. Column totals always agree.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// incomeStatement godoc
// @Summary Income statement report
// @Description Sums revenue and expense activity with entry dates within [from, to]
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Missing or invalid dates"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'from' must be a YYYY-MM-DD date"})
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'to' must be a YYYY-MM-DD date"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Window end precedes window start"})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Sums asset, liability, and equity balances inception to asOf. The accounting equation holds whenever the books are consistent; the figures are never adjusted to force it.
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}
