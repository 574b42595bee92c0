package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// DashboardHandler handles overview/aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetMonthlyDashboard handles the per-month overview.
// @Summary     Monthly dashboard
// @Description Income/expense totals per month of a year plus all-time totals
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to the current year)"
// @Success     200 {object} services.MonthlyDashboard "Monthly breakdown"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/monthly [get]
func (h *DashboardHandler) GetMonthlyDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year"))
			return
		}
	}

	dashboard, err := h.dashboardService.GetMonthlyDashboard(userID, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetYearlyDashboard handles the per-year overview.
// @Summary     Yearly dashboard
// @Description Income/expense totals per year, oldest first, plus all-time totals
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.YearlyDashboard "Yearly breakdown"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/yearly [get]
func (h *DashboardHandler) GetYearlyDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetYearlyDashboard(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// GetInvestmentsSummary handles the portfolio overview.
// @Summary     Investments summary
// @Description Aggregate position per instrument; price fields are null when no price is available
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} []services.InvestmentSummary "Per-instrument summaries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard/investments [get]
func (h *DashboardHandler) GetInvestmentsSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summaries, err := h.dashboardService.GetInvestmentsSummary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investments": summaries})
}
