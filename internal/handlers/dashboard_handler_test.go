package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/services"
)

// --- mock dashboard service ---

type mockDashboardService struct {
	getMonthlyDashboardFn   func(userID uint, year int) (*services.MonthlyDashboard, error)
	getYearlyDashboardFn    func(userID uint) (*services.YearlyDashboard, error)
	getInvestmentsSummaryFn func(userID uint) ([]services.InvestmentSummary, error)
}

func (m *mockDashboardService) GetMonthlyDashboard(userID uint, year int) (*services.MonthlyDashboard, error) {
	if m.getMonthlyDashboardFn != nil {
		return m.getMonthlyDashboardFn(userID, year)
	}
	return &services.MonthlyDashboard{}, nil
}

func (m *mockDashboardService) GetYearlyDashboard(userID uint) (*services.YearlyDashboard, error) {
	if m.getYearlyDashboardFn != nil {
		return m.getYearlyDashboardFn(userID)
	}
	return &services.YearlyDashboard{}, nil
}

func (m *mockDashboardService) GetInvestmentsSummary(_ context.Context, userID uint) ([]services.InvestmentSummary, error) {
	if m.getInvestmentsSummaryFn != nil {
		return m.getInvestmentsSummaryFn(userID)
	}
	return []services.InvestmentSummary{}, nil
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func setupDashboardRouter(handler *DashboardHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/dashboard/monthly", handler.GetMonthlyDashboard)
	auth.GET("/dashboard/yearly", handler.GetYearlyDashboard)
	auth.GET("/dashboard/investments", handler.GetInvestmentsSummary)
	return r
}

func TestDashboardHandler_GetMonthlyDashboard(t *testing.T) {
	t.Run("passes year to service", func(t *testing.T) {
		var gotYear int
		svc := &mockDashboardService{
			getMonthlyDashboardFn: func(_ uint, year int) (*services.MonthlyDashboard, error) {
				gotYear = year
				return &services.MonthlyDashboard{}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/monthly?year=2023", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotYear != 2023 {
			t.Errorf("expected year 2023, got %d", gotYear)
		}
	})

	t.Run("returns 400 on bad year", func(t *testing.T) {
		r := setupDashboardRouter(NewDashboardHandler(&mockDashboardService{}))

		rec := doRequest(r, "GET", "/dashboard/monthly?year=twenty", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDashboardHandler_GetInvestmentsSummary(t *testing.T) {
	t.Run("returns summaries with null price fields intact", func(t *testing.T) {
		svc := &mockDashboardService{
			getInvestmentsSummaryFn: func(_ uint) ([]services.InvestmentSummary, error) {
				return []services.InvestmentSummary{
					{Ticker: "DELISTED", Name: "Gone Corp", AmountInvested: 100},
				}, nil
			},
		}
		r := setupDashboardRouter(NewDashboardHandler(svc))

		rec := doRequest(r, "GET", "/dashboard/investments", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		list := result["investments"].([]interface{})
		if len(list) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(list))
		}
		s := list[0].(map[string]interface{})
		if s["current_price"] != nil {
			t.Errorf("expected null current_price, got %v", s["current_price"])
		}
	})
}
