package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// dashboardService aggregates transactions and investments for the overview
// screens. Sums are computed in Go over date-bounded queries so the same code
// runs against Postgres in production and SQLite in tests.
type dashboardService struct {
	db     *gorm.DB
	prices PriceResolver
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, prices PriceResolver) DashboardServicer {
	return &dashboardService{db: db, prices: prices}
}

func (s *dashboardService) allTimeTotals(userID uint) (Totals, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Find(&transactions).Error; err != nil {
		return Totals{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totals Totals
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			totals.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			totals.TotalExpenses += tx.Amount
		}
	}
	return totals, nil
}

// GetMonthlyDashboard returns income/expense totals per month of the given
// year. Every month is present, zero-filled when it has no transactions.
func (s *dashboardService) GetMonthlyDashboard(userID uint, year int) (*MonthlyDashboard, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ? AND transaction_date >= ? AND transaction_date < ?", userID, from, to).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	monthly := make([]MonthlyPoint, 12)
	for i := range monthly {
		monthly[i].Month = time.Month(i + 1).String()
	}
	for _, tx := range transactions {
		i := int(tx.Date.Month()) - 1
		switch tx.Type {
		case models.TransactionTypeIncome:
			monthly[i].Income += tx.Amount
		case models.TransactionTypeExpense:
			monthly[i].Expenses += tx.Amount
		}
	}

	total, err := s.allTimeTotals(userID)
	if err != nil {
		return nil, err
	}

	return &MonthlyDashboard{Monthly: monthly, Total: total}, nil
}

// GetYearlyDashboard returns income/expense totals per year, oldest first.
func (s *dashboardService) GetYearlyDashboard(userID uint) (*YearlyDashboard, error) {
	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).
		Order("transaction_date ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byYear := map[int]*YearlyPoint{}
	var years []int
	var total Totals
	for _, tx := range transactions {
		y := tx.Date.Year()
		point, ok := byYear[y]
		if !ok {
			point = &YearlyPoint{Year: y}
			byYear[y] = point
			years = append(years, y)
		}
		switch tx.Type {
		case models.TransactionTypeIncome:
			point.Income += tx.Amount
			total.TotalIncome += tx.Amount
		case models.TransactionTypeExpense:
			point.Expenses += tx.Amount
			total.TotalExpenses += tx.Amount
		}
	}

	yearly := make([]YearlyPoint, 0, len(years))
	for _, y := range years {
		yearly = append(yearly, *byYear[y])
	}

	return &YearlyDashboard{Yearly: yearly, Total: total}, nil
}

// GetInvestmentsSummary aggregates each of the user's instruments with a
// current price from the resolver. Instruments whose price cannot be resolved
// are listed with null price fields instead of failing the summary.
func (s *dashboardService) GetInvestmentsSummary(ctx context.Context, userID uint) ([]InvestmentSummary, error) {
	var investments []models.Investment
	if err := s.db.Preload("Lots").Where("user_id = ?", userID).
		Order("id ASC").Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summaries := make([]InvestmentSummary, 0, len(investments))
	for _, inv := range investments {
		summary := InvestmentSummary{
			Ticker: inv.Ticker,
			Name:   inv.Name,
		}

		var totalUnits float64
		for _, lot := range inv.Lots {
			summary.AmountInvested += lot.AmountInvested
			if lot.PricePerUnit != 0 {
				totalUnits += lot.AmountInvested / lot.PricePerUnit
			}
		}

		// One resolver call per instrument; repeated tickers hit the cache.
		if price := s.prices.CurrentPrice(ctx, inv.Ticker); price != nil {
			value := totalUnits * *price
			gainLoss := value - summary.AmountInvested
			summary.CurrentPrice = price
			summary.CurrentValue = &value
			summary.GainLoss = &gainLoss
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}
