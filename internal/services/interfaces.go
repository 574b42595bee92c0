package services

import (
	"context"
	"time"

	"fintrack/internal/market"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// PriceResolver is the price lookup surface the services need. Satisfied by
// *market.Resolver; tests substitute fakes.
type PriceResolver interface {
	CurrentPrice(ctx context.Context, ticker string) *float64
}

// LotFilter holds the optional inclusive date range for listing lots.
type LotFilter struct {
	Start *time.Time
	End   *time.Time
}

// ValuedLot is a lot combined with its valuation at the current price.
type ValuedLot struct {
	ID              uint      `json:"id"`
	Date            time.Time `json:"date"`
	AmountInvested  float64   `json:"amount_invested"`
	PricePerUnit    float64   `json:"price_per_unit"`
	Tax             float64   `json:"tax"`
	UnitsBought     float64   `json:"units_bought"`
	CurrentPrice    float64   `json:"current_price"`
	CurrentValue    float64   `json:"current_value"`
	GainLoss        float64   `json:"gain_loss"`
	GainLossPercent float64   `json:"gain_loss_percent"`
}

// DetailsPagination describes the page of lots in an InvestmentDetails
// response. TotalCount respects the date filter; the stats block does not.
type DetailsPagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
}

// InvestmentDetails is the full response for the investment details endpoint:
// aggregate stats over every lot, plus one filtered, paginated slice of lots
// valued at the same current price.
type InvestmentDetails struct {
	Stats        market.InstrumentValuation `json:"stats"`
	Pagination   DetailsPagination          `json:"pagination"`
	Transactions []ValuedLot                `json:"transactions"`
}

// InvestmentServicer defines the contract for investment-related business logic.
type InvestmentServicer interface {
	AddInvestment(ctx context.Context, userID uint, name, ticker string) (*models.Investment, error)
	GetUserInvestments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error)
	GetPrice(ctx context.Context, ticker string) *float64
	GetInvestmentDetails(ctx context.Context, userID, investmentID uint, page pagination.PageRequest, filter LotFilter) (*InvestmentDetails, error)
	AddLot(userID, investmentID uint, date time.Time, amountInvested, pricePerUnit, tax float64) (*models.InvestmentLot, error)
	UpdateLot(userID, investmentID, lotID uint, date time.Time, amountInvested, pricePerUnit, tax float64) (*models.InvestmentLot, error)
	DeleteLot(userID, investmentID, lotID uint) error
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID, categoryID uint, transactionType models.TransactionType, amount float64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
}

// MonthlyPoint is one month's income/expense totals.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// YearlyPoint is one year's income/expense totals.
type YearlyPoint struct {
	Year     int     `json:"year"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Totals holds all-time income and expense sums.
type Totals struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
}

// MonthlyDashboard is the per-month breakdown for one year plus all-time totals.
type MonthlyDashboard struct {
	Monthly []MonthlyPoint `json:"monthly"`
	Total   Totals         `json:"total"`
}

// YearlyDashboard is the per-year breakdown plus all-time totals.
type YearlyDashboard struct {
	Yearly []YearlyPoint `json:"yearly"`
	Total  Totals        `json:"total"`
}

// InvestmentSummary is one instrument's aggregate position for the dashboard.
// Price fields are nil when no current price could be resolved; the instrument
// is still listed rather than failing the whole summary.
type InvestmentSummary struct {
	Ticker         string   `json:"ticker"`
	Name           string   `json:"name"`
	AmountInvested float64  `json:"amount_invested"`
	CurrentPrice   *float64 `json:"current_price"`
	CurrentValue   *float64 `json:"current_value"`
	GainLoss       *float64 `json:"gain_loss"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetMonthlyDashboard(userID uint, year int) (*MonthlyDashboard, error)
	GetYearlyDashboard(userID uint) (*YearlyDashboard, error)
	GetInvestmentsSummary(ctx context.Context, userID uint) ([]InvestmentSummary, error)
}
