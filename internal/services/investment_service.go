package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/market"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// detailsPageSize is the default page size for the investment details
// endpoint, smaller than the global list default.
const detailsPageSize = 10

// investmentService handles investment-related business logic.
type investmentService struct {
	db     *gorm.DB
	prices PriceResolver
}

// NewInvestmentService creates a new InvestmentServicer.
func NewInvestmentService(db *gorm.DB, prices PriceResolver) InvestmentServicer {
	return &investmentService{db: db, prices: prices}
}

// getOwnedInvestment loads an investment scoped to its owner. Absent rows and
// rows owned by other users produce the same error.
func (s *investmentService) getOwnedInvestment(userID, investmentID uint) (*models.Investment, error) {
	var investment models.Investment
	if err := s.db.Where("id = ? AND user_id = ?", investmentID, userID).First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &investment, nil
}

// AddInvestment registers a new instrument for the user. The ticker must
// resolve to a live price so typos are rejected up front.
func (s *investmentService) AddInvestment(ctx context.Context, userID uint, name, ticker string) (*models.Investment, error) {
	if s.prices.CurrentPrice(ctx, ticker) == nil {
		return nil, apperrors.ErrInvalidTicker
	}

	investment := &models.Investment{
		UserID: userID,
		Name:   name,
		Ticker: ticker,
	}
	if err := s.db.Create(investment).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return investment, nil
}

// GetUserInvestments returns a paginated list of the user's instruments.
func (s *investmentService) GetUserInvestments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Investment], error) {
	page.Defaults()

	base := s.db.Model(&models.Investment{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investments []models.Investment
	if err := base.Order("created_at DESC, id DESC").
		Scopes(pagination.Paginate(page)).Find(&investments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(investments, page, totalItems)
	return &result, nil
}

// GetPrice resolves the current market price for a ticker. A nil result means
// the price is unavailable; the handler reports it as a null field.
func (s *investmentService) GetPrice(ctx context.Context, ticker string) *float64 {
	return s.prices.CurrentPrice(ctx, ticker)
}

// applyLotFilter adds the inclusive date-range conditions to a lot query.
func applyLotFilter(q *gorm.DB, filter LotFilter) *gorm.DB {
	if filter.Start != nil {
		q = q.Where("date >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("date <= ?", *filter.End)
	}
	return q
}

// GetInvestmentDetails returns aggregate stats over every lot of the
// investment together with one filtered, paginated page of lots, all valued
// at a single current price resolved once per request.
//
// The date filter applies to the count and the page slice only; stats always
// cover the full history. If no price can be resolved the whole operation
// fails — computing stats against a missing price would report a total loss.
func (s *investmentService) GetInvestmentDetails(ctx context.Context, userID, investmentID uint, page pagination.PageRequest, filter LotFilter) (*InvestmentDetails, error) {
	investment, err := s.getOwnedInvestment(userID, investmentID)
	if err != nil {
		return nil, err
	}

	price := s.prices.CurrentPrice(ctx, investment.Ticker)
	if price == nil {
		return nil, apperrors.ErrPriceUnavailable
	}

	var allLots []models.InvestmentLot
	if err := s.db.Where("investment_id = ?", investmentID).Find(&allLots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	stats, err := market.ValueLots(allLots, *price)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if page.Page == 0 {
		page.Page = 1
	}
	if page.PageSize == 0 {
		page.PageSize = detailsPageSize
	}

	base := applyLotFilter(s.db.Model(&models.InvestmentLot{}).Where("investment_id = ?", investmentID), filter)

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Secondary id ordering keeps pages deterministic when lots share a date.
	var lots []models.InvestmentLot
	if err := base.Order("date DESC, id DESC").
		Scopes(pagination.Paginate(page)).Find(&lots).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transactions := make([]ValuedLot, 0, len(lots))
	for _, lot := range lots {
		v, err := market.ValueLot(lot, *price)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		transactions = append(transactions, ValuedLot{
			ID:              lot.ID,
			Date:            lot.Date,
			AmountInvested:  lot.AmountInvested,
			PricePerUnit:    lot.PricePerUnit,
			Tax:             lot.Tax,
			UnitsBought:     v.UnitsBought,
			CurrentPrice:    *price,
			CurrentValue:    v.CurrentValue,
			GainLoss:        v.GainLoss,
			GainLossPercent: v.GainLossPercent,
		})
	}

	return &InvestmentDetails{
		Stats: stats,
		Pagination: DetailsPagination{
			CurrentPage: page.Page,
			TotalPages:  page.TotalPages(totalCount),
			TotalCount:  totalCount,
		},
		Transactions: transactions,
	}, nil
}

// validateLotFields rejects lot values the valuation engine cannot handle.
// Zero price per unit in particular must never reach the database.
func validateLotFields(amountInvested, pricePerUnit, tax float64) error {
	if amountInvested <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount_invested must be greater than zero")
	}
	if pricePerUnit <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price_per_unit must be greater than zero")
	}
	if tax < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "tax must not be negative")
	}
	return nil
}

// AddLot records a purchase within an investment the user owns.
func (s *investmentService) AddLot(userID, investmentID uint, date time.Time, amountInvested, pricePerUnit, tax float64) (*models.InvestmentLot, error) {
	if _, err := s.getOwnedInvestment(userID, investmentID); err != nil {
		return nil, err
	}
	if err := validateLotFields(amountInvested, pricePerUnit, tax); err != nil {
		return nil, err
	}

	lot := &models.InvestmentLot{
		InvestmentID:   investmentID,
		Date:           date,
		AmountInvested: amountInvested,
		PricePerUnit:   pricePerUnit,
		Tax:            tax,
	}
	if err := s.db.Create(lot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return lot, nil
}

// UpdateLot rewrites a lot's fields after re-checking investment ownership.
func (s *investmentService) UpdateLot(userID, investmentID, lotID uint, date time.Time, amountInvested, pricePerUnit, tax float64) (*models.InvestmentLot, error) {
	if _, err := s.getOwnedInvestment(userID, investmentID); err != nil {
		return nil, err
	}
	if err := validateLotFields(amountInvested, pricePerUnit, tax); err != nil {
		return nil, err
	}

	var lot models.InvestmentLot
	if err := s.db.Where("id = ? AND investment_id = ?", lotID, investmentID).First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLotNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	lot.Date = date
	lot.AmountInvested = amountInvested
	lot.PricePerUnit = pricePerUnit
	lot.Tax = tax
	if err := s.db.Save(&lot).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &lot, nil
}

// DeleteLot removes a lot from an investment the user owns.
func (s *investmentService) DeleteLot(userID, investmentID, lotID uint) error {
	if _, err := s.getOwnedInvestment(userID, investmentID); err != nil {
		return err
	}

	res := s.db.Where("id = ? AND investment_id = ?", lotID, investmentID).Delete(&models.InvestmentLot{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrLotNotFound
	}
	return nil
}
