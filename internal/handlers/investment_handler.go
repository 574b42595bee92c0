package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// lotDateLayout is the wire format for lot dates and filter bounds.
const lotDateLayout = "2006-01-02"

// InvestmentHandler handles investment-related requests.
type InvestmentHandler struct {
	investmentService services.InvestmentServicer
}

// NewInvestmentHandler creates a new InvestmentHandler.
func NewInvestmentHandler(investmentService services.InvestmentServicer) *InvestmentHandler {
	return &InvestmentHandler{investmentService: investmentService}
}

// AddInvestmentRequest represents the request payload for adding an investment.
type AddInvestmentRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Ticker string `json:"ticker" binding:"required,ticker"`
}

// LotRequest represents the request payload for creating or updating a lot.
type LotRequest struct {
	Date           string  `json:"date" binding:"required"`
	AmountInvested float64 `json:"amount_invested" binding:"required,gt=0"`
	PricePerUnit   float64 `json:"price_per_unit" binding:"required,gt=0"`
	Tax            float64 `json:"tax" binding:"gte=0"`
}

// DetailsQuery holds the query parameters of the details endpoint. The page
// size parameter is named limit here, unlike the page_size used by the list
// endpoints.
type DetailsQuery struct {
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Start string `form:"start"`
	End   string `form:"end"`
}

// PriceResponse represents the current price of a ticker. CurrentPrice is
// null when no price could be resolved.
type PriceResponse struct {
	Ticker       string   `json:"ticker"`
	CurrentPrice *float64 `json:"currentPrice"`
}

// parseLotDate parses a calendar date in YYYY-MM-DD form to midnight UTC.
func parseLotDate(value string) (time.Time, error) {
	date, err := time.Parse(lotDateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD format")
	}
	return date, nil
}

// AddInvestment handles adding a new tracked instrument.
// @Summary     Add investment
// @Description Start tracking a new instrument; the ticker must resolve to a market price
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddInvestmentRequest true "Investment details"
// @Success     201 {object} models.Investment "Investment created"
// @Failure     400 {object} ErrorResponse "Invalid input or unpriceable ticker"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [post]
func (h *InvestmentHandler) AddInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.investmentService.AddInvestment(c.Request.Context(), userID, req.Name, req.Ticker)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": investment})
}

// GetInvestments handles listing the user's investments.
// @Summary     List investments
// @Description Get a paginated list of the authenticated user's investments
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.Investment] "Investments"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments [get]
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.investmentService.GetUserInvestments(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPrice handles looking up the current price of a ticker.
// @Summary     Get ticker price
// @Description Get the current market price for a ticker; currentPrice is null when unavailable
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       ticker path string true "Ticker symbol"
// @Success     200 {object} PriceResponse "Current price"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /investments/price/{ticker} [get]
func (h *InvestmentHandler) GetPrice(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	ticker := c.Param("ticker")
	price := h.investmentService.GetPrice(c.Request.Context(), ticker)
	c.JSON(http.StatusOK, PriceResponse{Ticker: ticker, CurrentPrice: price})
}

// GetInvestmentDetails handles the investment detail view.
// @Summary     Investment details
// @Description Aggregate stats over every lot plus one filtered, paginated page of valued lots
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       page query int false "Page number" default(1)
// @Param       limit query int false "Lots per page" default(10)
// @Param       start query string false "Earliest lot date (YYYY-MM-DD, inclusive)"
// @Param       end query string false "Latest lot date (YYYY-MM-DD, inclusive)"
// @Success     200 {object} services.InvestmentDetails "Details"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     502 {object} ErrorResponse "Price unavailable"
// @Router      /investments/{id}/details [get]
func (h *InvestmentHandler) GetInvestmentDetails(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query DetailsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.LotFilter
	if query.Start != "" {
		start, err := parseLotDate(query.Start)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.Start = &start
	}
	if query.End != "" {
		end, err := parseLotDate(query.End)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter.End = &end
	}

	page := pagination.PageRequest{Page: query.Page, PageSize: query.Limit}
	details, err := h.investmentService.GetInvestmentDetails(c.Request.Context(), userID, investmentID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// AddLot handles recording a purchase within an investment.
// @Summary     Add lot
// @Description Record a purchase lot within an investment the user owns
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       request body LotRequest true "Lot details"
// @Success     201 {object} models.InvestmentLot "Lot created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/transactions [post]
func (h *InvestmentHandler) AddLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseLotDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lot, err := h.investmentService.AddLot(userID, investmentID, date, req.AmountInvested, req.PricePerUnit, req.Tax)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lot": lot})
}

// UpdateLot handles rewriting a lot's fields.
// @Summary     Update lot
// @Description Replace the fields of an existing lot
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       transactionId path int true "Lot ID"
// @Param       request body LotRequest true "Lot details"
// @Success     200 {object} models.InvestmentLot "Lot updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment or lot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/transactions/{transactionId} [put]
func (h *InvestmentHandler) UpdateLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	lotID, err := parsePathID(c, "transactionId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req LotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseLotDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	lot, err := h.investmentService.UpdateLot(userID, investmentID, lotID, date, req.AmountInvested, req.PricePerUnit, req.Tax)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"lot": lot})
}

// DeleteLot handles removing a lot.
// @Summary     Delete lot
// @Description Remove a lot from an investment the user owns
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Investment ID"
// @Param       transactionId path int true "Lot ID"
// @Success     200 {object} map[string]string "Lot deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Investment or lot not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /investments/{id}/transactions/{transactionId} [delete]
func (h *InvestmentHandler) DeleteLot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investmentID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}
	lotID, err := parsePathID(c, "transactionId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.investmentService.DeleteLot(userID, investmentID, lotID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lot deleted"})
}
