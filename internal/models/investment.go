package models

import "time"

// Investment represents an instrument a user tracks, identified by its
// exchange ticker. Tickers are stored as entered; the pricing layer
// canonicalizes them to uppercase.
type Investment struct {
	Base
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Ticker string `gorm:"not null" json:"ticker"`

	Lots []InvestmentLot `gorm:"foreignKey:InvestmentID" json:"lots,omitempty"`
}

// InvestmentLot is a single purchase within an investment, carrying its own
// cost basis. Date is a calendar date stored at midnight UTC.
// AmountInvested and PricePerUnit must be positive; Tax is non-negative.
// units = AmountInvested / PricePerUnit, so a zero PricePerUnit must never
// reach the database.
type InvestmentLot struct {
	Base
	InvestmentID   uint      `gorm:"not null;index" json:"investment_id"`
	Date           time.Time `gorm:"not null" json:"date"`
	AmountInvested float64   `gorm:"not null" json:"amount_invested"`
	PricePerUnit   float64   `gorm:"not null" json:"price_per_unit"`
	Tax            float64   `gorm:"not null;default:0" json:"tax"`

	Investment Investment `gorm:"foreignKey:InvestmentID" json:"-"`
}
