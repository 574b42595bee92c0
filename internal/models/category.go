package models

// Category represents a transaction category. Category management endpoints
// live outside this service; the model exists for transaction joins.
type Category struct {
	Base
	UserID uint   `gorm:"not null" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
