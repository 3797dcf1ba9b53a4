package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User - whoever is logged in and recording sales/expenses
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:120" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:120" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"` // Never return this in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Customer - who we sell to. Sales keep a nullable reference back here.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120" json:"name"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Email     string    `gorm:"size:120" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:200" json:"name"`
	SKU       *string         `gorm:"uniqueIndex;size:80" json:"sku"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Stock     int             `gorm:"default:0" json:"stock"` // may go negative, no guard
	CreatedAt time.Time       `json:"created_at"`
}

// Sale - The Transaction Header. Immutable once created.
type Sale struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    *uint           `json:"customer_id"`
	Customer      *Customer       `gorm:"constraint:OnDelete:SET NULL" json:"customer,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"total"`
	PaymentMethod string          `gorm:"size:40;default:cash" json:"payment_method"`
	UserID        *uint           `json:"user_id"` // who recorded it
	CreatedAt     time.Time       `json:"created_at"`
	Items         []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// SaleItem - one cart line, frozen at sale time.
// ProductID is a plain reference on purpose: deleting a product keeps the
// historical row renderable from its own snapshot columns.
type SaleItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `json:"sale_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `gorm:"default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"` // snapshot of price at time of sale
}

// Expense - an operating cost line in the ledger
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:200" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	UserID      *uint           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ValidationError rejects an operation with a human-readable reason.
// Always recoverable: the caller corrects the input and resubmits.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
