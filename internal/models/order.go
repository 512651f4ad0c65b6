package models

import "time"

// Order statuses. An order starts pending at checkout, becomes paid once
// the payment is confirmed, and can otherwise be cancelled.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// BillingInfo holds the buyer-entered checkout fields. Every field is
// required as a non-empty string after trimming.
type BillingInfo struct {
	FirstName string `json:"firstName" gorm:"type:varchar(100)" validate:"required"`
	LastName  string `json:"lastName" gorm:"type:varchar(100)" validate:"required"`
	Address   string `json:"address" gorm:"type:varchar(255)" validate:"required"`
	City      string `json:"city" gorm:"type:varchar(100)" validate:"required"`
	ZipCode   string `json:"zipCode" gorm:"type:varchar(20)" validate:"required"`
	Phone     string `json:"phone" gorm:"type:varchar(30)" validate:"required"`
	Email     string `json:"email" gorm:"type:varchar(255)" validate:"required"`
}

// OrderLine is a cart line frozen into an order. ProductID keeps the
// reference back to the catalog record.
type OrderLine struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Order is a finalized purchase. It is built once at checkout and its
// payload is never mutated afterwards; only the status moves.
type Order struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	SessionID    string         `json:"-" gorm:"index;type:varchar(36)"`
	Billing      BillingInfo    `json:"billing" gorm:"embedded;embeddedPrefix:billing_"`
	Lines        []OrderLine    `json:"lines" gorm:"foreignKey:OrderID;references:ID"`
	Pricing      PricingSummary `json:"pricing" gorm:"embedded"`
	ClientSecret string         `json:"-" gorm:"uniqueIndex;type:varchar(72)"`
	Status       string         `json:"status" gorm:"type:varchar(20)"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
