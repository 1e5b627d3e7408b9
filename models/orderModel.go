package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPaid       = "paid"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Order status moves forward only: pending -> paid -> processing -> shipped
// -> delivered, with cancellation possible while pending or paid.
var allowedTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order id doubles as the payment gateway reference, see the payments package.
// Amounts are in kobo.
type Order struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id"`
	UserID             *string     `gorm:"size:36;index" json:"userId"`
	Status             string      `gorm:"size:20;default:pending" json:"status"`
	TotalAmount        int64       `json:"totalAmount"`
	ShippingFirstName  string      `json:"shippingFirstName"`
	ShippingLastName   string      `json:"shippingLastName"`
	ShippingEmail      string      `json:"shippingEmail"`
	ShippingPhone      string      `json:"shippingPhone"`
	ShippingAddress    string      `json:"shippingAddress"`
	ShippingCity       string      `json:"shippingCity"`
	ShippingState      string      `json:"shippingState"`
	ShippingCountry    string      `json:"shippingCountry"`
	ShippingPostalCode *string     `json:"shippingPostalCode"`
	PaymentProvider    string      `gorm:"size:30" json:"paymentProvider"`
	PaymentReference   *string     `gorm:"size:36;uniqueIndex" json:"paymentReference"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
	OrderItems         []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is a point-in-time snapshot. Name and price are copied from the
// product at checkout and never recomputed, so receipts stay accurate after
// catalog edits or deletions.
type OrderItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	OrderID      string    `gorm:"size:36;index" json:"orderId"`
	ProductID    *string   `gorm:"size:36" json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice int64     `json:"productPrice"`
	Size         int       `json:"size"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
