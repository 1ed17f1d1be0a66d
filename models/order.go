package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	BranchID      uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_branch_order_number" json:"branch_id"`
	TableID       *uuid.UUID     `gorm:"type:uuid;index" json:"table_id,omitempty"`
	OrderType     OrderType      `gorm:"default:dine_in" json:"order_type"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	TokenNumber   int            `gorm:"not null" json:"token_number"`
	OrderNumber   string         `gorm:"not null;uniqueIndex:idx_branch_order_number" json:"order_number"`
	Status        OrderStatus    `gorm:"default:pending" json:"status"`
	PaymentStatus PaymentStatus  `gorm:"default:unpaid" json:"payment_status"`
	PaymentMethod string         `json:"payment_method"`
	Subtotal      float64        `gorm:"not null" json:"subtotal"`
	TaxAmount     float64        `gorm:"default:0" json:"tax_amount"`
	Total         float64        `gorm:"not null" json:"total"`
	Notes         string         `json:"notes"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Order      Order     `gorm:"foreignKey:OrderID" json:"-"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name       string    `gorm:"not null" json:"name"` // snapshot at order time
	Price      float64   `gorm:"not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Subtotal   float64   `gorm:"not null" json:"subtotal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// FormatOrderNumber builds the customer-visible order number from the
// branch code, the branch-day date key and the daily token.
func FormatOrderNumber(branchCode, dateKey string, token int) string {
	return fmt.Sprintf("%s-%s-%03d", branchCode, dateKey, token)
}

// AllowedTransitions defines the valid order status state machine.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusServed, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusServed:    {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// IsValidTransition checks if a status transition is allowed.
func IsValidTransition(from, to OrderStatus) bool {
	allowed, exists := AllowedTransitions[from]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}
