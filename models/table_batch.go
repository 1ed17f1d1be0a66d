package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableCart is the server-owned working cart for a table. The POS client is
// a thin view over it; there is exactly one cart row per table.
type TableCart struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TableID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"table_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	OrderType     OrderType       `gorm:"default:dine_in" json:"order_type"`
	Items         []TableCartItem `gorm:"foreignKey:CartID" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type TableCartItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID     uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name       string    `gorm:"not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BatchState string

const (
	BatchSent    BatchState = "sent"
	BatchSettled BatchState = "settled"
)

// TableBatch is one KOT ticket in a table's server-owned batch ledger. A
// batch comes into existence when the KOT is issued, so its first state is
// already sent; settling the table moves every open batch to settled.
type TableBatch struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TableID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"table_id"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	TokenNumber int              `gorm:"not null" json:"token_number"`
	TotalAmount float64          `gorm:"not null" json:"total_amount"`
	State       BatchState       `gorm:"default:sent" json:"state"`
	Items       []TableBatchItem `gorm:"foreignKey:BatchID" json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type TableBatchItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BatchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"batch_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null" json:"menu_item_id"`
	Name       string    `gorm:"not null" json:"name"`
	Price      float64   `gorm:"not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Subtotal   float64   `gorm:"not null" json:"subtotal"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecomputeTotal recalculates the batch total as the sum of price*quantity
// over its items.
func (b *TableBatch) RecomputeTotal() {
	var total float64
	for i := range b.Items {
		b.Items[i].Subtotal = b.Items[i].Price * float64(b.Items[i].Quantity)
		total += b.Items[i].Subtotal
	}
	b.TotalAmount = total
}

func (c *TableCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (i *TableCartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (b *TableBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (i *TableBatchItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
