package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is identified by phone or email, or by a generated CustomerID
// when neither was captured at creation time.
type Customer struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID      `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	BranchID     *uuid.UUID     `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Name         string         `json:"name"`
	Phone        string         `gorm:"index" json:"phone"`
	Email        string         `gorm:"index" json:"email"`
	CustomerID   string         `gorm:"uniqueIndex" json:"customer_id"`
	Favorites    []Favorite     `gorm:"foreignKey:CustomerID" json:"favorites,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Favorite struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	AddedAt    time.Time `json:"added_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	// Every customer carries at least one identifier.
	if c.CustomerID == "" {
		c.CustomerID = "CUST-" + c.ID.String()[:8]
	}
	return nil
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.AddedAt.IsZero() {
		f.AddedAt = time.Now()
	}
	return nil
}
