package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuItem struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	BranchID      *uuid.UUID         `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	CategoryID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"category_id"`
	Category      Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name          string             `gorm:"not null;index" json:"name"`
	Description   string             `json:"description"`
	Price         float64            `gorm:"not null" json:"price"`
	ImageURL      string             `json:"image_url"`
	Tags          string             `json:"tags"` // comma separated
	IsVegetarian  bool               `gorm:"default:false" json:"is_vegetarian"`
	IsFeatured    bool               `gorm:"default:false" json:"is_featured"`
	Status        LifecycleStatus    `gorm:"default:active" json:"status"`
	VariantGroups []MenuVariantGroup `gorm:"foreignKey:MenuItemID" json:"variant_groups,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MenuVariantGroup is a size/variant group defined per item (e.g. "Size",
// single selection, with priced options).
type MenuVariantGroup struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MenuItemID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name          string              `gorm:"not null" json:"name"`
	SelectionType string              `gorm:"default:single" json:"selection_type"` // single, multiple
	Options       []MenuVariantOption `gorm:"foreignKey:VariantGroupID" json:"options,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

type MenuVariantOption struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	VariantGroupID uuid.UUID `gorm:"type:uuid;not null;index" json:"variant_group_id"`
	Name           string    `gorm:"not null" json:"name"`
	PriceDelta     float64   `gorm:"default:0" json:"price_delta"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (g *MenuVariantGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (o *MenuVariantOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
