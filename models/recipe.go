package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe links a menu item to the inventory items it consumes.
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID          `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	MenuItemID   uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"menu_item_id"`
	MenuItem     MenuItem           `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

type RecipeIngredient struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipeID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"recipe_id"`
	InventoryItemID uuid.UUID     `gorm:"type:uuid;not null;index" json:"inventory_item_id"`
	InventoryItem   InventoryItem `gorm:"foreignKey:InventoryItemID" json:"inventory_item,omitempty"`
	Quantity        float64       `gorm:"not null" json:"quantity"`
	Unit            string        `json:"unit"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
