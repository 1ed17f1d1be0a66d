package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	BranchID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"branch_id"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Name         string          `gorm:"not null;index" json:"name"`
	Unit         string          `gorm:"not null" json:"unit"` // kg, l, pcs
	Quantity     float64         `gorm:"default:0" json:"quantity"`
	ReorderLevel float64         `gorm:"default:0" json:"reorder_level"`
	CostPerUnit  float64         `gorm:"default:0" json:"cost_per_unit"`
	Status       LifecycleStatus `gorm:"default:active" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// NeedsReorder reports whether the item is at or below its reorder level.
func (i *InventoryItem) NeedsReorder() bool {
	return i.Quantity <= i.ReorderLevel
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
