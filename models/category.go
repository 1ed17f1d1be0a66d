package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	BranchID     *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Name         string          `gorm:"not null;index" json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"image_url"`
	ParentID     *uuid.UUID      `gorm:"type:uuid;index" json:"parent_id,omitempty"` // shallow tree, one level by convention
	SortOrder    int             `gorm:"default:0" json:"sort_order"`
	Status       LifecycleStatus `gorm:"default:active" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
