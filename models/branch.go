package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Branch struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_restaurant_branch_code" json:"restaurant_id"`
	Restaurant   Restaurant      `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Name         string          `gorm:"not null" json:"name"`
	Code         string          `gorm:"not null;uniqueIndex:idx_restaurant_branch_code" json:"code"` // short prefix used in order numbers
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	Timezone     string          `gorm:"default:UTC" json:"timezone"`
	Status       LifecycleStatus `gorm:"default:active" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
