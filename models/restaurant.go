package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Restaurant struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	LogoURL     string         `json:"logo_url"`
	Country     string         `gorm:"default:DEFAULT" json:"country"` // used for tax lookup
	Currency    string         `gorm:"default:USD" json:"currency"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Branches    []Branch       `gorm:"foreignKey:RestaurantID" json:"branches,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
