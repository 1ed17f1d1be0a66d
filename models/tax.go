package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTaxCountry is the fallback row returned when no country-specific
// tax record exists.
const DefaultTaxCountry = "DEFAULT"

type Tax struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Country    string         `gorm:"uniqueIndex;not null" json:"country"` // stored uppercase
	Name       string         `json:"name"`
	Percentage float64        `gorm:"not null" json:"percentage"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Tax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Country = strings.ToUpper(t.Country)
	return nil
}

func (t *Tax) BeforeUpdate(tx *gorm.DB) error {
	t.Country = strings.ToUpper(t.Country)
	return nil
}

// TaxForCountry looks up the tax row for the country (case-insensitive),
// falling back to the DEFAULT row.
func TaxForCountry(db *gorm.DB, country string) (Tax, error) {
	var tax Tax
	err := db.Where("country = ?", strings.ToUpper(country)).First(&tax).Error
	if err == gorm.ErrRecordNotFound {
		err = db.Where("country = ?", DefaultTaxCountry).First(&tax).Error
	}
	return tax, err
}
