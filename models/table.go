package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableMaintenance TableStatus = "maintenance"
)

// AllowedTableTransitions defines the table status state machine.
// Any state may enter maintenance (manual operator action); leaving
// maintenance returns the table to available.
var AllowedTableTransitions = map[TableStatus][]TableStatus{
	TableAvailable:   {TableOccupied, TableMaintenance},
	TableOccupied:    {TableAvailable, TableMaintenance},
	TableMaintenance: {TableAvailable},
}

// IsValidTableTransition checks if a table status transition is allowed.
func IsValidTableTransition(from, to TableStatus) bool {
	for _, s := range AllowedTableTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Table struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BranchID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch         Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Name           string         `gorm:"not null" json:"name"`
	Capacity       int            `gorm:"default:4" json:"capacity"`
	Status         TableStatus    `gorm:"default:available" json:"status"`
	CurrentOrderID *uuid.UUID     `gorm:"type:uuid" json:"current_order_id,omitempty"`
	Reservations   []Reservation  `gorm:"foreignKey:TableID" json:"reservations,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

type ReservationStatus string

const (
	ReservationReserved  ReservationStatus = "reserved"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation lifecycle is independent of the table status transitions.
type Reservation struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TableID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"table_id"`
	CustomerName string            `gorm:"not null" json:"customer_name"`
	Phone        string            `json:"phone"`
	PartySize    int               `gorm:"default:2" json:"party_size"`
	ReservedAt   time.Time         `gorm:"not null" json:"reserved_at"`
	Notes        string            `json:"notes"`
	Status       ReservationStatus `gorm:"default:reserved" json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
