package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin    = "Super_Admin"
	RoleAdmin         = "admin"
	RoleBranchManager = "Branch_Manager"
	RolePOSOperator   = "POS_Operator"
	RoleStaff         = "Staff"
	RoleWaiter        = "Waiter"
	RoleChef          = "Chef"
	RoleKitchen       = "Kitchen"
	RoleDelivery      = "Delivery"
)

// ValidRoles is the set of accepted staff roles.
var ValidRoles = map[string]bool{
	RoleSuperAdmin:    true,
	RoleAdmin:         true,
	RoleBranchManager: true,
	RolePOSOperator:   true,
	RoleStaff:         true,
	RoleWaiter:        true,
	RoleChef:          true,
	RoleKitchen:       true,
	RoleDelivery:      true,
}

type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Password     string          `gorm:"not null" json:"-"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone"`
	Role         string          `gorm:"default:Staff" json:"role"`
	RestaurantID *uuid.UUID      `gorm:"type:uuid;index" json:"restaurant_id,omitempty"`
	BranchID     *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	Status       LifecycleStatus `gorm:"default:active" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
