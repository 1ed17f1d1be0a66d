package handlers

import (
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffHandler struct {
	DB *gorm.DB
}

// GetBranchStaff lists the staff of one branch, excluding deleted accounts.
func (h *StaffHandler) GetBranchStaff(c *gin.Context) {
	branchID, err := uuid.Parse(c.Param("branchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var staff []models.User
	if err := h.DB.Where("branch_id = ? AND status <> ?", branchID, models.StatusDeleted).Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req struct {
		Email        string     `json:"email" binding:"required,email"`
		Password     string     `json:"password" binding:"required,min=6"`
		Name         string     `json:"name" binding:"required"`
		Phone        string     `json:"phone"`
		Role         string     `json:"role" binding:"required"`
		RestaurantID *uuid.UUID `json:"restaurant_id"`
		BranchID     *uuid.UUID `json:"branch_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.ValidRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	// Only Super_Admin may mint admin-level accounts.
	callerRole, _ := c.Get("user_role")
	if (req.Role == models.RoleSuperAdmin || req.Role == models.RoleAdmin) && callerRole != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can create admin accounts"})
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        req.Email,
		Password:     string(hashedPassword),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
		BranchID:     req.BranchID,
		Status:       models.StatusActive,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	var req struct {
		Name     *string                 `json:"name"`
		Phone    *string                 `json:"phone"`
		Role     *string                 `json:"role"`
		BranchID *uuid.UUID              `json:"branch_id"`
		Status   *models.LifecycleStatus `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	callerRole, _ := c.Get("user_role")
	if req.Role != nil {
		if !models.ValidRoles[*req.Role] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		if callerRole != models.RoleSuperAdmin && callerRole != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can change roles"})
			return
		}
	}
	if req.Status != nil && !models.IsValidLifecycleStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.BranchID != nil {
		updates["branch_id"] = *req.BranchID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := h.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteStaff soft-deletes the account: the row stays, the status flips to
// deleted and login is rejected.
func (h *StaffHandler) DeleteStaff(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
		return
	}

	if user.Role == models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete a super admin"})
		return
	}

	if err := h.DB.Model(&user).Update("status", models.StatusDeleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff deleted"})
}
