package handlers

import (
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchHandler struct {
	DB *gorm.DB
}

func (h *BranchHandler) GetBranches(c *gin.Context) {
	query := h.DB.Model(&models.Branch{})

	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		rid, err := uuid.Parse(restaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
			return
		}
		query = query.Where("restaurant_id = ?", rid)
	}

	var branches []models.Branch
	if err := query.Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", id).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req struct {
		RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
		Name         string    `json:"name" binding:"required"`
		Code         string    `json:"code" binding:"required"`
		Address      string    `json:"address"`
		City         string    `json:"city"`
		Phone        string    `json:"phone"`
		Email        string    `json:"email"`
		Timezone     string    `json:"timezone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var restaurant models.Restaurant
	if err := h.DB.Where("id = ?", req.RestaurantID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	// Codes prefix order numbers, so two branches of one restaurant
	// must not share one.
	var existing models.Branch
	if err := h.DB.Where("restaurant_id = ? AND code = ?", req.RestaurantID, req.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A branch with this code already exists for this restaurant"})
		return
	}

	branch := models.Branch{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Code:         req.Code,
		Address:      req.Address,
		City:         req.City,
		Phone:        req.Phone,
		Email:        req.Email,
		Timezone:     req.Timezone,
		Status:       models.StatusActive,
	}

	if err := h.DB.Create(&branch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create branch"})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", id).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	var req struct {
		Name     *string                 `json:"name"`
		Code     *string                 `json:"code"`
		Address  *string                 `json:"address"`
		City     *string                 `json:"city"`
		Phone    *string                 `json:"phone"`
		Email    *string                 `json:"email"`
		Timezone *string                 `json:"timezone"`
		Status   *models.LifecycleStatus `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Status != nil && !models.IsValidLifecycleStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Code != nil {
		var existing models.Branch
		if err := h.DB.Where("restaurant_id = ? AND code = ? AND id <> ?", branch.RestaurantID, *req.Code, branch.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A branch with this code already exists for this restaurant"})
			return
		}
		updates["code"] = *req.Code
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := h.DB.Model(&branch).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update branch"})
		return
	}
	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", id).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	// Lifecycle soft delete plus GORM soft delete, so the row is excluded
	// from both status filters and default queries.
	if err := h.DB.Model(&branch).Update("status", models.StatusDeleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}
	if err := h.DB.Delete(&branch).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete branch"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted"})
}
