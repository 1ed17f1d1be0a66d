package handlers

import (
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MenuHandler struct {
	DB *gorm.DB
}

type variantGroupRequest struct {
	Name          string `json:"name" binding:"required"`
	SelectionType string `json:"selection_type" binding:"omitempty,oneof=single multiple"`
	Options       []struct {
		Name       string  `json:"name" binding:"required"`
		PriceDelta float64 `json:"price_delta"`
	} `json:"options"`
}

func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	query := h.DB.Model(&models.MenuItem{}).Preload("Category").Preload("VariantGroups.Options")

	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		rid, err := uuid.Parse(restaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
			return
		}
		query = query.Where("restaurant_id = ?", rid)
	}
	if branchID := c.Query("branch_id"); branchID != "" {
		bid, err := uuid.Parse(branchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
			return
		}
		query = query.Where("branch_id = ?", bid)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		cid, err := uuid.Parse(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		query = query.Where("category_id = ?", cid)
	}
	if c.Query("vegetarian") == "true" {
		query = query.Where("is_vegetarian = ?", true)
	}
	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if c.Query("active") == "true" {
		query = query.Where("status = ?", models.StatusActive)
	}

	var items []models.MenuItem
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Preload("Category").Preload("VariantGroups.Options").Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req struct {
		RestaurantID  uuid.UUID             `json:"restaurant_id" binding:"required"`
		BranchID      *uuid.UUID            `json:"branch_id"`
		CategoryID    uuid.UUID             `json:"category_id" binding:"required"`
		Name          string                `json:"name" binding:"required"`
		Description   string                `json:"description"`
		Price         float64               `json:"price" binding:"required,gt=0"`
		ImageURL      string                `json:"image_url"`
		Tags          string                `json:"tags"`
		IsVegetarian  bool                  `json:"is_vegetarian"`
		IsFeatured    bool                  `json:"is_featured"`
		VariantGroups []variantGroupRequest `json:"variant_groups"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		BranchID:     req.BranchID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		Tags:         req.Tags,
		IsVegetarian: req.IsVegetarian,
		IsFeatured:   req.IsFeatured,
		Status:       models.StatusActive,
	}

	for _, g := range req.VariantGroups {
		selectionType := g.SelectionType
		if selectionType == "" {
			selectionType = "single"
		}
		group := models.MenuVariantGroup{
			Name:          g.Name,
			SelectionType: selectionType,
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, models.MenuVariantOption{
				Name:       o.Name,
				PriceDelta: o.PriceDelta,
			})
		}
		item.VariantGroups = append(item.VariantGroups, group)
	}

	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req struct {
		CategoryID   *uuid.UUID              `json:"category_id"`
		Name         *string                 `json:"name"`
		Description  *string                 `json:"description"`
		Price        *float64                `json:"price"`
		ImageURL     *string                 `json:"image_url"`
		Tags         *string                 `json:"tags"`
		IsVegetarian *bool                   `json:"is_vegetarian"`
		IsFeatured   *bool                   `json:"is_featured"`
		Status       *models.LifecycleStatus `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Price != nil && *req.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}
	if req.Status != nil && !models.IsValidLifecycleStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := h.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if req.IsVegetarian != nil {
		updates["is_vegetarian"] = *req.IsVegetarian
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := h.DB.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	if err := h.DB.Model(&item).Update("status", models.StatusDeleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	if err := h.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}
