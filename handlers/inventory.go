package handlers

import (
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB *gorm.DB
}

// inventoryItemView decorates an item with its reorder flag for list
// responses.
type inventoryItemView struct {
	models.InventoryItem
	NeedsReorder bool `json:"needs_reorder"`
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	query := h.DB.Model(&models.InventoryItem{}).Preload("Supplier").Where("status <> ?", models.StatusDeleted)

	if branchID := c.Query("branch_id"); branchID != "" {
		bid, err := uuid.Parse(branchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
			return
		}
		query = query.Where("branch_id = ?", bid)
	}
	if c.Query("low_stock") == "true" {
		query = query.Where("quantity <= reorder_level")
	}

	var items []models.InventoryItem
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	views := make([]inventoryItemView, len(items))
	for i, item := range items {
		views[i] = inventoryItemView{InventoryItem: item, NeedsReorder: item.NeedsReorder()}
	}
	c.JSON(http.StatusOK, views)
}

func (h *InventoryHandler) GetInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	var item models.InventoryItem
	if err := h.DB.Preload("Supplier").Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	c.JSON(http.StatusOK, inventoryItemView{InventoryItem: item, NeedsReorder: item.NeedsReorder()})
}

func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req struct {
		RestaurantID uuid.UUID  `json:"restaurant_id" binding:"required"`
		BranchID     uuid.UUID  `json:"branch_id" binding:"required"`
		SupplierID   *uuid.UUID `json:"supplier_id"`
		Name         string     `json:"name" binding:"required"`
		Unit         string     `json:"unit" binding:"required"`
		Quantity     float64    `json:"quantity" binding:"min=0"`
		ReorderLevel float64    `json:"reorder_level" binding:"min=0"`
		CostPerUnit  float64    `json:"cost_per_unit" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.SupplierID != nil {
		var supplier models.Supplier
		if err := h.DB.Where("id = ?", req.SupplierID).First(&supplier).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
	}

	item := models.InventoryItem{
		RestaurantID: req.RestaurantID,
		BranchID:     req.BranchID,
		SupplierID:   req.SupplierID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		CostPerUnit:  req.CostPerUnit,
		Status:       models.StatusActive,
	}

	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	var item models.InventoryItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	var req struct {
		SupplierID   *uuid.UUID              `json:"supplier_id"`
		Name         *string                 `json:"name"`
		Unit         *string                 `json:"unit"`
		Quantity     *float64                `json:"quantity"`
		ReorderLevel *float64                `json:"reorder_level"`
		CostPerUnit  *float64                `json:"cost_per_unit"`
		Status       *models.LifecycleStatus `json:"status"`
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
	if req.SupplierID != nil {
		updates["supplier_id"] = *req.SupplierID
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.ReorderLevel != nil {
		updates["reorder_level"] = *req.ReorderLevel
	}
	if req.CostPerUnit != nil {
		updates["cost_per_unit"] = *req.CostPerUnit
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := h.DB.Model(&item).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory item ID"})
		return
	}

	var item models.InventoryItem
	if err := h.DB.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	if err := h.DB.Model(&item).Update("status", models.StatusDeleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
}
