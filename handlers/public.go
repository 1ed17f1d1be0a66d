package handlers

import (
	"net/http"

	"dinepos-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated customer-facing catalog.
// Everything here is read-only and filtered to active records.
type PublicHandler struct {
	DB *gorm.DB
}

func (h *PublicHandler) GetBranches(c *gin.Context) {
	query := h.DB.Model(&models.Branch{}).Where("status = ?", models.StatusActive)

	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		rid, err := uuid.Parse(restaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
			return
		}
		query = query.Where("restaurant_id = ?", rid)
	}

	var branches []models.Branch
	if err := query.Order("name asc").Find(&branches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branches"})
		return
	}
	c.JSON(http.StatusOK, branches)
}

func (h *PublicHandler) GetCategories(c *gin.Context) {
	query := h.DB.Model(&models.Category{}).Where("status = ?", models.StatusActive)

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
		query = query.Where("branch_id = ? OR branch_id IS NULL", bid)
	}

	var categories []models.Category
	if err := query.Order("sort_order asc, name asc").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *PublicHandler) GetMenuItems(c *gin.Context) {
	query := h.DB.Model(&models.MenuItem{}).
		Preload("Category").
		Preload("VariantGroups.Options").
		Where("menu_items.status = ?", models.StatusActive)

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
		query = query.Where("branch_id = ? OR branch_id IS NULL", bid)
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

	var items []models.MenuItem
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *PublicHandler) GetMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var item models.MenuItem
	if err := h.DB.Preload("Category").Preload("VariantGroups.Options").
		Where("id = ? AND status = ?", id, models.StatusActive).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *PublicHandler) GetTaxByCountry(c *gin.Context) {
	tax, err := models.TaxForCountry(h.DB, c.Param("country"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
		return
	}
	c.JSON(http.StatusOK, tax)
}

// GetCustomerFavorites is keyed by the customer's public CUST- identifier,
// not the internal uuid, so the customer app never needs an account token.
func (h *PublicHandler) GetCustomerFavorites(c *gin.Context) {
	var customer models.Customer
	if err := h.DB.Where("customer_id = ?", c.Param("customerId")).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var favorites []models.Favorite
	if err := h.DB.Preload("MenuItem").Where("customer_id = ?", customer.ID).
		Order("added_at desc").Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	c.JSON(http.StatusOK, favorites)
}
