package handlers

import (
	"net/http"
	"strings"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaxHandler struct {
	DB *gorm.DB
}

func (h *TaxHandler) GetTaxes(c *gin.Context) {
	var taxes []models.Tax
	if err := h.DB.Order("country asc").Find(&taxes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch taxes"})
		return
	}
	c.JSON(http.StatusOK, taxes)
}

// GetTaxByCountry returns the tax for the country, normalized to uppercase,
// falling back to the DEFAULT row.
func (h *TaxHandler) GetTaxByCountry(c *gin.Context) {
	country := c.Param("country")
	if country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Country is required"})
		return
	}

	tax, err := models.TaxForCountry(h.DB, country)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
		return
	}
	c.JSON(http.StatusOK, tax)
}

func (h *TaxHandler) CreateTax(c *gin.Context) {
	var req struct {
		Country    string  `json:"country" binding:"required"`
		Name       string  `json:"name"`
		Percentage float64 `json:"percentage" binding:"min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	country := strings.ToUpper(req.Country)

	var existing models.Tax
	if err := h.DB.Where("country = ?", country).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Tax for this country already exists"})
		return
	}

	tax := models.Tax{
		Country:    country,
		Name:       req.Name,
		Percentage: req.Percentage,
	}

	if err := h.DB.Create(&tax).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax"})
		return
	}
	c.JSON(http.StatusCreated, tax)
}

func (h *TaxHandler) UpdateTax(c *gin.Context) {
	country := strings.ToUpper(c.Param("country"))

	var tax models.Tax
	if err := h.DB.Where("country = ?", country).First(&tax).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
		return
	}

	var req struct {
		Name       *string  `json:"name"`
		Percentage *float64 `json:"percentage"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Percentage != nil && *req.Percentage < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage cannot be negative"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Percentage != nil {
		updates["percentage"] = *req.Percentage
	}

	if err := h.DB.Model(&tax).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax"})
		return
	}
	c.JSON(http.StatusOK, tax)
}

func (h *TaxHandler) DeleteTax(c *gin.Context) {
	country := strings.ToUpper(c.Param("country"))

	if country == models.DefaultTaxCountry {
		c.JSON(http.StatusForbidden, gin.H{"error": "The default tax row cannot be deleted"})
		return
	}

	result := h.DB.Where("country = ?", country).Delete(&models.Tax{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tax"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tax deleted"})
}
