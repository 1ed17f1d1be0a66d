package handlers

import (
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeHandler struct {
	DB *gorm.DB
}

type recipeIngredientRequest struct {
	InventoryItemID uuid.UUID `json:"inventory_item_id" binding:"required"`
	Quantity        float64   `json:"quantity" binding:"required,gt=0"`
	Unit            string    `json:"unit"`
}

func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	query := h.DB.Model(&models.Recipe{}).
		Preload("MenuItem").
		Preload("Ingredients.InventoryItem")

	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		rid, err := uuid.Parse(restaurantID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid restaurant_id"})
			return
		}
		query = query.Where("restaurant_id = ?", rid)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := h.DB.Preload("MenuItem").Preload("Ingredients.InventoryItem").
		Where("id = ?", id).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req struct {
		RestaurantID uuid.UUID                 `json:"restaurant_id" binding:"required"`
		MenuItemID   uuid.UUID                 `json:"menu_item_id" binding:"required"`
		Ingredients  []recipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var menuItem models.MenuItem
	if err := h.DB.Where("id = ?", req.MenuItemID).First(&menuItem).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var existing models.Recipe
	if err := h.DB.Where("menu_item_id = ?", req.MenuItemID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Menu item already has a recipe"})
		return
	}

	recipe := models.Recipe{
		RestaurantID: req.RestaurantID,
		MenuItemID:   req.MenuItemID,
	}
	for _, ing := range req.Ingredients {
		var item models.InventoryItem
		if err := h.DB.Where("id = ?", ing.InventoryItemID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
			return
		}
		unit := ing.Unit
		if unit == "" {
			unit = item.Unit
		}
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			InventoryItemID: ing.InventoryItemID,
			Quantity:        ing.Quantity,
			Unit:            unit,
		})
	}

	if err := h.DB.Create(&recipe).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	h.DB.Preload("MenuItem").Preload("Ingredients.InventoryItem").First(&recipe, recipe.ID)
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe replaces the ingredient list wholesale. Partial ingredient
// edits go through the same replace path to keep quantities consistent.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := h.DB.Where("id = ?", id).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var req struct {
		Ingredients []recipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var ingredients []models.RecipeIngredient
	for _, ing := range req.Ingredients {
		var item models.InventoryItem
		if err := h.DB.Where("id = ?", ing.InventoryItemID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
			return
		}
		unit := ing.Unit
		if unit == "" {
			unit = item.Unit
		}
		ingredients = append(ingredients, models.RecipeIngredient{
			RecipeID:        recipe.ID,
			InventoryItemID: ing.InventoryItemID,
			Quantity:        ing.Quantity,
			Unit:            unit,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Create(&ingredients).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	h.DB.Preload("MenuItem").Preload("Ingredients.InventoryItem").First(&recipe, recipe.ID)
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := h.DB.Where("id = ?", id).First(&recipe).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}
