package handlers

import (
	"fmt"
	"net/http"

	"dinepos-backend/models"
	"dinepos-backend/realtime"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POSHandler owns the server-side table cart and batch ledger. Each KOT
// issued for a table becomes one batch; settling the table marks every
// batch's order paid and frees the table.
type POSHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

type cartItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

func (h *POSHandler) loadTable(c *gin.Context) (*models.Table, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return nil, false
	}
	var table models.Table
	if err := h.DB.Where("id = ?", id).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return nil, false
	}
	return &table, true
}

func (h *POSHandler) GetTableCart(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	var cart models.TableCart
	if err := h.DB.Preload("Items").Where("table_id = ?", table.ID).First(&cart).Error; err != nil {
		// No cart yet is not an error; the POS renders an empty one.
		c.JSON(http.StatusOK, models.TableCart{TableID: table.ID, OrderType: models.OrderTypeDineIn, Items: []models.TableCartItem{}})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateTableCart replaces the table's working cart with the submitted
// items and customer info.
func (h *POSHandler) UpdateTableCart(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	var req struct {
		Items         []cartItemRequest `json:"items"`
		CustomerName  string            `json:"customer_name"`
		CustomerPhone string            `json:"customer_phone"`
		OrderType     models.OrderType  `json:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}

	var cartItems []models.TableCartItem
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := h.DB.Where("id = ? AND status = ?", reqItem.MenuItemID, models.StatusActive).First(&menuItem).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found: " + reqItem.MenuItemID.String()})
			return
		}
		cartItems = append(cartItems, models.TableCartItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   reqItem.Quantity,
		})
	}

	var cart models.TableCart
	err := h.DB.Where("table_id = ?", table.ID).First(&cart).Error
	if err != nil {
		cart = models.TableCart{TableID: table.ID}
		if err := h.DB.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}
	}

	if err := h.DB.Where("cart_id = ?", cart.ID).Delete(&models.TableCartItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	for i := range cartItems {
		cartItems[i].CartID = cart.ID
		if err := h.DB.Create(&cartItems[i]).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
	}

	updates := map[string]interface{}{
		"customer_name":  req.CustomerName,
		"customer_phone": req.CustomerPhone,
		"order_type":     orderType,
	}
	if err := h.DB.Model(&cart).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	h.DB.Preload("Items").Where("id = ?", cart.ID).First(&cart)
	c.JSON(http.StatusOK, cart)
}

// IssueKOT creates an order from the table's cart, occupies the table for
// dine-in, appends a batch to the ledger and clears the cart items. Customer
// info on the cart is preserved for the next batch. All writes run in one
// transaction so a mid-flight failure leaves the table and cart untouched.
func (h *POSHandler) IssueKOT(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	var cart models.TableCart
	if err := h.DB.Preload("Items").Where("table_id = ?", table.ID).First(&cart).Error; err != nil || len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	if cart.OrderType != models.OrderTypeDineIn && cart.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required for takeaway and delivery orders"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", table.BranchID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	items := make([]orderItemRequest, len(cart.Items))
	for i, cartItem := range cart.Items {
		items[i] = orderItemRequest{MenuItemID: cartItem.MenuItemID, Quantity: cartItem.Quantity}
	}

	tableID := table.ID
	var order *models.Order
	var batch models.TableBatch
	errStatus := http.StatusInternalServerError
	errMsg := "Failed to issue KOT"

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var status int
		var msg string
		order, status, msg = createOrderFromItems(tx, branch, &tableID, cart.OrderType, cart.CustomerName, cart.CustomerPhone, "", items)
		if order == nil {
			errStatus, errMsg = status, msg
			return fmt.Errorf("create order: %s", msg)
		}

		if cart.OrderType == models.OrderTypeDineIn {
			if err := tx.Model(table).Updates(map[string]interface{}{
				"status":           models.TableOccupied,
				"current_order_id": order.ID,
			}).Error; err != nil {
				errMsg = "Failed to occupy table"
				return err
			}
		}

		batch = models.TableBatch{
			TableID:     table.ID,
			OrderID:     order.ID,
			TokenNumber: order.TokenNumber,
			TotalAmount: order.Subtotal,
			State:       models.BatchSent,
		}
		for _, orderItem := range order.Items {
			batch.Items = append(batch.Items, models.TableBatchItem{
				MenuItemID: orderItem.MenuItemID,
				Name:       orderItem.Name,
				Price:      orderItem.Price,
				Quantity:   orderItem.Quantity,
				Subtotal:   orderItem.Subtotal,
			})
		}
		if err := tx.Create(&batch).Error; err != nil {
			errMsg = "Failed to record batch"
			return err
		}

		// Clear cart items; customer info stays for follow-up batches.
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.TableCartItem{}).Error; err != nil {
			errMsg = "Failed to clear cart"
			return err
		}
		return nil
	})
	if txErr != nil {
		c.JSON(errStatus, gin.H{"error": errMsg})
		return
	}

	h.Hub.PublishNewOrder("pos", branch.ID.String(), branch.RestaurantID.String(), order)
	if cart.OrderType == models.OrderTypeDineIn {
		h.Hub.PublishTableStatusUpdate("pos", branch.ID.String(), branch.RestaurantID.String(), gin.H{
			"table_id": table.ID,
			"status":   models.TableOccupied,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
		"batch": batch,
	})
}

// GetBatches lists the table's batch ledger, most recent first. Settled
// batches are kept as history and excluded unless requested.
func (h *POSHandler) GetBatches(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	query := h.DB.Preload("Items").Where("table_id = ?", table.ID)
	if c.Query("include_settled") != "true" {
		query = query.Where("state = ?", models.BatchSent)
	}

	var batches []models.TableBatch
	if err := query.Order("created_at desc").Find(&batches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batches"})
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (h *POSHandler) loadBatch(c *gin.Context, tableID uuid.UUID) (*models.TableBatch, bool) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch ID"})
		return nil, false
	}
	var batch models.TableBatch
	if err := h.DB.Preload("Items").Where("id = ? AND table_id = ?", batchID, tableID).First(&batch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		return nil, false
	}
	if batch.State == models.BatchSettled {
		c.JSON(http.StatusConflict, gin.H{"error": "Batch is already settled"})
		return nil, false
	}
	return &batch, true
}

// UpdateBatchItem sets an item's quantity and recomputes the batch total.
func (h *POSHandler) UpdateBatchItem(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}
	batch, ok := h.loadBatch(c, table.ID)
	if !ok {
		return
	}

	menuItemID, err := uuid.Parse(c.Param("menuItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	found := false
	for i := range batch.Items {
		if batch.Items[i].MenuItemID == menuItemID {
			batch.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in batch"})
		return
	}

	batch.RecomputeTotal()

	for i := range batch.Items {
		if err := h.DB.Model(&models.TableBatchItem{}).Where("id = ?", batch.Items[i].ID).
			Updates(map[string]interface{}{"quantity": batch.Items[i].Quantity, "subtotal": batch.Items[i].Subtotal}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch item"})
			return
		}
	}
	if err := h.DB.Model(batch).Update("total_amount", batch.TotalAmount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// DeleteBatchItem removes an item from a batch; removing the last item
// removes the batch itself.
func (h *POSHandler) DeleteBatchItem(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}
	batch, ok := h.loadBatch(c, table.ID)
	if !ok {
		return
	}

	menuItemID, err := uuid.Parse(c.Param("menuItemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item ID"})
		return
	}

	var remaining []models.TableBatchItem
	var removed *models.TableBatchItem
	for i := range batch.Items {
		if batch.Items[i].MenuItemID == menuItemID {
			removed = &batch.Items[i]
		} else {
			remaining = append(remaining, batch.Items[i])
		}
	}
	if removed == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in batch"})
		return
	}

	if err := h.DB.Where("id = ?", removed.ID).Delete(&models.TableBatchItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove batch item"})
		return
	}

	if len(remaining) == 0 {
		if err := h.DB.Delete(batch).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove batch"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Batch removed"})
		return
	}

	batch.Items = remaining
	batch.RecomputeTotal()
	if err := h.DB.Model(batch).Update("total_amount", batch.TotalAmount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
		return
	}
	c.JSON(http.StatusOK, batch)
}

// SettleTable marks every open batch's order paid, closes the ledger and
// frees the table. Partial failures are reported as a count; payment
// updates already applied to other batches are not rolled back, and neither
// the ledger nor the table status changes until every batch settles.
func (h *POSHandler) SettleTable(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	// Body is optional; default method is cash.
	_ = c.ShouldBindJSON(&req)
	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	var batches []models.TableBatch
	if err := h.DB.Where("table_id = ? AND state = ?", table.ID, models.BatchSent).Find(&batches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch batches"})
		return
	}
	if len(batches) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No batches to settle"})
		return
	}

	failed := 0
	for _, batch := range batches {
		var order models.Order
		if err := h.DB.Where("id = ?", batch.OrderID).First(&order).Error; err != nil {
			failed++
			continue
		}
		if err := h.DB.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"payment_method": method,
		}).Error; err != nil {
			failed++
		}
	}

	if failed > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to settle %d/%d batches", failed, len(batches)),
		})
		return
	}

	if err := h.DB.Model(&models.TableBatch{}).Where("table_id = ? AND state = ?", table.ID, models.BatchSent).
		Update("state", models.BatchSettled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close batches"})
		return
	}

	var cart models.TableCart
	if err := h.DB.Where("table_id = ?", table.ID).First(&cart).Error; err == nil {
		h.DB.Where("cart_id = ?", cart.ID).Delete(&models.TableCartItem{})
		h.DB.Delete(&cart)
	}

	if err := h.DB.Model(table).Updates(map[string]interface{}{
		"status":           models.TableAvailable,
		"current_order_id": nil,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to free table"})
		return
	}

	var branch models.Branch
	h.DB.Where("id = ?", table.BranchID).First(&branch)
	h.Hub.PublishPaymentStatusUpdate("pos", branch.ID.String(), branch.RestaurantID.String(), gin.H{
		"table_id":       table.ID,
		"payment_method": method,
		"batches":        len(batches),
	})
	h.Hub.PublishTableStatusUpdate("pos", branch.ID.String(), branch.RestaurantID.String(), gin.H{
		"table_id": table.ID,
		"status":   models.TableAvailable,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Settled %d batches", len(batches)),
		"settled": len(batches),
	})
}
