package handlers

import (
	"log"
	"net/http"
	"time"

	"dinepos-backend/models"
	"dinepos-backend/realtime"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

type orderItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// createOrderFromItems snapshots menu items into an order, assigns the
// branch-day token and computes totals with the restaurant's tax rate.
func createOrderFromItems(db *gorm.DB, branch models.Branch, tableID *uuid.UUID, orderType models.OrderType, customerName, customerPhone, notes string, items []orderItemRequest) (*models.Order, int, string) {
	if len(items) == 0 {
		return nil, http.StatusBadRequest, "Order must contain at least one item"
	}

	var restaurant models.Restaurant
	if err := db.Where("id = ?", branch.RestaurantID).First(&restaurant).Error; err != nil {
		return nil, http.StatusNotFound, "Restaurant not found"
	}

	var subtotal float64
	var orderItems []models.OrderItem
	for _, reqItem := range items {
		var menuItem models.MenuItem
		if err := db.Where("id = ? AND status = ?", reqItem.MenuItemID, models.StatusActive).First(&menuItem).Error; err != nil {
			return nil, http.StatusNotFound, "Menu item not found: " + reqItem.MenuItemID.String()
		}
		itemSubtotal := menuItem.Price * float64(reqItem.Quantity)
		subtotal += itemSubtotal
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   reqItem.Quantity,
			Subtotal:   itemSubtotal,
		})
	}

	taxAmount := 0.0
	if tax, err := models.TaxForCountry(db, restaurant.Country); err == nil {
		taxAmount = subtotal * tax.Percentage / 100
	}

	dateKey := models.DateKeyFor(time.Now())
	token, err := models.NextToken(db, branch.ID, dateKey)
	if err != nil {
		return nil, http.StatusInternalServerError, "Failed to allocate order token"
	}

	order := models.Order{
		RestaurantID:  branch.RestaurantID,
		BranchID:      branch.ID,
		TableID:       tableID,
		OrderType:     orderType,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		TokenNumber:   token,
		OrderNumber:   models.FormatOrderNumber(branch.Code, dateKey, token),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentUnpaid,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Total:         subtotal + taxAmount,
		Notes:         notes,
		Items:         orderItems,
	}

	if err := db.Create(&order).Error; err != nil {
		return nil, http.StatusInternalServerError, "Failed to create order"
	}
	return &order, 0, ""
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req struct {
		BranchID      uuid.UUID          `json:"branch_id" binding:"required"`
		TableID       *uuid.UUID         `json:"table_id"`
		OrderType     models.OrderType   `json:"order_type" binding:"omitempty,oneof=dine_in takeaway delivery"`
		CustomerName  string             `json:"customer_name"`
		CustomerPhone string             `json:"customer_phone"`
		Notes         string             `json:"notes"`
		Items         []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	orderType := req.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	if orderType != models.OrderTypeDineIn && req.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required for takeaway and delivery orders"})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", req.BranchID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	order, status, errMsg := createOrderFromItems(h.DB, branch, req.TableID, orderType, req.CustomerName, req.CustomerPhone, req.Notes, req.Items)
	if order == nil {
		c.JSON(status, gin.H{"error": errMsg})
		return
	}

	h.Hub.PublishNewOrder("pos", branch.ID.String(), branch.RestaurantID.String(), order)

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	query := h.DB.Model(&models.Order{}).Preload("Items")

	if branchID := c.Query("branch_id"); branchID != "" {
		bid, err := uuid.Parse(branchID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id"})
			return
		}
		query = query.Where("branch_id = ?", bid)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if tableID := c.Query("table_id"); tableID != "" {
		tid, err := uuid.Parse(tableID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table_id"})
			return
		}
		query = query.Where("table_id = ?", tid)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := h.DB.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if !models.IsValidTransition(order.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status transition from " + string(order.Status) + " to " + string(req.Status),
		})
		return
	}

	if err := h.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	role, _ := c.Get("user_role")
	origin := "pos"
	if role == models.RoleKitchen || role == models.RoleChef {
		origin = "kitchen"
	}
	tableID := ""
	if order.TableID != nil {
		tableID = order.TableID.String()
	}
	h.Hub.PublishOrderStatusUpdate(origin, order.BranchID.String(), order.RestaurantID.String(), tableID, string(req.Status), gin.H{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       req.Status,
	})

	log.Printf("Order %s status: %s -> %s", order.OrderNumber, order.Status, req.Status)
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var order models.Order
	if err := h.DB.Where("id = ?", id).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req struct {
		PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required"`
		PaymentMethod string               `json:"payment_method"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	switch req.PaymentStatus {
	case models.PaymentUnpaid, models.PaymentPaid, models.PaymentRefunded:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment status"})
		return
	}

	method := req.PaymentMethod
	if method == "" && req.PaymentStatus == models.PaymentPaid {
		method = "cash"
	}

	updates := map[string]interface{}{"payment_status": req.PaymentStatus}
	if method != "" {
		updates["payment_method"] = method
	}

	if err := h.DB.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
		return
	}

	h.Hub.PublishPaymentStatusUpdate("pos", order.BranchID.String(), order.RestaurantID.String(), gin.H{
		"order_id":       order.ID,
		"order_number":   order.OrderNumber,
		"payment_status": req.PaymentStatus,
		"payment_method": method,
	})

	c.JSON(http.StatusOK, order)
}
