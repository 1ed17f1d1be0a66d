package handlers

import (
	"net/http"
	"time"

	"dinepos-backend/models"
	"dinepos-backend/realtime"
	"dinepos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableHandler struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func (h *TableHandler) GetTables(c *gin.Context) {
	query := h.DB.Model(&models.Table{})

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

	var tables []models.Table
	if err := query.Order("name asc").Find(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tables"})
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *TableHandler) GetTable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := h.DB.Preload("Reservations").Where("id = ?", id).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) CreateTable(c *gin.Context) {
	var req struct {
		BranchID uuid.UUID `json:"branch_id" binding:"required"`
		Name     string    `json:"name" binding:"required"`
		Capacity int       `json:"capacity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var branch models.Branch
	if err := h.DB.Where("id = ?", req.BranchID).First(&branch).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 4
	}

	table := models.Table{
		BranchID: req.BranchID,
		Name:     req.Name,
		Capacity: capacity,
		Status:   models.TableAvailable,
	}

	if err := h.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
		return
	}
	c.JSON(http.StatusCreated, table)
}

func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := h.DB.Where("id = ?", id).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Capacity *int    `json:"capacity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}

	if err := h.DB.Model(&table).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table"})
		return
	}
	c.JSON(http.StatusOK, table)
}

func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := h.DB.Where("id = ?", id).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	if table.Status == models.TableOccupied {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete an occupied table"})
		return
	}

	if err := h.DB.Delete(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}

// UpdateTableStatus handles manual status changes from the POS. Moving an
// occupied table back to available goes through the settle flow, not here,
// while the table still has unsettled batches.
func (h *TableHandler) UpdateTableStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := h.DB.Where("id = ?", id).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var req struct {
		Status models.TableStatus `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Status == table.Status {
		c.JSON(http.StatusOK, table)
		return
	}

	if !models.IsValidTableTransition(table.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table status transition"})
		return
	}

	if table.Status == models.TableOccupied && req.Status == models.TableAvailable {
		var openBatches int64
		h.DB.Model(&models.TableBatch{}).Where("table_id = ? AND state = ?", id, models.BatchSent).Count(&openBatches)
		if openBatches > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Table has unsettled batches; settle the table instead"})
			return
		}
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.TableAvailable {
		updates["current_order_id"] = nil
	}

	if err := h.DB.Model(&table).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update table status"})
		return
	}

	var branch models.Branch
	h.DB.Where("id = ?", table.BranchID).First(&branch)
	h.Hub.PublishTableStatusUpdate("pos", table.BranchID.String(), branch.RestaurantID.String(), gin.H{
		"table_id": table.ID,
		"status":   req.Status,
	})

	c.JSON(http.StatusOK, table)
}

// ==================== Reservations ====================

func (h *TableHandler) CreateReservation(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}

	var table models.Table
	if err := h.DB.Where("id = ?", tableID).First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var req struct {
		CustomerName string    `json:"customer_name" binding:"required"`
		Phone        string    `json:"phone"`
		PartySize    int       `json:"party_size"`
		ReservedAt   time.Time `json:"reserved_at" binding:"required"`
		Notes        string    `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	partySize := req.PartySize
	if partySize == 0 {
		partySize = 2
	}

	reservation := models.Reservation{
		TableID:      tableID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		PartySize:    partySize,
		ReservedAt:   req.ReservedAt,
		Notes:        req.Notes,
		Status:       models.ReservationReserved,
	}

	if err := h.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (h *TableHandler) UpdateReservation(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	var reservation models.Reservation
	if err := h.DB.Where("id = ? AND table_id = ?", reservationID, tableID).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	var req struct {
		CustomerName *string                   `json:"customer_name"`
		Phone        *string                   `json:"phone"`
		PartySize    *int                      `json:"party_size"`
		ReservedAt   *time.Time                `json:"reserved_at"`
		Notes        *string                   `json:"notes"`
		Status       *models.ReservationStatus `json:"status"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.ReservationReserved, models.ReservationSeated, models.ReservationCancelled:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation status"})
			return
		}
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.PartySize != nil {
		updates["party_size"] = *req.PartySize
	}
	if req.ReservedAt != nil {
		updates["reserved_at"] = *req.ReservedAt
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := h.DB.Model(&reservation).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (h *TableHandler) CancelReservation(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
		return
	}
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	var reservation models.Reservation
	if err := h.DB.Where("id = ? AND table_id = ?", reservationID, tableID).First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	if err := h.DB.Model(&reservation).Update("status", models.ReservationCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}
