// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/services"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateOrderInput struct {
	SupplierID   *uuid.UUID       `json:"supplierId"`
	Items        models.JSONArray `json:"items"`
	Total        float64          `json:"total" binding:"min=0"`
	OrderDate    *string          `json:"orderDate"`
	ExpectedDate *string          `json:"expectedDate"`
	Notes        string           `json:"notes"`
}

type UpdateOrderInput struct {
	SupplierID   *uuid.UUID        `json:"supplierId"`
	Items        *models.JSONArray `json:"items"`
	Total        *float64          `json:"total" binding:"omitempty,min=0"`
	OrderDate    *string           `json:"orderDate"`
	ExpectedDate *string           `json:"expectedDate"`
	Notes        *string           `json:"notes"`
}

type UpdateOrderStatusInput struct {
	Status       string  `json:"status" binding:"required"`
	DeliveryDate *string `json:"deliveryDate"`
}

// CreateMaterialOrder creates a new order with the next sequential number
func CreateMaterialOrder(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.SupplierID != nil {
		var supplier models.Supplier
		if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, *input.SupplierID).
			First(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Supplier not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	number, err := services.Sequences.NextOrderNumber(employerUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate order number")
		return
	}

	orderDate := input.OrderDate
	if orderDate == nil {
		today := utils.DateString(time.Now())
		orderDate = &today
	}

	order := models.MaterialOrder{
		EmployerID:   employerUUID,
		OrderNumber:  number,
		SupplierID:   input.SupplierID,
		Items:        input.Items,
		Total:        input.Total,
		Status:       "Ordered",
		OrderDate:    orderDate,
		ExpectedDate: input.ExpectedDate,
		Notes:        input.Notes,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMaterialOrders retrieves all orders with their supplier, newest first
func GetMaterialOrders(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var orders []models.MaterialOrder
	if err := config.DB.Preload("Supplier").
		Where("employer_id = ?", employerUUID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetMaterialOrder retrieves a specific order by ID
func GetMaterialOrder(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	orderUUID, ok := pathUUID(c, "id", "order")
	if !ok {
		return
	}

	var order models.MaterialOrder
	if err := config.DB.Preload("Supplier").
		Where("employer_id = ? AND id = ?", employerUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateMaterialOrder updates an existing order
func UpdateMaterialOrder(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	orderUUID, ok := pathUUID(c, "id", "order")
	if !ok {
		return
	}

	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.MaterialOrder
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.SupplierID != nil {
		var supplier models.Supplier
		if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, *input.SupplierID).
			First(&supplier).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Supplier not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		order.SupplierID = input.SupplierID
	}
	if input.Items != nil {
		order.Items = *input.Items
	}
	if input.Total != nil {
		order.Total = *input.Total
	}
	if input.OrderDate != nil {
		order.OrderDate = input.OrderDate
	}
	if input.ExpectedDate != nil {
		order.ExpectedDate = input.ExpectedDate
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}

	if err := config.DB.Save(&order).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves the order along its informal progression. Reaching
// Delivered stamps the delivery date (today unless one is supplied).
func UpdateOrderStatus(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	orderUUID, ok := pathUUID(c, "id", "order")
	if !ok {
		return
	}

	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var order models.MaterialOrder
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, orderUUID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == "Delivered" {
		deliveryDate := input.DeliveryDate
		if deliveryDate == nil {
			today := utils.DateString(time.Now())
			deliveryDate = &today
		}
		updates["delivery_date"] = *deliveryDate
		order.DeliveryDate = deliveryDate
	}

	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	order.Status = input.Status

	c.JSON(http.StatusOK, order)
}

// DeleteMaterialOrder soft deletes an order
func DeleteMaterialOrder(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	orderUUID, ok := pathUUID(c, "id", "order")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, orderUUID).
		Delete(&models.MaterialOrder{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
