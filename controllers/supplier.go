package controllers

import (
	"errors"
	"net/http"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateSupplierInput struct {
	Name          string  `json:"name" binding:"required"`
	AccountNumber string  `json:"accountNumber"`
	ContactName   string  `json:"contactName"`
	Email         string  `json:"email" binding:"omitempty,email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	CreditLimit   float64 `json:"creditLimit" binding:"min=0"`
}

type UpdateSupplierInput struct {
	Name          *string  `json:"name"`
	AccountNumber *string  `json:"accountNumber"`
	ContactName   *string  `json:"contactName"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	CreditLimit   *float64 `json:"creditLimit" binding:"omitempty,min=0"`
	Balance       *float64 `json:"balance"`
	IsActive      *bool    `json:"isActive"`
}

// CreateSupplier creates a new supplier
func CreateSupplier(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	supplier := models.Supplier{
		EmployerID:    employerUUID,
		Name:          input.Name,
		AccountNumber: input.AccountNumber,
		ContactName:   input.ContactName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address:       input.Address,
		CreditLimit:   input.CreditLimit,
		IsActive:      true,
	}

	if err := config.DB.Create(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers retrieves all suppliers, sorted by name
func GetSuppliers(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var suppliers []models.Supplier
	if err := config.DB.Where("employer_id = ?", employerUUID).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve suppliers")
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// GetSupplier retrieves a specific supplier by ID
func GetSupplier(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	supplierUUID, ok := pathUUID(c, "id", "supplier")
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, supplierUUID).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	supplierUUID, ok := pathUUID(c, "id", "supplier")
	if !ok {
		return
	}

	var input UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var supplier models.Supplier
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, supplierUUID).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.AccountNumber != nil {
		supplier.AccountNumber = *input.AccountNumber
	}
	if input.ContactName != nil {
		supplier.ContactName = *input.ContactName
	}
	if input.Email != nil {
		supplier.Email = *input.Email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		supplier.Phone = *input.Phone
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}
	if input.CreditLimit != nil {
		supplier.CreditLimit = *input.CreditLimit
	}
	if input.Balance != nil {
		supplier.Balance = *input.Balance
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier soft deletes a supplier. Orders and price book items keep
// their dangling reference; nothing cascades.
func DeleteSupplier(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	supplierUUID, ok := pathUUID(c, "id", "supplier")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, supplierUUID).
		Delete(&models.Supplier{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
