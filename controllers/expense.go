// controllers/expense.go
package controllers

import (
	"errors"
	"fmt"
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

type CreateExpenseClaimInput struct {
	EmployeeID  uuid.UUID `json:"employeeId" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	ReceiptURL  string    `json:"receiptUrl"`
}

type UpdateExpenseClaimInput struct {
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount" binding:"omitempty,gt=0"`
	ReceiptURL  *string  `json:"receiptUrl"`
}

type RejectExpenseInput struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateExpenseClaim creates a new claim in Draft for one of the employer's
// employees
func CreateExpenseClaim(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreateExpenseClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate employee exists in the same business
	var employee models.Employee
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, input.EmployeeID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	claim := models.ExpenseClaim{
		EmployerID:  employerUUID,
		EmployeeID:  input.EmployeeID,
		Description: input.Description,
		Category:    input.Category,
		Amount:      input.Amount,
		ReceiptURL:  input.ReceiptURL,
		Status:      "Draft",
	}

	if err := config.DB.Create(&claim).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense claim")
		return
	}
	claim.Employee = &employee

	c.JSON(http.StatusCreated, claim)
}

// GetExpenseClaims retrieves all claims with their employee, newest first
func GetExpenseClaims(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var claims []models.ExpenseClaim
	if err := config.DB.Preload("Employee").
		Where("employer_id = ?", employerUUID).
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expense claims")
		return
	}

	c.JSON(http.StatusOK, claims)
}

// UpdateExpenseClaim updates the editable fields of a claim still in Draft
func UpdateExpenseClaim(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	claimUUID, ok := pathUUID(c, "id", "expense claim")
	if !ok {
		return
	}

	var input UpdateExpenseClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var claim models.ExpenseClaim
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, claimUUID).
		First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense claim not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if claim.Status != "Draft" {
		utils.RespondWithError(c, http.StatusConflict, "Only draft claims can be edited")
		return
	}

	if input.Description != nil {
		claim.Description = *input.Description
	}
	if input.Category != nil {
		claim.Category = *input.Category
	}
	if input.Amount != nil {
		claim.Amount = *input.Amount
	}
	if input.ReceiptURL != nil {
		claim.ReceiptURL = *input.ReceiptURL
	}

	if err := config.DB.Save(&claim).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense claim")
		return
	}

	c.JSON(http.StatusOK, claim)
}

// ApproveExpense approves a claim. Approved and Rejected are terminal and
// mutually exclusive.
func ApproveExpense(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	claimUUID, ok := pathUUID(c, "id", "expense claim")
	if !ok {
		return
	}

	var claim models.ExpenseClaim
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, claimUUID).
		First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense claim not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if claim.Status == "Approved" || claim.Status == "Rejected" {
		utils.RespondWithError(c, http.StatusConflict, "Expense claim already "+claim.Status)
		return
	}

	approver := currentUserID(c)
	approvedDate := utils.DateString(time.Now())
	if err := config.DB.Model(&claim).Updates(map[string]interface{}{
		"status":        "Approved",
		"approved_by":   approver,
		"approved_date": approvedDate,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to approve expense claim")
		return
	}
	claim.Status = "Approved"
	claim.ApprovedBy = &approver
	claim.ApprovedDate = &approvedDate

	services.Notify(employerUUID, claim.EmployeeID, "team",
		"Expense approved",
		fmt.Sprintf("Your expense claim for £%.2f (%s) was approved", claim.Amount, claim.Description),
		models.JSONB{"claimId": claim.ID.String()})

	c.JSON(http.StatusOK, claim)
}

// RejectExpense rejects a claim with a reason
func RejectExpense(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	claimUUID, ok := pathUUID(c, "id", "expense claim")
	if !ok {
		return
	}

	var input RejectExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Rejection reason required")
		return
	}

	var claim models.ExpenseClaim
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, claimUUID).
		First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense claim not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if claim.Status == "Approved" || claim.Status == "Rejected" {
		utils.RespondWithError(c, http.StatusConflict, "Expense claim already "+claim.Status)
		return
	}

	approver := currentUserID(c)
	approvedDate := utils.DateString(time.Now())
	if err := config.DB.Model(&claim).Updates(map[string]interface{}{
		"status":           "Rejected",
		"approved_by":      approver,
		"approved_date":    approvedDate,
		"rejection_reason": input.Reason,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to reject expense claim")
		return
	}
	claim.Status = "Rejected"
	claim.ApprovedBy = &approver
	claim.ApprovedDate = &approvedDate
	claim.RejectionReason = input.Reason

	services.Notify(employerUUID, claim.EmployeeID, "team",
		"Expense rejected",
		fmt.Sprintf("Your expense claim for £%.2f was rejected: %s", claim.Amount, input.Reason),
		models.JSONB{"claimId": claim.ID.String()})

	c.JSON(http.StatusOK, claim)
}

// MarkExpensePaid stamps the reimbursement date. Independent of the
// approve/reject status.
func MarkExpensePaid(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	claimUUID, ok := pathUUID(c, "id", "expense claim")
	if !ok {
		return
	}

	var claim models.ExpenseClaim
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, claimUUID).
		First(&claim).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense claim not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	paidDate := utils.DateString(time.Now())
	if err := config.DB.Model(&claim).Update("paid_date", paidDate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to mark expense claim paid")
		return
	}
	claim.PaidDate = &paidDate

	c.JSON(http.StatusOK, claim)
}

// DeleteExpenseClaim soft deletes a claim
func DeleteExpenseClaim(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	claimUUID, ok := pathUUID(c, "id", "expense claim")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, claimUUID).
		Delete(&models.ExpenseClaim{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense claim")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense claim not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense claim deleted successfully"})
}
