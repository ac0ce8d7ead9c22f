// controllers/invoice.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/services"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateInvoiceInput defines the expected JSON structure for creating an
// invoice. The invoice number comes from the sequence service.
type CreateInvoiceInput struct {
	ClientName  string     `json:"clientName" binding:"required"`
	ClientEmail string     `json:"clientEmail"`
	Amount      float64    `json:"amount" binding:"min=0"`
	QuoteID     *uuid.UUID `json:"quoteId"`
	DueDate     *string    `json:"dueDate"`
	Notes       string     `json:"notes"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	ClientName  *string  `json:"clientName"`
	ClientEmail *string  `json:"clientEmail"`
	Amount      *float64 `json:"amount" binding:"omitempty,min=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=Draft Pending Paid Overdue"`
	DueDate     *string  `json:"dueDate"`
	Notes       *string  `json:"notes"`
}

// CreateInvoice creates a new invoice with the next sequential number
func CreateInvoice(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// A quote back-reference must point at one of the employer's own quotes
	if input.QuoteID != nil {
		var quote models.Quote
		if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, *input.QuoteID).
			First(&quote).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Quote not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	number, err := services.Sequences.NextInvoiceNumber(employerUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate invoice number")
		return
	}

	invoice := models.Invoice{
		EmployerID:    employerUUID,
		InvoiceNumber: number,
		QuoteID:       input.QuoteID,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		Amount:        input.Amount,
		Status:        "Draft",
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the employer, newest first
func GetInvoices(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Where("employer_id = ?", employerUUID).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice
func UpdateInvoice(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientName != nil {
		invoice.ClientName = *input.ClientName
	}
	if input.ClientEmail != nil {
		invoice.ClientEmail = *input.ClientEmail
	}
	if input.Amount != nil {
		invoice.Amount = *input.Amount
	}
	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// SendInvoice generates the payment portal link, emails it to the client and
// moves the invoice to Pending. The email is best-effort; a mail failure does
// not undo the link or the status change.
func SendInvoice(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PortalToken == "" {
		invoice.PortalToken = utils.GenerateRandomString(24)
	}
	invoice.Status = "Pending"

	if err := config.DB.Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send invoice")
		return
	}

	portalURL := fmt.Sprintf("%s/portal/invoices/%s?token=%s",
		appBaseURL(c), invoice.ID, invoice.PortalToken)

	var business models.User
	config.DB.First(&business, "id = ?", employerUUID)
	services.SendInvoiceEmail(business, invoice, portalURL)

	c.JSON(http.StatusOK, gin.H{
		"portalUrl":   portalURL,
		"accessToken": invoice.PortalToken,
		"invoice":     invoice,
	})
}

// MarkInvoicePaid sets the status to Paid and stamps today's date, leaving
// every other field untouched
func MarkInvoicePaid(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	paidDate := utils.DateString(time.Now())
	if err := config.DB.Model(&invoice).Updates(map[string]interface{}{
		"status":    "Paid",
		"paid_date": paidDate,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to mark invoice paid")
		return
	}
	invoice.Status = "Paid"
	invoice.PaidDate = &paidDate

	services.Notify(employerUUID, employerUUID, "job",
		"Invoice paid",
		fmt.Sprintf("Invoice %s for £%.2f was marked paid", invoice.InvoiceNumber, invoice.Amount),
		models.JSONB{"invoiceId": invoice.ID.String()})

	c.JSON(http.StatusOK, invoice)
}

// GetInvoiceHTML renders the invoice as a printable HTML document
func GetInvoiceHTML(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var business models.User
	if err := config.DB.First(&business, "id = ?", employerUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	html, err := services.RenderInvoiceHTML(business, invoice)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}

// GetPortalInvoice is the unauthenticated client-portal view of an invoice,
// guarded by the access token issued when the invoice was sent
func GetPortalInvoice(c *gin.Context) {
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	token := c.Query("token")
	if token == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Access token required")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Where("id = ? AND portal_token = ?", invoiceUUID, token).
		First(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice
func DeleteInvoice(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	invoiceUUID, ok := pathUUID(c, "id", "invoice")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, invoiceUUID).
		Delete(&models.Invoice{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// appBaseURL picks the origin the frontend should be linked back to: the
// request's Origin header when present, otherwise APP_BASE_URL.
func appBaseURL(c *gin.Context) string {
	if origin := c.GetHeader("Origin"); origin != "" {
		return origin
	}
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:3000"
}
