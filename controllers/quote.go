// controllers/quote.go
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

// CreateQuoteInput defines the expected JSON structure for creating a quote.
// The quote number is never client-supplied; it comes from the sequence
// service.
type CreateQuoteInput struct {
	ClientName  string           `json:"clientName" binding:"required"`
	ClientEmail string           `json:"clientEmail"`
	ClientPhone string           `json:"clientPhone"`
	SiteAddress string           `json:"siteAddress"`
	Description string           `json:"description"`
	Value       float64          `json:"value" binding:"min=0"`
	LineItems   models.JSONArray `json:"lineItems"`
	JobID       *uuid.UUID       `json:"jobId"`
	ValidUntil  *string          `json:"validUntil"`
	Notes       string           `json:"notes"`
}

// UpdateQuoteInput defines the expected JSON structure for updating a quote
type UpdateQuoteInput struct {
	ClientName  *string           `json:"clientName"`
	ClientEmail *string           `json:"clientEmail"`
	ClientPhone *string           `json:"clientPhone"`
	SiteAddress *string           `json:"siteAddress"`
	Description *string           `json:"description"`
	Status      *string           `json:"status" binding:"omitempty,oneof=Draft Sent Accepted Rejected"`
	Value       *float64          `json:"value" binding:"omitempty,min=0"`
	LineItems   *models.JSONArray `json:"lineItems"`
	JobID       *uuid.UUID        `json:"jobId"`
	ValidUntil  *string           `json:"validUntil"`
	Notes       *string           `json:"notes"`
}

// CreateQuote creates a new quote in Draft with the next sequential number
func CreateQuote(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	number, err := services.Sequences.NextQuoteNumber(employerUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate quote number")
		return
	}

	quote := models.Quote{
		EmployerID:  employerUUID,
		QuoteNumber: number,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		ClientPhone: input.ClientPhone,
		SiteAddress: input.SiteAddress,
		Description: input.Description,
		Status:      "Draft",
		Value:       input.Value,
		LineItems:   input.LineItems,
		JobID:       input.JobID,
		ValidUntil:  input.ValidUntil,
		Notes:       input.Notes,
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuotes retrieves all quotes for the employer, newest first
func GetQuotes(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var quotes []models.Quote
	if err := config.DB.Where("employer_id = ?", employerUUID).
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote retrieves a specific quote by ID
func GetQuote(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	quoteUUID, ok := pathUUID(c, "id", "quote")
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, quoteUUID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote updates an existing quote. A status-change notification fires
// only when the persisted status actually changes, so re-sending the current
// status does not spam the owner.
func UpdateQuote(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	quoteUUID, ok := pathUUID(c, "id", "quote")
	if !ok {
		return
	}

	var input UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve original quote; the status comparison below depends on it
	var quote models.Quote
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, quoteUUID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	originalStatus := quote.Status

	if input.ClientName != nil {
		quote.ClientName = *input.ClientName
	}
	if input.ClientEmail != nil {
		quote.ClientEmail = *input.ClientEmail
	}
	if input.ClientPhone != nil {
		quote.ClientPhone = *input.ClientPhone
	}
	if input.SiteAddress != nil {
		quote.SiteAddress = *input.SiteAddress
	}
	if input.Description != nil {
		quote.Description = *input.Description
	}
	if input.Status != nil {
		quote.Status = *input.Status
	}
	if input.Value != nil {
		quote.Value = *input.Value
	}
	if input.LineItems != nil {
		quote.LineItems = *input.LineItems
	}
	if input.JobID != nil {
		quote.JobID = input.JobID
	}
	if input.ValidUntil != nil {
		quote.ValidUntil = input.ValidUntil
	}
	if input.Notes != nil {
		quote.Notes = *input.Notes
	}

	if err := config.DB.Save(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	if quote.Status != originalStatus {
		services.Notify(employerUUID, employerUUID, "job",
			"Quote "+quote.QuoteNumber,
			fmt.Sprintf("Quote %s for %s is now %s", quote.QuoteNumber, quote.ClientName, quote.Status),
			models.JSONB{"quoteId": quote.ID.String(), "status": quote.Status})
	}

	c.JSON(http.StatusOK, quote)
}

// SendQuote transitions a quote to Sent and stamps the sent date
func SendQuote(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	quoteUUID, ok := pathUUID(c, "id", "quote")
	if !ok {
		return
	}

	var quote models.Quote
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, quoteUUID).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	sentDate := utils.DateString(time.Now())
	if err := config.DB.Model(&quote).Updates(map[string]interface{}{
		"status":    "Sent",
		"sent_date": sentDate,
	}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send quote")
		return
	}
	quote.Status = "Sent"
	quote.SentDate = &sentDate

	services.Notify(employerUUID, employerUUID, "job",
		"Quote sent",
		fmt.Sprintf("Quote %s was sent to %s", quote.QuoteNumber, quote.ClientName),
		models.JSONB{"quoteId": quote.ID.String()})

	c.JSON(http.StatusOK, quote)
}

// DeleteQuote soft deletes a quote
func DeleteQuote(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	quoteUUID, ok := pathUUID(c, "id", "quote")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, quoteUUID).
		Delete(&models.Quote{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}
