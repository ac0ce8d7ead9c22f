package controllers

import (
	"fmt"
	"net/http"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
)

type OverdueInvoice struct {
	InvoiceNumber string  `json:"invoiceNumber"`
	ClientName    string  `json:"clientName"`
	Amount        float64 `json:"amount"`
	Overdue       string  `json:"overdue"` // e.g. "3 days"
}

// GetDashboardOverview returns the business-operations summary for the
// dashboard page
func GetDashboardOverview(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// This month's revenue (paid invoices)
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("employer_id = ? AND status = ? AND created_at >= ?", employerUUID, "Paid", firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&monthlyRevenue)

	// Outstanding invoices
	var outstandingCount int64
	var outstandingValue float64
	config.DB.Model(&models.Invoice{}).
		Where("employer_id = ? AND status IN ?", employerUUID, []string{"Pending", "Overdue"}).
		Count(&outstandingCount)
	config.DB.Model(&models.Invoice{}).
		Where("employer_id = ? AND status IN ?", employerUUID, []string{"Pending", "Overdue"}).
		Select("COALESCE(SUM(amount), 0)").Scan(&outstandingValue)

	// Open quotes awaiting a client decision
	var pendingQuoteCount int64
	var pendingQuoteValue float64
	config.DB.Model(&models.Quote{}).
		Where("employer_id = ? AND status IN ?", employerUUID, []string{"Draft", "Sent"}).
		Count(&pendingQuoteCount)
	config.DB.Model(&models.Quote{}).
		Where("employer_id = ? AND status IN ?", employerUUID, []string{"Draft", "Sent"}).
		Select("COALESCE(SUM(value), 0)").Scan(&pendingQuoteValue)

	// Expense claims waiting for a decision
	var pendingExpenseCount int64
	config.DB.Model(&models.ExpenseClaim{}).
		Where("employer_id = ? AND status = ?", employerUUID, "Draft").
		Count(&pendingExpenseCount)

	// Price book items at or below reorder level
	var lowStockCount int64
	config.DB.Model(&models.PriceBookItem{}).
		Where("employer_id = ? AND stock_level <= reorder_level", employerUUID).
		Count(&lowStockCount)

	// Most overdue unpaid invoices, for the attention list
	var unpaid []models.Invoice
	config.DB.Where("employer_id = ? AND status IN ? AND due_date IS NOT NULL",
		employerUUID, []string{"Pending", "Overdue"}).
		Order("due_date ASC").
		Limit(10).
		Find(&unpaid)

	var overdueInvoices []OverdueInvoice
	for _, inv := range unpaid {
		due, err := time.ParseInLocation(utils.DateLayout, *inv.DueDate, now.Location())
		if err != nil {
			continue
		}
		days := utils.DaysBetween(due, now)
		if days <= 0 {
			continue
		}
		label := fmt.Sprintf("%d days", days)
		if days == 1 {
			label = "1 day"
		}
		overdueInvoices = append(overdueInvoices, OverdueInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    inv.ClientName,
			Amount:        inv.Amount,
			Overdue:       label,
		})
		if len(overdueInvoices) >= 5 {
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"monthlyRevenue": monthlyRevenue,
		"outstandingInvoices": gin.H{
			"count": outstandingCount,
			"value": outstandingValue,
		},
		"pendingQuotes": gin.H{
			"count": pendingQuoteCount,
			"value": pendingQuoteValue,
		},
		"pendingExpenses": pendingExpenseCount,
		"lowStockItems":   lowStockCount,
		"overdueInvoices": overdueInvoices,
	})
}
