package controllers

import (
	"net/http"
	"testing"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func createInvoice(t *testing.T, r *gin.Engine, body map[string]interface{}) models.Invoice {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/invoices", body)
	requireStatus(t, w, http.StatusCreated)
	var invoice models.Invoice
	decodeBody(t, w, &invoice)
	return invoice
}

func TestCreateInvoiceAssignsNumber(t *testing.T) {
	r, _ := setupTest(t)

	invoice := createInvoice(t, r, map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
	})
	if invoice.InvoiceNumber != "INV-2025-001" {
		t.Errorf("invoice number = %q, want INV-2025-001", invoice.InvoiceNumber)
	}
	if invoice.Status != "Draft" {
		t.Errorf("status = %q, want Draft", invoice.Status)
	}
}

func TestCreateInvoiceRejectsUnknownQuote(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
		"quoteId":    uuid.New().String(),
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestMarkInvoicePaid(t *testing.T) {
	r, _ := setupTest(t)

	invoice := createInvoice(t, r, map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
		"notes":      "Rewire deposit",
	})

	w := doJSON(t, r, http.MethodPost, "/api/invoices/"+invoice.ID.String()+"/pay", nil)
	requireStatus(t, w, http.StatusOK)

	var paid models.Invoice
	decodeBody(t, w, &paid)
	if paid.Status != "Paid" {
		t.Errorf("status = %q, want Paid", paid.Status)
	}
	today := utils.DateString(time.Now())
	if paid.PaidDate == nil || *paid.PaidDate != today {
		t.Errorf("paid date = %v, want %s", paid.PaidDate, today)
	}
	if paid.Amount != 850.00 || paid.Notes != "Rewire deposit" {
		t.Errorf("other fields changed: amount %v, notes %q", paid.Amount, paid.Notes)
	}

	if notificationCount(t) != 1 {
		t.Errorf("notification count = %d, want 1", notificationCount(t))
	}
}

func TestSendInvoiceIssuesPortalLink(t *testing.T) {
	r, _ := setupTest(t)

	invoice := createInvoice(t, r, map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
	})

	w := doJSON(t, r, http.MethodPost, "/api/invoices/"+invoice.ID.String()+"/send", nil)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		PortalURL   string         `json:"portalUrl"`
		AccessToken string         `json:"accessToken"`
		Invoice     models.Invoice `json:"invoice"`
	}
	decodeBody(t, w, &resp)

	if resp.AccessToken == "" {
		t.Fatal("no access token issued")
	}
	if resp.Invoice.Status != "Pending" {
		t.Errorf("status = %q, want Pending", resp.Invoice.Status)
	}
	if resp.PortalURL == "" {
		t.Fatal("no portal URL returned")
	}

	// Re-sending keeps the same token
	w = doJSON(t, r, http.MethodPost, "/api/invoices/"+invoice.ID.String()+"/send", nil)
	requireStatus(t, w, http.StatusOK)
	var again struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, w, &again)
	if again.AccessToken != resp.AccessToken {
		t.Errorf("token changed on re-send: %q vs %q", again.AccessToken, resp.AccessToken)
	}
}

func TestPortalInvoiceAccess(t *testing.T) {
	r, _ := setupTest(t)

	invoice := createInvoice(t, r, map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
	})

	w := doJSON(t, r, http.MethodPost, "/api/invoices/"+invoice.ID.String()+"/send", nil)
	requireStatus(t, w, http.StatusOK)
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	decodeBody(t, w, &resp)

	// Valid token
	w = doJSON(t, r, http.MethodGet, "/portal/invoices/"+invoice.ID.String()+"?token="+resp.AccessToken, nil)
	requireStatus(t, w, http.StatusOK)
	var viewed models.Invoice
	decodeBody(t, w, &viewed)
	if viewed.InvoiceNumber != invoice.InvoiceNumber {
		t.Errorf("portal returned wrong invoice: %q", viewed.InvoiceNumber)
	}

	// Wrong token
	w = doJSON(t, r, http.MethodGet, "/portal/invoices/"+invoice.ID.String()+"?token=wrong", nil)
	requireStatus(t, w, http.StatusNotFound)

	// No token
	w = doJSON(t, r, http.MethodGet, "/portal/invoices/"+invoice.ID.String(), nil)
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestGetInvoiceHTML(t *testing.T) {
	r, _ := setupTest(t)

	invoice := createInvoice(t, r, map[string]interface{}{
		"clientName": "Mrs Jones",
		"amount":     850.00,
	})

	w := doJSON(t, r, http.MethodGet, "/api/invoices/"+invoice.ID.String()+"/html", nil)
	requireStatus(t, w, http.StatusOK)

	var resp struct {
		HTML string `json:"html"`
	}
	decodeBody(t, w, &resp)
	if resp.HTML == "" {
		t.Fatal("empty html document")
	}
}

func TestInvoiceScopedToEmployer(t *testing.T) {
	r, _ := setupTest(t)

	// Another employer's invoice in the same database
	other := models.User{Email: "other@example.com", Password: "secret123", Name: "Other", BusinessName: "Other Ltd"}
	if err := config.DB.Create(&other).Error; err != nil {
		t.Fatalf("create other employer: %v", err)
	}
	foreign := models.Invoice{EmployerID: other.ID, InvoiceNumber: "INV-2025-001", ClientName: "Someone", Amount: 10}
	if err := config.DB.Create(&foreign).Error; err != nil {
		t.Fatalf("create foreign invoice: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/invoices/"+foreign.ID.String(), nil)
	requireStatus(t, w, http.StatusNotFound)
}
