package controllers

import (
	"net/http"
	"testing"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"
)

func TestCreateQuoteAssignsSequentialNumbers(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mrs Jones",
		"value":      1200.50,
	})
	requireStatus(t, w, http.StatusCreated)

	var first models.Quote
	decodeBody(t, w, &first)
	if first.QuoteNumber != "QU-2025-0001" {
		t.Errorf("first quote number = %q, want QU-2025-0001", first.QuoteNumber)
	}
	if first.Status != "Draft" {
		t.Errorf("new quote status = %q, want Draft", first.Status)
	}

	w = doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mr Smith",
	})
	requireStatus(t, w, http.StatusCreated)

	var second models.Quote
	decodeBody(t, w, &second)
	if second.QuoteNumber != "QU-2025-0002" {
		t.Errorf("second quote number = %q, want QU-2025-0002", second.QuoteNumber)
	}
}

func TestCreateQuoteRequiresClientName(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"value": 500.0,
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestSendQuoteStampsSentDate(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mrs Jones",
	})
	requireStatus(t, w, http.StatusCreated)
	var quote models.Quote
	decodeBody(t, w, &quote)

	w = doJSON(t, r, http.MethodPost, "/api/quotes/"+quote.ID.String()+"/send", nil)
	requireStatus(t, w, http.StatusOK)

	var sent models.Quote
	decodeBody(t, w, &sent)
	if sent.Status != "Sent" {
		t.Errorf("status = %q, want Sent", sent.Status)
	}
	today := utils.DateString(time.Now())
	if sent.SentDate == nil || *sent.SentDate != today {
		t.Errorf("sent date = %v, want %s", sent.SentDate, today)
	}

	if notificationCount(t) != 1 {
		t.Errorf("notification count = %d, want 1", notificationCount(t))
	}
}

func TestUpdateQuoteNotifiesOnlyOnStatusChange(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mrs Jones",
	})
	requireStatus(t, w, http.StatusCreated)
	var quote models.Quote
	decodeBody(t, w, &quote)

	// Non-status edit fires no notification
	w = doJSON(t, r, http.MethodPut, "/api/quotes/"+quote.ID.String(), map[string]interface{}{
		"value": 999.0,
	})
	requireStatus(t, w, http.StatusOK)
	if got := notificationCount(t); got != 0 {
		t.Fatalf("notification count after value edit = %d, want 0", got)
	}

	// Actual status change fires one
	w = doJSON(t, r, http.MethodPut, "/api/quotes/"+quote.ID.String(), map[string]interface{}{
		"status": "Accepted",
	})
	requireStatus(t, w, http.StatusOK)
	if got := notificationCount(t); got != 1 {
		t.Fatalf("notification count after status change = %d, want 1", got)
	}

	// Re-submitting the same status does not
	w = doJSON(t, r, http.MethodPut, "/api/quotes/"+quote.ID.String(), map[string]interface{}{
		"status": "Accepted",
	})
	requireStatus(t, w, http.StatusOK)
	if got := notificationCount(t); got != 1 {
		t.Errorf("notification count after repeat status = %d, want 1", got)
	}

	var entry models.NotificationLog
	if err := config.DB.First(&entry).Error; err != nil {
		t.Fatalf("load notification: %v", err)
	}
	if entry.Type != "job" {
		t.Errorf("notification type = %q, want job", entry.Type)
	}
	if entry.Channel != "log" {
		t.Errorf("notification channel = %q, want log (no SMS client in tests)", entry.Channel)
	}
}

func TestUpdateQuoteRejectsUnknownStatus(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mrs Jones",
	})
	requireStatus(t, w, http.StatusCreated)
	var quote models.Quote
	decodeBody(t, w, &quote)

	w = doJSON(t, r, http.MethodPut, "/api/quotes/"+quote.ID.String(), map[string]interface{}{
		"status": "Maybe",
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestDeleteQuote(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/quotes", map[string]interface{}{
		"clientName": "Mrs Jones",
	})
	requireStatus(t, w, http.StatusCreated)
	var quote models.Quote
	decodeBody(t, w, &quote)

	w = doJSON(t, r, http.MethodDelete, "/api/quotes/"+quote.ID.String(), nil)
	requireStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/quotes/"+quote.ID.String(), nil)
	requireStatus(t, w, http.StatusNotFound)

	// Deleting again is a 404, not a silent success
	w = doJSON(t, r, http.MethodDelete, "/api/quotes/"+quote.ID.String(), nil)
	requireStatus(t, w, http.StatusNotFound)
}
