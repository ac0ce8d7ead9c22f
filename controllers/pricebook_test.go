package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voltworks-backend/config"
	"voltworks-backend/models"

	"github.com/google/uuid"
)

func seedItem(t *testing.T, employerID uuid.UUID, sku, name string, buy, sell float64, stock, reorder int) models.PriceBookItem {
	t.Helper()
	item := models.PriceBookItem{
		EmployerID:   employerID,
		SKU:          sku,
		Name:         name,
		BuyPrice:     buy,
		SellPrice:    sell,
		StockLevel:   stock,
		ReorderLevel: reorder,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		t.Fatalf("seed item %s: %v", sku, err)
	}
	return item
}

func TestCreateItemDerivesMarkup(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/pricebook", map[string]interface{}{
		"sku":       "CAB-001",
		"name":      "Twin and Earth 2.5mm",
		"buyPrice":  10.0,
		"sellPrice": 15.0,
	})
	requireStatus(t, w, http.StatusCreated)

	var item models.PriceBookItem
	decodeBody(t, w, &item)
	if item.Markup != 50 {
		t.Errorf("markup = %v, want 50", item.Markup)
	}
}

func TestMarkupRecomputedOnUpdate(t *testing.T) {
	r, employerID := setupTest(t)
	item := seedItem(t, employerID, "CAB-001", "Cable", 10, 15, 100, 10)

	w := doJSON(t, r, http.MethodPut, "/api/pricebook/"+item.ID.String(), map[string]interface{}{
		"sellPrice": 20.0,
	})
	requireStatus(t, w, http.StatusOK)

	var updated models.PriceBookItem
	decodeBody(t, w, &updated)
	if updated.Markup != 100 {
		t.Errorf("markup = %v, want 100 after sell price change", updated.Markup)
	}
}

func TestPriceBookStatsEmpty(t *testing.T) {
	r, _ := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/pricebook/stats", nil)
	requireStatus(t, w, http.StatusOK)

	var stats PriceBookStats
	decodeBody(t, w, &stats)
	if stats.TotalItems != 0 || stats.AvgMarkup != 0 || stats.LowStock != 0 || stats.StockValue != 0 {
		t.Errorf("stats = %+v, want all zeros", stats)
	}
}

func TestPriceBookStats(t *testing.T) {
	r, employerID := setupTest(t)

	// Zero buy price: counts toward totals, excluded from the markup average
	seedItem(t, employerID, "LAB-001", "Labour hour", 0, 20, 4, 5)
	seedItem(t, employerID, "CAB-001", "Cable", 10, 15, 10, 2)

	w := doJSON(t, r, http.MethodGet, "/api/pricebook/stats", nil)
	requireStatus(t, w, http.StatusOK)

	var stats PriceBookStats
	decodeBody(t, w, &stats)
	if stats.TotalItems != 2 {
		t.Errorf("totalItems = %d, want 2", stats.TotalItems)
	}
	if stats.AvgMarkup != 50 {
		t.Errorf("avgMarkup = %d, want 50", stats.AvgMarkup)
	}
	if stats.LowStock != 1 {
		t.Errorf("lowStock = %d, want 1", stats.LowStock)
	}
	// 0*4 + 10*10
	if stats.StockValue != 100 {
		t.Errorf("stockValue = %d, want 100", stats.StockValue)
	}
}

func TestLowStockUsesReorderThreshold(t *testing.T) {
	r, employerID := setupTest(t)

	seedItem(t, employerID, "A", "At threshold", 1, 2, 5, 5)
	seedItem(t, employerID, "B", "Below threshold", 1, 2, 0, 5)
	seedItem(t, employerID, "C", "Healthy", 1, 2, 50, 5)

	w := doJSON(t, r, http.MethodGet, "/api/pricebook/low-stock", nil)
	requireStatus(t, w, http.StatusOK)

	var items []models.PriceBookItem
	decodeBody(t, w, &items)
	if len(items) != 2 {
		t.Fatalf("got %d low stock items, want 2", len(items))
	}
	// Sorted by stock level, most urgent first
	if items[0].SKU != "B" || items[1].SKU != "A" {
		t.Errorf("order = %s, %s; want B, A", items[0].SKU, items[1].SKU)
	}
}

func TestSearchShortQueryAppliesNoTextFilter(t *testing.T) {
	r, employerID := setupTest(t)

	seedItem(t, employerID, "CAB-001", "Cable", 1, 2, 10, 1)
	seedItem(t, employerID, "SOC-001", "Socket", 1, 2, 10, 1)

	var resp struct {
		Items []models.PriceBookItem `json:"items"`
		Total int64                  `json:"total"`
		Page  int                    `json:"page"`
		Limit int                    `json:"limit"`
	}

	// One character: below the minimum, everything comes back
	w := doJSON(t, r, http.MethodGet, "/api/pricebook/search?q=c", nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &resp)
	if resp.Total != 2 {
		t.Errorf("total with 1-char query = %d, want 2", resp.Total)
	}

	// Two characters: filter kicks in, case-insensitive
	w = doJSON(t, r, http.MethodGet, "/api/pricebook/search?q=CA", nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &resp)
	if resp.Total != 1 || resp.Items[0].SKU != "CAB-001" {
		t.Errorf("total with 2-char query = %d, want just CAB-001", resp.Total)
	}
}

func TestSearchMatchesSKU(t *testing.T) {
	r, employerID := setupTest(t)

	seedItem(t, employerID, "CAB-001", "Twin and Earth", 1, 2, 10, 1)
	seedItem(t, employerID, "SOC-001", "Socket", 1, 2, 10, 1)

	var resp struct {
		Items []models.PriceBookItem `json:"items"`
		Total int64                  `json:"total"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/pricebook/search?q=cab-0", nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &resp)
	if resp.Total != 1 || resp.Items[0].SKU != "CAB-001" {
		t.Errorf("sku search found %d items", resp.Total)
	}
}

func TestSearchPagination(t *testing.T) {
	r, employerID := setupTest(t)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		seedItem(t, employerID, name, name, 1, 2, 10, 1)
	}

	var resp struct {
		Items []models.PriceBookItem `json:"items"`
		Total int64                  `json:"total"`
		Page  int                    `json:"page"`
		Limit int                    `json:"limit"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/pricebook/search?page=2&limit=2", nil)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &resp)

	if resp.Total != 3 || resp.Page != 2 || resp.Limit != 2 {
		t.Errorf("pagination meta = %+v", resp)
	}
	if len(resp.Items) != 1 || resp.Items[0].Name != "Charlie" {
		t.Errorf("page 2 items = %v", resp.Items)
	}
}

func TestImportPriceBookEndpoint(t *testing.T) {
	r, _ := setupTest(t)

	csvData := strings.Join([]string{
		"sku,name,buy_price,sell_price,stock_level,reorder_level",
		"CAB-001,Twin and Earth 2.5mm,0.45,0.90,200,50",
		"SOC-001,Double Socket,1.80,3.50,40,10",
		",Missing SKU,1.00,2.00,5,1",
	}, "\n")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "pricebook.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write([]byte(csvData))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/pricebook/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	requireStatus(t, w, http.StatusOK)

	var summary struct {
		Inserted int `json:"inserted"`
		Errors   int `json:"errors"`
	}
	decodeBody(t, w, &summary)
	if summary.Inserted != 2 || summary.Errors != 1 {
		t.Errorf("summary = %+v, want inserted 2, errors 1", summary)
	}

	var count int64
	config.DB.Model(&models.PriceBookItem{}).Count(&count)
	if count != 2 {
		t.Errorf("persisted %d rows, want 2", count)
	}
}

func TestImportRequiresFile(t *testing.T) {
	r, _ := setupTest(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pricebook/import", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	requireStatus(t, w, http.StatusBadRequest)
}
