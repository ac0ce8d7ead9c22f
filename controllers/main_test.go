package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires a fresh in-memory database into the package globals and
// returns a router with the full API surface mounted behind a stub auth
// middleware for the created employer.
func setupTest(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Quote{},
		&models.Invoice{},
		&models.ExpenseClaim{},
		&models.Supplier{},
		&models.MaterialOrder{},
		&models.PriceBookItem{},
		&models.NotificationLog{},
		&models.DocumentSequence{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	config.DB = db
	services.Sequences = services.NewSequenceService(db)
	services.Sequences.Now = func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	services.Notifier = services.NewNotificationService(db)

	employer := models.User{
		Email:        t.Name() + "@example.com",
		Password:     "secret123",
		Name:         "Test Owner",
		BusinessName: "Test Electrical Ltd",
		IsActive:     true,
	}
	if err := db.Create(&employer).Error; err != nil {
		t.Fatalf("failed to create employer: %v", err)
	}

	r := gin.New()
	r.GET("/portal/invoices/:id", GetPortalInvoice)

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("employerId", employer.ID.String())
		c.Set("userId", employer.ID.String())
		c.Next()
	})
	{
		api.POST("/quotes", CreateQuote)
		api.GET("/quotes", GetQuotes)
		api.GET("/quotes/:id", GetQuote)
		api.PUT("/quotes/:id", UpdateQuote)
		api.POST("/quotes/:id/send", SendQuote)
		api.DELETE("/quotes/:id", DeleteQuote)

		api.POST("/invoices", CreateInvoice)
		api.GET("/invoices", GetInvoices)
		api.GET("/invoices/:id", GetInvoice)
		api.PUT("/invoices/:id", UpdateInvoice)
		api.POST("/invoices/:id/send", SendInvoice)
		api.POST("/invoices/:id/pay", MarkInvoicePaid)
		api.GET("/invoices/:id/html", GetInvoiceHTML)
		api.DELETE("/invoices/:id", DeleteInvoice)

		api.POST("/expenses", CreateExpenseClaim)
		api.GET("/expenses", GetExpenseClaims)
		api.PUT("/expenses/:id", UpdateExpenseClaim)
		api.POST("/expenses/:id/approve", ApproveExpense)
		api.POST("/expenses/:id/reject", RejectExpense)
		api.POST("/expenses/:id/pay", MarkExpensePaid)
		api.DELETE("/expenses/:id", DeleteExpenseClaim)

		api.POST("/suppliers", CreateSupplier)
		api.GET("/suppliers", GetSuppliers)

		api.POST("/orders", CreateMaterialOrder)
		api.PUT("/orders/:id/status", UpdateOrderStatus)

		api.POST("/pricebook", CreatePriceBookItem)
		api.GET("/pricebook", GetPriceBook)
		api.GET("/pricebook/low-stock", GetLowStockItems)
		api.GET("/pricebook/stats", GetPriceBookStats)
		api.GET("/pricebook/search", SearchPriceBook)
		api.POST("/pricebook/import", ImportPriceBook)
		api.PUT("/pricebook/:id", UpdatePriceBookItem)

		api.GET("/dashboard", GetDashboardOverview)
	}

	return r, employer.ID
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func notificationCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	config.DB.Model(&models.NotificationLog{}).Count(&count)
	return count
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
