package services

import (
	"fmt"
	"strings"
	"testing"

	"voltworks-backend/models"

	"github.com/google/uuid"
)

func TestBulkCreateInsertsInBatches(t *testing.T) {
	db := testDB(t)
	employer := uuid.New()

	var items []models.PriceBookItem
	for i := 0; i < 250; i++ {
		items = append(items, models.PriceBookItem{
			EmployerID: employer,
			SKU:        fmt.Sprintf("SKU-%03d", i),
			Name:       fmt.Sprintf("Item %d", i),
		})
	}

	summary := BulkCreatePriceBookItems(db, items)
	if summary.Inserted != 250 || summary.Errors != 0 {
		t.Errorf("summary = %+v, want inserted 250, errors 0", summary)
	}

	var count int64
	db.Model(&models.PriceBookItem{}).Where("employer_id = ?", employer).Count(&count)
	if count != 250 {
		t.Errorf("persisted %d rows, want 250", count)
	}
}

func TestBulkCreateIsolatesFailingBatch(t *testing.T) {
	db := testDB(t)
	employer := uuid.New()

	// Pre-existing row that collides with a SKU in the second batch
	existing := models.PriceBookItem{EmployerID: employer, SKU: "SKU-150", Name: "Already here"}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}

	var items []models.PriceBookItem
	for i := 0; i < 250; i++ {
		items = append(items, models.PriceBookItem{
			EmployerID: employer,
			SKU:        fmt.Sprintf("SKU-%03d", i),
			Name:       fmt.Sprintf("Item %d", i),
		})
	}

	summary := BulkCreatePriceBookItems(db, items)
	if summary.Inserted != 150 {
		t.Errorf("inserted = %d, want 150 (first and third batches)", summary.Inserted)
	}
	if summary.Errors != 100 {
		t.Errorf("errors = %d, want 100 (the whole failing batch)", summary.Errors)
	}
}

func TestParsePriceBookCSV(t *testing.T) {
	employer := uuid.New()
	csvData := strings.Join([]string{
		"sku,name,category,unit,buy_price,sell_price,stock_level,reorder_level",
		"CAB-001,Twin and Earth 2.5mm,Cable,metre,0.45,0.90,200,50",
		"SOC-001,Double Socket White,Accessories,each,1.80,3.50,40,10",
	}, "\n")

	items, skipped, err := ParsePriceBookCSV(employer, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(items) != 2 {
		t.Fatalf("parsed %d items, want 2", len(items))
	}

	first := items[0]
	if first.EmployerID != employer {
		t.Errorf("employer ID not stamped on parsed rows")
	}
	if first.SKU != "CAB-001" || first.Name != "Twin and Earth 2.5mm" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.BuyPrice != 0.45 || first.SellPrice != 0.90 {
		t.Errorf("prices = %v/%v, want 0.45/0.90", first.BuyPrice, first.SellPrice)
	}
	if first.StockLevel != 200 || first.ReorderLevel != 50 {
		t.Errorf("stock = %d/%d, want 200/50", first.StockLevel, first.ReorderLevel)
	}
}

func TestParsePriceBookCSVSkipsBadRows(t *testing.T) {
	csvData := strings.Join([]string{
		"sku,name,buy_price,stock_level",
		"CAB-001,Good Row,0.45,200",
		",Missing SKU,1.00,5",
		"SOC-001,,1.00,5",
		"FUS-001,Bad Price,not-a-number,5",
		"FUS-002,Bad Stock,1.00,lots",
	}, "\n")

	items, skipped, err := ParsePriceBookCSV(uuid.New(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("parsed %d items, want 1", len(items))
	}
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}
}

func TestParsePriceBookCSVHeaderOrderIrrelevant(t *testing.T) {
	csvData := strings.Join([]string{
		"Name,SKU,sell_price",
		"Consumer Unit,CU-001,85.00",
	}, "\n")

	items, _, err := ParsePriceBookCSV(uuid.New(), strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].SKU != "CU-001" || items[0].SellPrice != 85.00 {
		t.Errorf("unexpected result: %+v", items)
	}
}

func TestParsePriceBookCSVMissingRequiredColumn(t *testing.T) {
	csvData := "name,buy_price\nNo SKU column,1.00"

	if _, _, err := ParsePriceBookCSV(uuid.New(), strings.NewReader(csvData)); err == nil {
		t.Error("expected error for csv without a sku column, got nil")
	}
}
