// services/import_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"voltworks-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rows per insert statement; keeps each request under backend size limits.
const importBatchSize = 100

type ImportSummary struct {
	Inserted int `json:"inserted"`
	Errors   int `json:"errors"`
}

// BulkCreatePriceBookItems inserts rows in fixed-size batches. A failing batch
// adds its row count to the error tally and the import moves on; batches
// already committed are never rolled back, and the summary carries no per-row
// attribution.
func BulkCreatePriceBookItems(db *gorm.DB, items []models.PriceBookItem) ImportSummary {
	var summary ImportSummary

	for start := 0; start < len(items); start += importBatchSize {
		end := start + importBatchSize
		if end > len(items) {
			end = len(items)
		}
		batch := items[start:end]

		if err := db.Create(&batch).Error; err != nil {
			log.Printf("price book import: batch %d-%d failed: %v", start, end, err)
			summary.Errors += len(batch)
			continue
		}
		summary.Inserted += len(batch)
	}

	return summary
}

// csv column headers accepted by ParsePriceBookCSV, case-insensitive
var priceBookColumns = []string{"sku", "name", "category", "unit", "buy_price", "sell_price", "stock_level", "reorder_level"}

// ParsePriceBookCSV reads a price book export into rows ready for insert.
// Rows with unparseable numbers are skipped and counted; a structurally
// broken file returns an error.
func ParsePriceBookCSV(employerID uuid.UUID, r io.Reader) (items []models.PriceBookItem, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["sku"]; !ok {
		return nil, 0, fmt.Errorf("csv missing required column %q", "sku")
	}
	if _, ok := cols["name"]; !ok {
		return nil, 0, fmt.Errorf("csv missing required column %q", "name")
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv row: %w", err)
		}

		item := models.PriceBookItem{
			EmployerID: employerID,
			SKU:        field(record, "sku"),
			Name:       field(record, "name"),
			Category:   field(record, "category"),
			Unit:       field(record, "unit"),
		}
		if item.SKU == "" || item.Name == "" {
			skipped++
			continue
		}

		bad := false
		parseFloat := func(name string) float64 {
			raw := field(record, name)
			if raw == "" {
				return 0
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				bad = true
			}
			return v
		}
		parseInt := func(name string) int {
			raw := field(record, name)
			if raw == "" {
				return 0
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				bad = true
			}
			return v
		}

		item.BuyPrice = parseFloat("buy_price")
		item.SellPrice = parseFloat("sell_price")
		item.StockLevel = parseInt("stock_level")
		item.ReorderLevel = parseInt("reorder_level")

		if bad {
			skipped++
			continue
		}
		items = append(items, item)
	}

	return items, skipped, nil
}
