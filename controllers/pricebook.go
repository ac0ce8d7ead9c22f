// controllers/pricebook.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/services"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePriceBookItemInput deliberately has no markup field: markup is derived
// from the prices on save
type CreatePriceBookItemInput struct {
	SKU          string     `json:"sku" binding:"required"`
	Name         string     `json:"name" binding:"required"`
	Category     string     `json:"category"`
	Unit         string     `json:"unit"`
	BuyPrice     float64    `json:"buyPrice" binding:"min=0"`
	SellPrice    float64    `json:"sellPrice" binding:"min=0"`
	StockLevel   int        `json:"stockLevel" binding:"min=0"`
	ReorderLevel int        `json:"reorderLevel" binding:"min=0"`
	SupplierID   *uuid.UUID `json:"supplierId"`
}

type UpdatePriceBookItemInput struct {
	SKU          *string    `json:"sku"`
	Name         *string    `json:"name"`
	Category     *string    `json:"category"`
	Unit         *string    `json:"unit"`
	BuyPrice     *float64   `json:"buyPrice" binding:"omitempty,min=0"`
	SellPrice    *float64   `json:"sellPrice" binding:"omitempty,min=0"`
	StockLevel   *int       `json:"stockLevel" binding:"omitempty,min=0"`
	ReorderLevel *int       `json:"reorderLevel" binding:"omitempty,min=0"`
	SupplierID   *uuid.UUID `json:"supplierId"`
}

// PriceBookStats is the summary block for the price book dashboard card
type PriceBookStats struct {
	TotalItems int `json:"totalItems"`
	AvgMarkup  int `json:"avgMarkup"`
	LowStock   int `json:"lowStock"`
	StockValue int `json:"stockValue"`
}

// CreatePriceBookItem creates a new catalog entry
func CreatePriceBookItem(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input CreatePriceBookItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item := models.PriceBookItem{
		EmployerID:   employerUUID,
		SKU:          input.SKU,
		Name:         input.Name,
		Category:     input.Category,
		Unit:         input.Unit,
		BuyPrice:     input.BuyPrice,
		SellPrice:    input.SellPrice,
		StockLevel:   input.StockLevel,
		ReorderLevel: input.ReorderLevel,
		SupplierID:   input.SupplierID,
	}

	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create price book item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetPriceBook retrieves the full catalog with suppliers, sorted by name
func GetPriceBook(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var items []models.PriceBookItem
	if err := config.DB.Preload("Supplier").
		Where("employer_id = ?", employerUUID).
		Order("name ASC").
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve price book")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetLowStockItems returns items at or below their reorder level. The
// comparison runs in the query, not over a full-table fetch.
func GetLowStockItems(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var items []models.PriceBookItem
	if err := config.DB.Where("employer_id = ? AND stock_level <= reorder_level", employerUUID).
		Order("stock_level ASC").
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve low stock items")
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetPriceBookStats reduces the catalog to summary figures. Zero-priced items
// count toward totalItems but are excluded from the markup average.
func GetPriceBookStats(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var rows []struct {
		BuyPrice     float64
		SellPrice    float64
		StockLevel   int
		ReorderLevel int
	}
	if err := config.DB.Model(&models.PriceBookItem{}).
		Select("buy_price, sell_price, stock_level, reorder_level").
		Where("employer_id = ?", employerUUID).
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve price book stats")
		return
	}

	stats := PriceBookStats{TotalItems: len(rows)}

	var markupSum, stockValue float64
	var pricedItems int
	for _, r := range rows {
		if r.BuyPrice > 0 {
			markupSum += (r.SellPrice - r.BuyPrice) / r.BuyPrice * 100
			pricedItems++
		}
		if r.StockLevel <= r.ReorderLevel {
			stats.LowStock++
		}
		stockValue += r.BuyPrice * float64(r.StockLevel)
	}

	if pricedItems > 0 {
		stats.AvgMarkup = int(math.Round(markupSum / float64(pricedItems)))
	}
	stats.StockValue = int(math.Round(stockValue))

	c.JSON(http.StatusOK, stats)
}

// SearchPriceBook is the paginated catalog search. Sub-2-character queries
// apply no text filter so a single keystroke never triggers a broad scan.
func SearchPriceBook(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	query := config.DB.Model(&models.PriceBookItem{}).Where("employer_id = ?", employerUUID)

	if q := strings.TrimSpace(c.Query("q")); len(q) >= 2 {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search price book")
		return
	}

	var items []models.PriceBookItem
	if err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search price book")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdatePriceBookItem updates an existing catalog entry. Markup is recomputed
// from the saved prices, never taken from input.
func UpdatePriceBookItem(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	itemUUID, ok := pathUUID(c, "id", "price book item")
	if !ok {
		return
	}

	var input UpdatePriceBookItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var item models.PriceBookItem
	if err := config.DB.Where("employer_id = ? AND id = ?", employerUUID, itemUUID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Price book item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.SKU != nil {
		item.SKU = *input.SKU
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.BuyPrice != nil {
		item.BuyPrice = *input.BuyPrice
	}
	if input.SellPrice != nil {
		item.SellPrice = *input.SellPrice
	}
	if input.StockLevel != nil {
		item.StockLevel = *input.StockLevel
	}
	if input.ReorderLevel != nil {
		item.ReorderLevel = *input.ReorderLevel
	}
	if input.SupplierID != nil {
		item.SupplierID = input.SupplierID
	}

	if err := config.DB.Save(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update price book item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeletePriceBookItem soft deletes a catalog entry
func DeletePriceBookItem(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}
	itemUUID, ok := pathUUID(c, "id", "price book item")
	if !ok {
		return
	}

	result := config.DB.Where("employer_id = ? AND id = ?", employerUUID, itemUUID).
		Delete(&models.PriceBookItem{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete price book item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Price book item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Price book item deleted successfully"})
}

// ImportPriceBook bulk-inserts a CSV upload in batches of 100. Batch failures
// are isolated; the summary reports counts only.
func ImportPriceBook(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "CSV file required")
		return
	}
	defer file.Close()

	items, skipped, err := services.ParsePriceBookCSV(employerUUID, file)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid CSV: "+err.Error())
		return
	}

	summary := services.BulkCreatePriceBookItems(config.DB, items)
	summary.Errors += skipped

	c.JSON(http.StatusOK, summary)
}
