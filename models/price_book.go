package models

import (
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PriceBookItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_employer_sku,priority:1"`

	SKU      string `gorm:"column:sku;not null;uniqueIndex:idx_employer_sku,priority:2"`
	Name     string `gorm:"not null"`
	Category string `gorm:"default:'General'"`
	Unit     string `gorm:"default:'each'"`

	BuyPrice  float64 `gorm:"type:decimal(10,2);default:0.0"`
	SellPrice float64 `gorm:"type:decimal(10,2);default:0.0"`

	// Markup is derived from the prices in BeforeSave and never accepted from
	// client input.
	Markup float64 `gorm:"type:decimal(10,2);default:0.0"`

	StockLevel   int `gorm:"default:0"`
	ReorderLevel int `gorm:"default:0"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID"`

	gorm.Model
}

func (PriceBookItem) TableName() string {
	return "employer_price_book"
}

func (p *PriceBookItem) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

func (p *PriceBookItem) BeforeSave(tx *gorm.DB) (err error) {
	if p.BuyPrice > 0 {
		p.Markup = math.Round((p.SellPrice-p.BuyPrice)/p.BuyPrice*10000) / 100
	} else {
		p.Markup = 0
	}
	return
}

// LowStock reports whether the item is at or below its reorder threshold.
func (p *PriceBookItem) LowStock() bool {
	return p.StockLevel <= p.ReorderLevel
}
