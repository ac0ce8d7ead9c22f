package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_employer_order_number,priority:1"`

	OrderNumber string `gorm:"not null;uniqueIndex:idx_employer_order_number,priority:2"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID"`

	Items JSONArray `gorm:"type:jsonb;default:'[]'"`
	Total float64   `gorm:"type:decimal(10,2);default:0.0"`

	// Informal progression, e.g. Ordered -> Delivered
	Status string `gorm:"type:varchar(20);default:'Ordered'"`

	OrderDate    *string `gorm:"type:date"`
	ExpectedDate *string `gorm:"type:date"`
	DeliveryDate *string `gorm:"type:date"`
	Notes        string

	gorm.Model
}

func (MaterialOrder) TableName() string {
	return "employer_material_orders"
}

func (m *MaterialOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
