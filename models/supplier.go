package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is standalone reference data. Material orders and price book items
// hold weak references to it; deleting a supplier is not guarded here.
type Supplier struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name          string `gorm:"not null"`
	AccountNumber string
	ContactName   string
	Email         string
	Phone         string
	Address       string

	CreditLimit float64 `gorm:"type:decimal(10,2);default:0.0"`
	Balance     float64 `gorm:"type:decimal(10,2);default:0.0"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (Supplier) TableName() string {
	return "employer_suppliers"
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
