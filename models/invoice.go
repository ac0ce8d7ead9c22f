package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_employer_invoice_number,priority:1"`

	InvoiceNumber string `gorm:"not null;uniqueIndex:idx_employer_invoice_number,priority:2"`

	// Weak back-reference to the quote this invoice was raised from.
	QuoteID *uuid.UUID `gorm:"type:uuid;index"`

	ClientName  string `gorm:"not null"`
	ClientEmail string

	Amount float64 `gorm:"type:decimal(10,2);not null"`

	// Draft, Pending, Paid, Overdue
	Status   string  `gorm:"type:varchar(20);default:'Draft'"`
	DueDate  *string `gorm:"type:date"`
	PaidDate *string `gorm:"type:date"`

	// Access token for the public payment portal link, set when the invoice
	// is first sent.
	PortalToken string `gorm:"index"`

	Notes string

	gorm.Model
}

func (Invoice) TableName() string {
	return "employer_invoices"
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
