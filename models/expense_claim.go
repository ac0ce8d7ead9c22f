package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseClaim struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null"`

	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`

	Description string  `gorm:"not null"`
	Category    string  `gorm:"default:'General'"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	ReceiptURL  string

	// Draft -> Approved or Rejected, mutually exclusive. PaidDate is stamped
	// independently of status when the claim is reimbursed.
	Status          string     `gorm:"type:varchar(20);default:'Draft'"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedDate    *string    `gorm:"type:date"`
	RejectionReason string
	PaidDate        *string `gorm:"type:date"`

	gorm.Model
}

func (ExpenseClaim) TableName() string {
	return "employer_expense_claims"
}

func (e *ExpenseClaim) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
