package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quote struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_employer_quote_number,priority:1"`

	QuoteNumber string `gorm:"not null;uniqueIndex:idx_employer_quote_number,priority:2"`
	ClientName  string `gorm:"not null"`
	ClientEmail string
	ClientPhone string
	SiteAddress string
	Description string

	// Draft, Sent, Accepted, Rejected. Accepted/Rejected arrive from the
	// client portal; this layer only drives Draft -> Sent.
	Status string  `gorm:"type:varchar(20);default:'Draft'"`
	Value  float64 `gorm:"type:decimal(10,2);default:0.0"`

	LineItems JSONArray `gorm:"type:jsonb;default:'[]'"`

	JobID      *uuid.UUID `gorm:"type:uuid;index"`
	SentDate   *string    `gorm:"type:date"`
	ValidUntil *string    `gorm:"type:date"`
	Notes      string

	gorm.Model
}

func (Quote) TableName() string {
	return "employer_quotes"
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return
}
