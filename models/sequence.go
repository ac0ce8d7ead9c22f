package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentSequence backs the document number generator with an atomic
// per-(employer, prefix, year) counter. Incremented with a single upsert
// statement so concurrent callers can never be handed the same number.
type DocumentSequence struct {
	EmployerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Prefix     string    `gorm:"type:varchar(8);primaryKey"`
	Year       int       `gorm:"primaryKey"`
	LastValue  int       `gorm:"not null"`
	UpdatedAt  time.Time
}

func (DocumentSequence) TableName() string {
	return "document_sequences"
}
