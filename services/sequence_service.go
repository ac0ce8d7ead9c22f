// services/sequence_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SequenceService issues year-scoped document numbers (QU-2025-0001,
// INV-2025-001, ORD-2025-001). The counter lives in the document_sequences
// table and is advanced with a single upsert statement, so two concurrent
// callers always receive distinct numbers.
type SequenceService struct {
	db *gorm.DB

	// Now is the clock used to pick the sequence year. Overridable in tests.
	Now func() time.Time
}

var Sequences *SequenceService

func NewSequenceService(db *gorm.DB) *SequenceService {
	return &SequenceService{db: db, Now: time.Now}
}

func (s *SequenceService) NextQuoteNumber(employerID uuid.UUID) (string, error) {
	return s.next(employerID, utils.QuotePrefix, utils.QuoteSeqWidth, "employer_quotes", "quote_number")
}

func (s *SequenceService) NextInvoiceNumber(employerID uuid.UUID) (string, error) {
	return s.next(employerID, utils.InvoicePrefix, utils.InvoiceSeqWidth, "employer_invoices", "invoice_number")
}

func (s *SequenceService) NextOrderNumber(employerID uuid.UUID) (string, error) {
	return s.next(employerID, utils.OrderPrefix, utils.OrderSeqWidth, "employer_material_orders", "order_number")
}

func (s *SequenceService) next(employerID uuid.UUID, prefix string, width int, table, column string) (string, error) {
	year := s.Now().Year()

	seed, err := s.seedValue(employerID, prefix, year, table, column)
	if err != nil {
		return "", err
	}

	var value int
	err = s.db.Raw(`
		INSERT INTO document_sequences (employer_id, prefix, year, last_value, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (employer_id, prefix, year)
		DO UPDATE SET last_value = document_sequences.last_value + 1, updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`,
		employerID, prefix, year, seed+1).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("next %s number: %w", prefix, err)
	}

	return utils.FormatDocumentNumber(prefix, year, value, width), nil
}

// seedValue picks the starting point for a (prefix, year) counter that has no
// row yet: the highest document number already issued for that year. Once the
// counter row exists it is authoritative and the document table is not
// consulted again.
func (s *SequenceService) seedValue(employerID uuid.UUID, prefix string, year int, table, column string) (int, error) {
	var count int64
	if err := s.db.Model(&models.DocumentSequence{}).
		Where("employer_id = ? AND prefix = ? AND year = ?", employerID, prefix, year).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	var numbers []string
	err := s.db.Table(table).
		Where("employer_id = ? AND "+column+" LIKE ?", employerID, fmt.Sprintf("%s-%d-%%", prefix, year)).
		Order(column + " DESC").
		Limit(1).
		Pluck(column, &numbers).Error
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 0, nil
	}

	_, _, seq, err := utils.ParseDocumentNumber(numbers[0])
	if err != nil {
		log.Printf("sequence seed for %s-%d: %v", prefix, year, err)
		return 0, fmt.Errorf("seed %s-%d sequence: %w", prefix, year, err)
	}
	return seq, nil
}
