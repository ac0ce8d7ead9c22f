// services/stock_alert_service.go
package services

import (
	"fmt"
	"log"
	"strings"

	"voltworks-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StockAlertService sends a daily low-stock summary to each active employer.
type StockAlertService struct {
	db *gorm.DB
}

func NewStockAlertService(db *gorm.DB) *StockAlertService {
	return &StockAlertService{db: db}
}

func (s *StockAlertService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyAlerts)

	c.Start()
	log.Println("Stock alert scheduler started")
}

func (s *StockAlertService) SendDailyAlerts() {
	log.Println("Starting daily stock alert processing...")

	var employers []models.User
	if err := s.db.Find(&employers, "is_active = ?", true).Error; err != nil {
		log.Printf("Failed to fetch employers: %v", err)
		return
	}

	for _, employer := range employers {
		s.ProcessEmployerAlerts(employer)
	}

	log.Println("Daily stock alert processing completed")
}

func (s *StockAlertService) ProcessEmployerAlerts(employer models.User) {
	var items []models.PriceBookItem
	if err := s.db.Where("employer_id = ? AND stock_level <= reorder_level", employer.ID).
		Order("stock_level ASC").
		Find(&items).Error; err != nil {
		log.Printf("Employer %s: failed to get low stock items: %v", employer.ID, err)
		return
	}
	if len(items) == 0 {
		return
	}

	var names []string
	for i, item := range items {
		if i >= 5 {
			names = append(names, fmt.Sprintf("and %d more", len(items)-5))
			break
		}
		names = append(names, fmt.Sprintf("%s (%d left)", item.Name, item.StockLevel))
	}

	Notify(employer.ID, employer.ID, "team",
		"Low stock alert",
		fmt.Sprintf("%d price book items need reordering: %s", len(items), strings.Join(names, ", ")),
		models.JSONB{"lowStockCount": len(items)})
}
