// services/notification_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// NotificationService delivers best-effort user notifications. Every send is
// recorded in notification_logs; delivery failures are logged there and
// discarded, never returned to the caller. The state change that triggered a
// notification must already be committed before Send is called.
type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

// Notifier is the process-wide notification dispatcher, wired in main.
var Notifier *NotificationService

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	var client *twilio.RestClient
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &NotificationService{db: db, client: client}
}

// Notify dispatches through the process-wide Notifier if one is configured.
func Notify(employerID, userID uuid.UUID, ntype, title, body string, data models.JSONB) {
	if Notifier == nil {
		return
	}
	Notifier.Send(employerID, userID, ntype, title, body, data)
}

// Send records and delivers one notification. ntype must be one of the
// supported categories (job, team, college, peer).
func (s *NotificationService) Send(employerID, userID uuid.UUID, ntype, title, body string, data models.JSONB) {
	if !utils.ValidNotificationType(ntype) {
		log.Printf("notification: invalid type %q for user %s", ntype, userID)
		return
	}

	entry := models.NotificationLog{
		EmployerID: employerID,
		UserID:     userID,
		Type:       ntype,
		Title:      title,
		Body:       body,
		Data:       data,
		Status:     "sent",
		Channel:    "log",
		SentAt:     time.Now(),
	}

	phone := s.recipientPhone(userID)
	if s.client != nil && phone != "" {
		channel := "sms"
		to := phone

		// Use WhatsApp when the number is E.164 and a WhatsApp sender exists
		if strings.HasPrefix(phone, "+") && os.Getenv("TWILIO_WHATSAPP_NUMBER") != "" {
			channel = "whatsapp"
			to = "whatsapp:" + phone
		}

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(to)
		params.SetBody(title + "\n" + body)
		if channel == "whatsapp" {
			params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
		} else {
			params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		}

		if _, err := s.client.Api.CreateMessage(params); err != nil {
			log.Printf("notification: send to %s failed: %v", to, err)
			entry.Status = "failed"
			entry.ErrorMessage = err.Error()
		}
		entry.Channel = channel
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("notification: log for user %s failed: %v", userID, err)
	}
}

// recipientPhone resolves the destination number: employer accounts first,
// then employees (expense claim notifications go to the claimant).
func (s *NotificationService) recipientPhone(userID uuid.UUID) string {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err == nil {
		if user.SMSNotifications || user.WhatsAppNotifications {
			return user.Phone
		}
		return ""
	}

	var employee models.Employee
	if err := s.db.First(&employee, "id = ?", userID).Error; err == nil {
		return employee.Phone
	}
	return ""
}
