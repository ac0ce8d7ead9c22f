package models

import (
	"time"

	"voltworks-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an employer account: the owner of an electrical contracting business.
// Every business record carries the user's ID as EmployerID.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	BusinessName    string `gorm:"not null"`
	BusinessAddress string
	VATNumber       string

	// Stripe Connect account linked through the onboarding flow, empty until
	// the business completes payout setup.
	StripeAccountID string

	SMSNotifications      bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
