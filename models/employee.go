package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is a team member of the employer's business. Expense claims belong
// to an employee; the record itself is reference data.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	EmployerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Initials string `gorm:"type:varchar(4)"`
	Email    string
	Phone    string
	Role     string
	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (Employee) TableName() string {
	return "employer_employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Initials == "" {
		e.Initials = initialsFromName(e.Name)
	}
	return
}

func initialsFromName(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(part[:1]))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
