// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var notificationTypes = map[string]bool{
	"job":     true,
	"team":    true,
	"college": true,
	"peer":    true,
}

// ValidNotificationType reports whether t is one of the supported
// notification categories (job, team, college, peer).
func ValidNotificationType(t string) bool {
	return notificationTypes[t]
}
