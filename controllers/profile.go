package controllers

import (
	"errors"
	"net/http"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateBusinessProfileInput struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	BusinessName    *string `json:"businessName"`
	BusinessAddress *string `json:"businessAddress"`
	VATNumber       *string `json:"vatNumber"`
}

type UpdateNotificationsInput struct {
	SMSNotifications      *bool `json:"smsNotifications"`
	WhatsAppNotifications *bool `json:"whatsappNotifications"`
}

// GetProfile returns the employer account
func GetProfile(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", employerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateBusinessProfile updates the business details shown on documents
func UpdateBusinessProfile(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input UpdateBusinessProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", employerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Account not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		user.Phone = *input.Phone
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BusinessAddress != nil {
		user.BusinessAddress = *input.BusinessAddress
	}
	if input.VATNumber != nil {
		user.VATNumber = *input.VATNumber
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateNotifications toggles the SMS and WhatsApp channels
func UpdateNotifications(c *gin.Context) {
	employerUUID, ok := employerID(c)
	if !ok {
		return
	}

	var input UpdateNotificationsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.SMSNotifications != nil {
		updates["sms_notifications"] = *input.SMSNotifications
	}
	if input.WhatsAppNotifications != nil {
		updates["whats_app_notifications"] = *input.WhatsAppNotifications
	}
	if len(updates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := config.DB.Model(&models.User{}).
		Where("id = ?", employerUUID).
		Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	var user models.User
	config.DB.First(&user, "id = ?", employerUUID)
	c.JSON(http.StatusOK, user)
}
