// controllers/stripe.go
package controllers

import (
	"errors"
	"net/http"

	"voltworks-backend/config"
	"voltworks-backend/models"
	"voltworks-backend/services"
	"voltworks-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStripeConnectStatus returns the payout-readiness of the linked account.
// Stripe transport failures come back inside the status payload, never as a
// 5xx, so the settings page always renders.
func GetStripeConnectStatus(c *gin.Context) {
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

	c.JSON(http.StatusOK, services.ConnectStatus(user.StripeAccountID))
}

// CreateStripeConnectAccount starts (or resumes) Express onboarding and
// returns the hosted onboarding URL
func CreateStripeConnectAccount(c *gin.Context) {
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

	base := appBaseURL(c)
	returnURL := base + "/settings/payments?stripe=connected"
	refreshURL := base + "/settings/payments?stripe=refresh"

	onboardingURL, accountID, isExisting, err := services.CreateConnectAccount(
		user.BusinessName, user.Email, returnURL, refreshURL, user.StripeAccountID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to create Stripe account: "+err.Error())
		return
	}

	if !isExisting {
		if err := config.DB.Model(&user).Update("stripe_account_id", accountID).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save Stripe account")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"url":       onboardingURL,
		"accountId": accountID,
		"existing":  isExisting,
	})
}

// GetStripeOnboardingLink issues a fresh single-use onboarding link for an
// account that was created but not finished
func GetStripeOnboardingLink(c *gin.Context) {
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

	if user.StripeAccountID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "No Stripe account connected")
		return
	}

	base := appBaseURL(c)
	url, err := services.OnboardingLink(user.StripeAccountID,
		base+"/settings/payments?stripe=connected",
		base+"/settings/payments?stripe=refresh")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to create onboarding link: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DisconnectStripe removes the Connect account at Stripe and clears the
// stored reference
func DisconnectStripe(c *gin.Context) {
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

	if user.StripeAccountID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "No Stripe account connected")
		return
	}

	if err := services.DisconnectAccount(user.StripeAccountID); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to disconnect Stripe account: "+err.Error())
		return
	}

	if err := config.DB.Model(&user).Update("stripe_account_id", "").Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear Stripe account")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stripe account disconnected"})
}
