// services/stripe_service.go
package services

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/account"
	"github.com/stripe/stripe-go/v82/accountlink"
)

// InitStripe configures the Stripe SDK from the environment. Called once from
// main; safe to skip when the key is absent (Connect endpoints will fail with
// an authentication error from Stripe).
func InitStripe() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

// StripeConnectStatus is the payout-readiness view of a linked account. Unlike
// the rest of the service layer, status lookups degrade gracefully: transport
// errors come back inside the struct, not as a returned error.
type StripeConnectStatus struct {
	Connected        bool   `json:"connected"`
	AccountID        string `json:"accountId,omitempty"`
	ChargesEnabled   bool   `json:"chargesEnabled"`
	PayoutsEnabled   bool   `json:"payoutsEnabled"`
	DetailsSubmitted bool   `json:"detailsSubmitted"`
	Error            string `json:"error,omitempty"`
}

// CreateConnectAccount creates an Express account for the business (or reuses
// the already-linked one) and returns a fresh onboarding link.
func CreateConnectAccount(businessName, email, returnURL, refreshURL, existingAccountID string) (onboardingURL, accountID string, isExisting bool, err error) {
	if existingAccountID != "" {
		url, err := OnboardingLink(existingAccountID, returnURL, refreshURL)
		if err != nil {
			return "", "", false, err
		}
		return url, existingAccountID, true, nil
	}

	acct, err := account.New(&stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name: stripe.String(businessName),
		},
	})
	if err != nil {
		return "", "", false, fmt.Errorf("create connect account: %w", err)
	}

	url, err := OnboardingLink(acct.ID, returnURL, refreshURL)
	if err != nil {
		return "", "", false, err
	}
	return url, acct.ID, false, nil
}

// OnboardingLink returns a single-use account link that sends the user through
// Stripe-hosted onboarding and back to the given URLs.
func OnboardingLink(accountID, returnURL, refreshURL string) (string, error) {
	link, err := accountlink.New(&stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		ReturnURL:  stripe.String(returnURL),
		RefreshURL: stripe.String(refreshURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	})
	if err != nil {
		return "", fmt.Errorf("create onboarding link: %w", err)
	}
	return link.URL, nil
}

// ConnectStatus fetches the account state. Errors are folded into a default
// "not connected" result so a Stripe outage can never break the settings page.
func ConnectStatus(accountID string) StripeConnectStatus {
	if accountID == "" {
		return StripeConnectStatus{Connected: false}
	}

	acct, err := account.GetByID(accountID, nil)
	if err != nil {
		return StripeConnectStatus{Connected: false, Error: err.Error()}
	}

	return StripeConnectStatus{
		Connected:        true,
		AccountID:        acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}
}

// DisconnectAccount removes the Connect account at Stripe.
func DisconnectAccount(accountID string) error {
	if _, err := account.Del(accountID, nil); err != nil {
		return fmt.Errorf("disconnect account: %w", err)
	}
	return nil
}
