// Package payments wraps the Stripe Checkout API behind the small interface
// the funding service consumes.
package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeCheckout creates hosted checkout sessions. The redirect URLs point
// back at the configured site domain.
type StripeCheckout struct {
	api        *client.API
	siteDomain string
}

func NewStripeCheckout(secretKey, siteDomain string) *StripeCheckout {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeCheckout{api: api, siteDomain: siteDomain}
}

// CreateCheckoutSession opens a one-off payment session for amountMinor
// integer minor currency units and returns the hosted redirect URL.
func (s *StripeCheckout) CreateCheckoutSession(amountMinor int64, donorEmail, donorName string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(amountMinor),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Blood donation fund"),
				},
			},
		}},
		SuccessURL: stripe.String(s.siteDomain + "/funding?payment=success&session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.siteDomain + "/funding?payment=cancelled"),
	}
	if donorEmail != "" {
		params.CustomerEmail = stripe.String(donorEmail)
	}
	params.AddMetadata("donor_name", donorName)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}
