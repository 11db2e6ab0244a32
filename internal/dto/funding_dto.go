package dto

// CheckoutRequest starts a hosted payment session. Checkout is deliberately
// unauthenticated (pre-login donations are allowed), so the email here is
// only used as the processor-side receipt address.
type CheckoutRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	DonateAmount float64 `json:"donateAmount"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// RecordFundingRequest persists a completed donation. Email is accepted for
// wire compatibility but ignored: the verified caller identity is
// authoritative. SessionID, when present, is the processor session the
// payment came back from.
type RecordFundingRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Amount    float64 `json:"amount"`
	SessionID string  `json:"sessionId"`
}
