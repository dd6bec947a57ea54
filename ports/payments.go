package ports

import "context"

// CheckoutRequest describes a checkout session to be created at the
// payment provider
type CheckoutRequest struct {
	SessionHash string
	PlanID      string
	Email       string
	SuccessURL  string
	CancelURL   string
}

// CheckoutEvent is a provider webhook event reduced to what the app needs
type CheckoutEvent struct {
	Type        string
	SessionHash string
	PlanID      string
}

// PaymentStatus is the outcome of a checkout-session lookup
type PaymentStatus struct {
	Paid        bool
	SessionHash string
}

// CheckoutProvider fronts the payment provider. The app never sees provider
// SDK types; webhook payloads are verified and reduced inside the adapter.
type CheckoutProvider interface {
	// CreateCheckout creates a hosted checkout session and returns its URL
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)

	// VerifyWebhook checks the payload signature and returns the reduced event
	VerifyWebhook(payload []byte, signature string) (*CheckoutEvent, error)

	// GetPaymentStatus looks up a checkout session by provider id
	GetPaymentStatus(ctx context.Context, checkoutID string) (*PaymentStatus, error)
}
