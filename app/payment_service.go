package app

import (
	"context"
	"fmt"

	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"
)

// checkoutCompletedEvent is the provider event that unlocks analysis
const checkoutCompletedEvent = "checkout.session.completed"

// PaymentService wires the checkout gate in front of analysis. A completed
// checkout webhook triggers the AI analysis for the paid session.
type PaymentService struct {
	provider    ports.CheckoutProvider
	sessions    *SessionService
	frontendURL string
	logger      *internal.Logger
}

// NewPaymentService creates a payment service
func NewPaymentService(provider ports.CheckoutProvider, sessions *SessionService, frontendURL string, logger *internal.Logger) *PaymentService {
	return &PaymentService{
		provider:    provider,
		sessions:    sessions,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// CreateCheckout creates a hosted checkout session for the given plan and
// returns the redirect URL
func (s *PaymentService) CreateCheckout(ctx context.Context, sessionHash, planID, email string) (string, error) {
	// Reject unknown hashes before sending the user off to the provider.
	if _, err := s.sessions.Get(ctx, sessionHash); err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckout(ctx, ports.CheckoutRequest{
		SessionHash: sessionHash,
		PlanID:      planID,
		Email:       email,
		SuccessURL:  fmt.Sprintf("%s/checkout/success?session_id={CHECKOUT_SESSION_ID}&hash=%s", s.frontendURL, sessionHash),
		CancelURL:   fmt.Sprintf("%s/checkout?hash=%s", s.frontendURL, sessionHash),
	})
	if err != nil {
		return "", errors.PaymentError("failed to create checkout session", err)
	}

	s.logger.Info("checkout created hash=%s plan=%s", sessionHash, planID)
	return url, nil
}

// HandleWebhook verifies and dispatches a provider webhook. On a completed
// checkout carrying a session hash, the AI analysis is kicked off.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	// A bad signature is the sender's problem; answering 4xx keeps the
	// provider from retrying an unverifiable payload forever.
	event, err := s.provider.VerifyWebhook(payload, signature)
	if err != nil {
		s.logger.Warn("webhook verification failed: %v", err)
		return errors.ValidationError("webhook signature verification failed")
	}

	if event.Type != checkoutCompletedEvent || event.SessionHash == "" {
		s.logger.Debug("ignoring webhook event type=%s", event.Type)
		return nil
	}

	s.logger.Info("checkout completed hash=%s plan=%s, starting analysis", event.SessionHash, event.PlanID)

	if _, err := s.sessions.Analyze(ctx, event.SessionHash); err != nil {
		return errors.Wrapf(err, "post-payment analysis failed for %s", event.SessionHash)
	}
	return nil
}

// VerifyPayment looks up a checkout session and reports whether it was paid
func (s *PaymentService) VerifyPayment(ctx context.Context, checkoutID string) (*ports.PaymentStatus, error) {
	status, err := s.provider.GetPaymentStatus(ctx, checkoutID)
	if err != nil {
		return nil, errors.PaymentError("failed to look up checkout session", err)
	}
	return status, nil
}
