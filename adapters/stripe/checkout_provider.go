package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"ikigai/internal/config"
	"ikigai/ports"

	stripeapi "github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

// CheckoutProvider implements the payment gate on top of Stripe Checkout
type CheckoutProvider struct {
	webhookSecret string
	prices        map[string]int64
}

var planNames = map[string]string{
	"basic":    "Ikigai - Basic Analysis",
	"premium":  "Ikigai - Premium Monthly",
	"lifetime": "Ikigai - Lifetime Access",
}

// NewCheckoutProvider creates a Stripe checkout provider from payments
// configuration
func NewCheckoutProvider(cfg config.PaymentsConfig) *CheckoutProvider {
	if cfg.SecretKey == "" {
		log.Println("[Stripe] STRIPE_SECRET_KEY not set - checkout calls will fail")
	}
	stripeapi.Key = cfg.SecretKey

	return &CheckoutProvider{
		webhookSecret: cfg.WebhookSecret,
		prices: map[string]int64{
			"basic":    cfg.PriceBasic,
			"premium":  cfg.PricePremium,
			"lifetime": cfg.PriceLifetime,
		},
	}
}

var _ ports.CheckoutProvider = (*CheckoutProvider)(nil)

// CreateCheckout creates a hosted checkout session and returns its URL.
// Unknown plans fall back to the basic one.
func (p *CheckoutProvider) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	price, ok := p.prices[req.PlanID]
	if !ok {
		price = p.prices["basic"]
	}
	name, ok := planNames[req.PlanID]
	if !ok {
		name = planNames["basic"]
	}

	priceData := &stripeapi.CheckoutSessionLineItemPriceDataParams{
		Currency: stripeapi.String("brl"),
		ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripeapi.String(name),
			Description: stripeapi.String("Personalized Ikigai analysis powered by AI"),
		},
		UnitAmount: stripeapi.Int64(price),
	}

	mode := stripeapi.CheckoutSessionModePayment
	if req.PlanID == "premium" {
		mode = stripeapi.CheckoutSessionModeSubscription
		priceData.Recurring = &stripeapi.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripeapi.String("month"),
		}
	}

	params := &stripeapi.CheckoutSessionParams{
		PaymentMethodTypes: stripeapi.StringSlice([]string{"card"}),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: priceData,
				Quantity:  stripeapi.Int64(1),
			},
		},
		Mode:          stripeapi.String(string(mode)),
		SuccessURL:    stripeapi.String(req.SuccessURL),
		CancelURL:     stripeapi.String(req.CancelURL),
		CustomerEmail: stripeapi.String(req.Email),
	}
	params.Context = ctx
	params.AddMetadata("sessionHash", req.SessionHash)
	params.AddMetadata("planId", req.PlanID)

	s, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout creation failed: %w", err)
	}
	return s.URL, nil
}

// VerifyWebhook checks the Stripe signature and reduces the event to the
// fields the app cares about
func (p *CheckoutProvider) VerifyWebhook(payload []byte, signature string) (*ports.CheckoutEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("stripe signature verification failed: %w", err)
	}

	reduced := &ports.CheckoutEvent{Type: string(event.Type)}

	if event.Type == "checkout.session.completed" {
		var cs stripeapi.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session payload: %w", err)
		}
		reduced.SessionHash = cs.Metadata["sessionHash"]
		reduced.PlanID = cs.Metadata["planId"]
	}

	return reduced, nil
}

// GetPaymentStatus looks up a checkout session and reports whether it was paid
func (p *CheckoutProvider) GetPaymentStatus(ctx context.Context, checkoutID string) (*ports.PaymentStatus, error) {
	params := &stripeapi.CheckoutSessionParams{}
	params.Context = ctx

	cs, err := checkoutsession.Get(checkoutID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout lookup failed: %w", err)
	}

	return &ports.PaymentStatus{
		Paid:        cs.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusPaid,
		SessionHash: cs.Metadata["sessionHash"],
	}, nil
}
