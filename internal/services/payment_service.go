// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/bazaarhq/bazaar-backend/internal/config"
)

// PaymentService hands a cart total off to Stripe. The frontend confirms the
// PaymentIntent with the returned client secret.
type PaymentService struct {
	cfg         *config.Config
	cartService *CartService
}

type CheckoutResponse struct {
	ClientSecret string  `json:"client_secret"`
	PaymentID    string  `json:"payment_id"`
	Status       string  `json:"status"`
	Total        float64 `json:"total"`
	ItemCount    int     `json:"item_count"`
}

func NewPaymentService(cfg *config.Config, cartService *CartService) *PaymentService {
	stripe.Key = cfg.Stripe.SecretKey

	return &PaymentService{
		cfg:         cfg,
		cartService: cartService,
	}
}

// CheckoutCart computes the user's current cart total and creates a Stripe
// PaymentIntent for it.
func (s *PaymentService) CheckoutCart(userID string) (*CheckoutResponse, error) {
	view, err := s.cartService.List(userID)
	if err != nil {
		return nil, err
	}

	if len(view.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	currency := s.cfg.Stripe.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInSmallestUnit(view.Total)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("item_count", fmt.Sprintf("%d", len(view.Items)))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &CheckoutResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Total:        view.Total,
		ItemCount:    len(view.Items),
	}, nil
}

// amountInSmallestUnit converts a total to the currency's smallest unit.
// Rounding rather than truncating keeps float drift from shaving a cent off
// totals like 99.98, which lands at 9997.999... after the multiply.
func amountInSmallestUnit(total float64) int64 {
	return int64(math.Round(total * 100))
}
