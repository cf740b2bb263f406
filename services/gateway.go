package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayOrder is the adapter's view of a remote payment order.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor currency units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"` // created | attempted | paid
}

// GatewayClient wraps the external payment processor. PaymentService only ever
// talks to this interface; tests swap in a fake.
type GatewayClient interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error)
	FetchOrder(orderID string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// ComputeSignature renders hex(HMAC-SHA256(secret, orderID + "|" + paymentID)),
// the scheme the gateway uses to sign its payment callbacks.
func ComputeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type razorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// NewRazorpayGateway builds the production gateway from RAZORPAY_KEY_ID /
// RAZORPAY_KEY_SECRET. Fails fast when keys are missing so the server never
// starts half-configured.
func NewRazorpayGateway() (GatewayClient, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay keys are not configured in environment")
	}
	return &razorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}, nil
}

func (g *razorpayGateway) KeyID() string { return g.keyID }

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	return orderFromBody(body)
}

func (g *razorpayGateway) FetchOrder(orderID string) (*GatewayOrder, error) {
	body, err := g.client.Order.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("gateway fetch order: %w", err)
	}
	return orderFromBody(body)
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	expected := ComputeSignature(g.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// orderFromBody maps the SDK's loose map response onto GatewayOrder.
func orderFromBody(body map[string]interface{}) (*GatewayOrder, error) {
	o := &GatewayOrder{}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("gateway response missing order id")
	}
	o.ID = id

	switch v := body["amount"].(type) {
	case float64:
		o.Amount = int64(v)
	case int64:
		o.Amount = v
	case int:
		o.Amount = int64(v)
	}
	if s, ok := body["currency"].(string); ok {
		o.Currency = s
	}
	if s, ok := body["receipt"].(string); ok {
		o.Receipt = s
	}
	if s, ok := body["status"].(string); ok {
		o.Status = s
	}
	return o, nil
}
