package payment

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
)

var ErrGateway = errors.New("payment gateway rejected the order")

// Order is the handle returned by the gateway for a created order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type Client struct {
	rz    *razorpay.Client
	keyID string
	log   *zerolog.Logger
}

func NewClient(keyID, keySecret string, log *zerolog.Logger) *Client {
	return &Client{
		rz:    razorpay.NewClient(keyID, keySecret),
		keyID: keyID,
		log:   log,
	}
}

// KeyID is the publishable key handed to the checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder submits an order for amountMajorUnits (rupees) to the
// gateway. Razorpay expects the smallest currency unit, so the amount is
// converted to paise before submission. Gateway failures are surfaced
// unretried.
func (c *Client) CreateOrder(amountMajorUnits int, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   toMinorUnits(amountMajorUnits),
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := c.rz.Order.Create(data, nil)
	if err != nil {
		c.log.Error().Err(err).Int("amount", amountMajorUnits).Msg("razorpay order create failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	order := &Order{}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	case int:
		order.Amount = int64(v)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: response without order id", ErrGateway)
	}

	c.log.Info().Str("order_id", order.ID).Int64("amount", order.Amount).Msg("gateway order created")
	return order, nil
}

func toMinorUnits(amountMajorUnits int) int {
	return amountMajorUnits * 100
}
