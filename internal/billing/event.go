package billing

import (
	"encoding/json"
	"fmt"
)

// Event types the reconciler acts on. Anything else is acknowledged and
// ignored so the provider does not retry it.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventInvoicePaid         = "invoice.payment_succeeded"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Event is the provider's webhook envelope
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// Price identifies a provider price within a subscription or invoice line
type Price struct {
	ID string `json:"id"`
}

// CheckoutSession is the data object of a checkout.session.completed event
type CheckoutSession struct {
	ID           string            `json:"id"`
	Customer     string            `json:"customer"`
	Subscription string            `json:"subscription"`
	Metadata     map[string]string `json:"metadata"`
}

// Invoice is the data object of an invoice.payment_succeeded event
type Invoice struct {
	ID                   string `json:"id"`
	Customer             string `json:"customer"`
	Subscription         string `json:"subscription"`
	AmountPaid           int64  `json:"amount_paid"`
	Currency             string `json:"currency"`
	PaymentMethodDetails struct {
		Type string `json:"type"`
	} `json:"payment_method_details"`
	Lines struct {
		Data []struct {
			Price Price `json:"price"`
		} `json:"data"`
	} `json:"lines"`
}

// PriceID returns the price of the first invoice line, or "" when the
// invoice carries no lines
func (inv *Invoice) PriceID() string {
	if len(inv.Lines.Data) == 0 {
		return ""
	}
	return inv.Lines.Data[0].Price.ID
}

// Subscription is the data object of customer.subscription.* events
type Subscription struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
	Items    struct {
		Data []struct {
			Price Price `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// PriceID returns the price of the first subscription item, or "" when the
// subscription carries no items
func (s *Subscription) PriceID() string {
	if len(s.Items.Data) == 0 {
		return ""
	}
	return s.Items.Data[0].Price.ID
}

// ParseEvent decodes the webhook envelope
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse webhook event: %w", err)
	}
	if event.Type == "" {
		return nil, fmt.Errorf("webhook event has no type")
	}
	return &event, nil
}

// ParseObject decodes the event's data object into the typed payload for
// its event type
func ParseObject(event *Event, out interface{}) error {
	if err := json.Unmarshal(event.Data.Object, out); err != nil {
		return fmt.Errorf("failed to parse %s object: %w", event.Type, err)
	}
	return nil
}
