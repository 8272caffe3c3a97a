package billing

import (
	"testing"
)

func TestParseEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "invoice.payment_succeeded",
		"created": 1700000000,
		"data": {"object": {"id": "in_1", "customer": "cus_1"}}
	}`)

	event, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.ID != "evt_1" || event.Type != EventInvoicePaid {
		t.Errorf("unexpected envelope: %+v", event)
	}

	var invoice Invoice
	if err := ParseObject(event, &invoice); err != nil {
		t.Fatalf("parse object: %v", err)
	}
	if invoice.ID != "in_1" || invoice.Customer != "cus_1" {
		t.Errorf("unexpected invoice: %+v", invoice)
	}
}

func TestParseEventRejectsBadPayloads(t *testing.T) {
	for name, payload := range map[string][]byte{
		"not json": []byte("nope"),
		"no type":  []byte(`{"id": "evt_1", "data": {"object": {}}}`),
	} {
		if _, err := ParseEvent(payload); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPriceIDHandlesEmptyLines(t *testing.T) {
	var invoice Invoice
	if got := invoice.PriceID(); got != "" {
		t.Errorf("expected empty price for invoice with no lines, got %q", got)
	}

	var sub Subscription
	if got := sub.PriceID(); got != "" {
		t.Errorf("expected empty price for subscription with no items, got %q", got)
	}

	event, err := ParseEvent([]byte(`{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_1",
			"status": "active",
			"items": {"data": [{"price": {"id": "price_a"}}, {"price": {"id": "price_b"}}]}
		}}
	}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := ParseObject(event, &sub); err != nil {
		t.Fatalf("parse object: %v", err)
	}
	if got := sub.PriceID(); got != "price_a" {
		t.Errorf("expected first item's price, got %q", got)
	}
}
