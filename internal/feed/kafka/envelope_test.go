package kafka_test

import (
	"testing"

	"github.com/Gunvolt24/orders_live/internal/domain"
	myka "github.com/Gunvolt24/orders_live/internal/feed/kafka"
)

func TestDecodeEnvelope_Insert(t *testing.T) {
	raw := []byte(`{
		"event_type": "INSERT",
		"record": {
			"id": "o-1",
			"customer_name": "Kari",
			"customer_phone": "12345678",
			"items": [{"id": "i-1", "name": "Margherita", "price": 129, "quantity": 2}],
			"total_amount": 258,
			"status": "pending",
			"payment_method": "vipps",
			"created_at": "2025-01-01T10:00:00Z",
			"updated_at": "2025-01-01T10:00:00Z"
		}
	}`)

	ev, err := myka.DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != domain.EventInsert {
		t.Fatalf("type: want insert, got %s", ev.Type)
	}
	if ev.Order == nil || ev.Order.ID != "o-1" || ev.Order.PaymentMethod != domain.PaymentVipps {
		t.Fatalf("record mismatch: %+v", ev.Order)
	}
	if len(ev.Order.Items) != 1 || ev.Order.Items[0].Quantity != 2 {
		t.Fatalf("items mismatch: %+v", ev.Order.Items)
	}
}

func TestDecodeEnvelope_DeleteCarriesOnlyKey(t *testing.T) {
	raw := []byte(`{"event_type": "delete", "old_record": {"id": "o-9"}}`)

	ev, err := myka.DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Type != domain.EventDelete || ev.ID() != "o-9" {
		t.Fatalf("want delete of o-9, got %+v", ev)
	}
}

func TestDecodeEnvelope_Rejects(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"unknown type":      `{"event_type": "truncate"}`,
		"insert w/o record": `{"event_type": "insert"}`,
		"update w/o id":     `{"event_type": "update", "record": {"customer_name": "x"}}`,
		"delete w/o key":    `{"event_type": "delete"}`,
		"empty envelope":    `{}`,
	}
	for name, raw := range cases {
		if _, err := myka.DecodeEnvelope([]byte(raw)); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func TestEncodeDecode_Roundtrip(t *testing.T) {
	src := domain.ChangeEvent{
		Type: domain.EventDelete,
		Order: &domain.Order{
			ID: "o-3",
		},
	}
	raw, err := myka.EncodeEnvelope(src)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	ev, err := myka.DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// delete сериализуется как old_record: в конверте остаётся только ключ
	if ev.Type != domain.EventDelete || ev.ID() != "o-3" || ev.Order != nil {
		t.Fatalf("roundtrip mismatch: %+v", ev)
	}
}
