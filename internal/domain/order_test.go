package domain

import (
	"testing"
	"time"
)

func wellFormedOrder() *Order {
	return &Order{
		ID:            "o-1",
		CustomerName:  "Kari",
		CustomerPhone: "12345678",
		Items:         []Item{{ID: "i-1", Name: "Margherita", Price: 129, Quantity: 1}},
		TotalAmount:   129,
		Status:        StatusPending,
		PaymentMethod: PaymentCash,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestWellFormed(t *testing.T) {
	if !wellFormedOrder().WellFormed() {
		t.Fatalf("baseline order must be well-formed")
	}

	cases := map[string]func(*Order){
		"empty name":     func(o *Order) { o.CustomerName = "" },
		"empty phone":    func(o *Order) { o.CustomerPhone = "" },
		"no items":       func(o *Order) { o.Items = nil },
		"zero qty":       func(o *Order) { o.Items[0].Quantity = 0 },
		"negative price": func(o *Order) { o.Items[0].Price = -1 },
		"bad status":     func(o *Order) { o.Status = "shipped" },
		"bad payment":    func(o *Order) { o.PaymentMethod = "crypto" },
	}
	for name, mutate := range cases {
		o := wellFormedOrder()
		mutate(o)
		if o.WellFormed() {
			t.Fatalf("%s: order must not be well-formed", name)
		}
	}

	var nilOrder *Order
	if nilOrder.WellFormed() {
		t.Fatalf("nil order must not be well-formed")
	}
}

func TestStatus_Transitions(t *testing.T) {
	// канонический поток
	flow := []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered}
	for i := 0; i < len(flow)-1; i++ {
		if !flow[i].CanTransitionTo(flow[i+1]) {
			t.Fatalf("%s -> %s must be allowed", flow[i], flow[i+1])
		}
	}

	// cancelled достижим из pending и preparing, но не из ready
	if !StatusPending.CanTransitionTo(StatusCancelled) || !StatusPreparing.CanTransitionTo(StatusCancelled) {
		t.Fatalf("cancelled must be reachable from pending/preparing")
	}
	if StatusReady.CanTransitionTo(StatusCancelled) {
		t.Fatalf("ready -> cancelled is out of flow")
	}

	// терминальные
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Fatalf("%s must be terminal", s)
		}
		if s.CanTransitionTo(StatusPending) {
			t.Fatalf("terminal %s must not transition", s)
		}
	}
	if StatusPending.IsTerminal() {
		t.Fatalf("pending is not terminal")
	}
}

func TestClone_Deep(t *testing.T) {
	o := wellFormedOrder()
	c := o.Clone()

	c.Items[0].Name = "changed"
	c.Status = StatusReady

	if o.Items[0].Name == "changed" || o.Status == StatusReady {
		t.Fatalf("clone must not share items with the original")
	}

	var nilOrder *Order
	if nilOrder.Clone() != nil {
		t.Fatalf("clone of nil must be nil")
	}
}

func TestChangeEvent_ID(t *testing.T) {
	withOrder := ChangeEvent{Type: EventInsert, Order: &Order{ID: "a"}}
	if withOrder.ID() != "a" {
		t.Fatalf("want order id, got %q", withOrder.ID())
	}

	deleteOnly := ChangeEvent{Type: EventDelete, OrderID: "b"}
	if deleteOnly.ID() != "b" {
		t.Fatalf("want old-record id, got %q", deleteOnly.ID())
	}
}
