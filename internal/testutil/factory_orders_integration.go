//go:build integration

package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// MakeOrder — мини-генератор валидного заказа для интеграционных тестов.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	now := time.Now().UTC().Truncate(time.Second)

	o := domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  "Kari Nordmann",
		CustomerPhone: "+47 912 34 567",
		Items: []domain.Item{
			{ID: uuid.NewString(), Name: "Margherita", Price: 149, Quantity: 1},
		},
		TotalAmount:   149,
		Status:        domain.StatusPending,
		PaymentMethod: domain.PaymentCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithID(id string) func(*domain.Order) {
	return func(o *domain.Order) { o.ID = id }
}

func WithStatus(st domain.Status) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = st }
}

func WithCustomer(name, phone string) func(*domain.Order) {
	return func(o *domain.Order) {
		o.CustomerName = name
		o.CustomerPhone = phone
	}
}

func WithItems(n int) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Items = make([]domain.Item, 0, n)
		total := 0.0
		for i := 0; i < n; i++ {
			price := float64(50 * (i + 1))
			o.Items = append(o.Items, domain.Item{
				ID:       uuid.NewString(),
				Name:     "Item",
				Price:    price,
				Quantity: 1,
			})
			total += price
		}
		o.TotalAmount = total
	}
}
