package domain

import "time"

// Status — статус жизненного цикла заказа.
// Канонический поток: pending → preparing → ready → delivered;
// cancelled достижим из pending и preparing.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentMethod — способ оплаты заказа.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentVipps PaymentMethod = "vipps"
)

// Item — одна позиция заказа.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

// Order — заказ, каким его хранит удалённый сервис.
// ID и таймстемпы назначаются удалённой стороной; локально они
// используются только как ключ дедупликации и ключ сортировки.
type Order struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customer_name" validate:"required"`
	CustomerPhone string        `json:"customer_phone" validate:"required"`
	Items         []Item        `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64       `json:"total_amount" validate:"gte=0"`
	Status        Status        `json:"status" validate:"omitempty,oneof=pending preparing ready delivered cancelled"`
	PaymentMethod PaymentMethod `json:"payment_method" validate:"omitempty,oneof=cash card vipps"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsValid — принадлежность статуса перечислению.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal — конечный статус: дальнейшие переходы по каноническому потоку не предполагаются.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo — проверка перехода по каноническому потоку.
// Ядро НЕ отклоняет внепотоковые переходы (удалённый сервис авторитетен),
// предикат нужен интерфейсному слою для подсказок.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusPreparing || next == StatusCancelled
	case StatusPreparing:
		return next == StatusReady || next == StatusCancelled
	case StatusReady:
		return next == StatusDelivered
	default:
		return false
	}
}

// IsValid — принадлежность способа оплаты перечислению.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentVipps:
		return true
	}
	return false
}

// Clone — глубокая копия заказа (Items копируются).
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cloned := *o
	if o.Items != nil {
		cloned.Items = append([]Item(nil), o.Items...)
	}
	return &cloned
}

// WellFormed — предикат корректности заказа по правилам ядра:
// непустые имя/телефон, непустой список позиций, qty > 0, price >= 0,
// статус и способ оплаты принадлежат перечислениям.
func (o *Order) WellFormed() bool {
	if o == nil || o.CustomerName == "" || o.CustomerPhone == "" || len(o.Items) == 0 {
		return false
	}
	for i := range o.Items {
		if o.Items[i].Quantity <= 0 || o.Items[i].Price < 0 {
			return false
		}
	}
	return o.Status.IsValid() && o.PaymentMethod.IsValid()
}
