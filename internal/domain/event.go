package domain

// EventType — тип события ленты изменений.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// ChangeEvent — одно событие ленты изменений таблицы заказов.
// Для insert/update заполнен Order; для delete гарантирован только OrderID
// (удалённый сервис присылает старую запись не целиком).
type ChangeEvent struct {
	Type    EventType
	Order   *Order
	OrderID string
}

// ID — идентификатор заказа, к которому относится событие.
func (e ChangeEvent) ID() string {
	if e.Order != nil && e.Order.ID != "" {
		return e.Order.ID
	}
	return e.OrderID
}
