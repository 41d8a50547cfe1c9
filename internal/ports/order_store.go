package ports

import "github.com/Gunvolt24/orders_live/internal/domain"

// OrderStore — локальное хранилище заказов, единственный источник правды для UI.
// Требования к реализации: потокобезопасность; атомарность каждой операции
// относительно конкурентных читателей; возврат копий сущностей.
type OrderStore interface {
	// List — снимок заказов в порядке перечисления (новые первыми).
	List() []*domain.Order

	// Upsert — вставить (неизвестный id — в начало) или заменить на месте.
	// Возвращает true, если id ранее в хранилище не было.
	Upsert(order *domain.Order) (inserted bool)

	// Remove — удалить заказ по id; отсутствие записи не ошибка.
	// Возвращает true, если запись была и удалена.
	Remove(id string) (removed bool)

	// ReplaceAll — полная замена содержимого (самозагрузка при (ре)коннекте).
	// Порядок orders сохраняется как есть: вызывающая сторона обязана
	// передать created_at по убыванию.
	ReplaceAll(orders []*domain.Order)

	// Contains — есть ли заказ с таким id.
	Contains(id string) bool

	// Len — текущее число заказов.
	Len() int
}
