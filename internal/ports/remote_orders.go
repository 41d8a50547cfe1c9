package ports

import (
	"context"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// RemoteOrders — операции против удалённого хранилища заказов.
// Сервис авторитетен: id и таймстемпы назначает он, локальная сторона
// только отражает подтверждённые результаты.
type RemoteOrders interface {
	// ListAll — полная выборка заказов, created_at по убыванию.
	ListAll(ctx context.Context) ([]*domain.Order, error)

	// Insert — создать заказ; возвращает созданную запись (с id и таймстемпами).
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// UpdateStatus — условное обновление статуса по id; возвращает обновлённую запись.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)

	// Delete — удалить заказ по id.
	Delete(ctx context.Context, id string) error
}
