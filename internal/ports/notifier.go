package ports

import (
	"context"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// ArrivalNotifier — получатель уведомлений о подлинно новых заказах.
// Вызывается подписчиком ровно один раз на каждый впервые увиденный id;
// реализация обязана не блокировать обработку событий.
type ArrivalNotifier interface {
	OrderArrived(ctx context.Context, order *domain.Order)
}
