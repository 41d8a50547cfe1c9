package ports

import (
	"context"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// ChangeFeed — источник ленты изменений таблицы заказов.
// Subscribe открывает новое подключение; за жизненный цикл и повторные
// подключения отвечает подписчик (internal/feed), не источник.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (FeedConn, error)
}

// FeedConn — одно открытое подключение к ленте.
// Events закрывается после терминальной ошибки; причина доступна в Err.
type FeedConn interface {
	// Events — события в порядке доставки удалённой стороной.
	Events() <-chan domain.ChangeEvent

	// Err — терминальная ошибка подключения (буферизована, не блокирует).
	Err() <-chan error

	// Close — закрыть подключение; идемпотентен.
	Close() error
}
