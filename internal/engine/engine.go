// Package engine — сборка движка синхронизации заказов: локальное
// хранилище, подписчик ленты изменений, шлюз мутаций и уведомления
// за одним фасадом. Движок — явно сконструированный экземпляр,
// глобального состояния нет.
package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/feed"
	"github.com/Gunvolt24/orders_live/internal/notify"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/internal/usecase"
)

// ErrAlreadyStarted — повторный Start без Stop.
var ErrAlreadyStarted = errors.New("engine already started")

// Engine — фасад над хранилищем, подписчиком и шлюзом мутаций.
// Держит ровно одну горутину подписчика между Start и Stop.
type Engine struct {
	store      ports.OrderStore
	subscriber *feed.Subscriber
	gateway    *usecase.OrderGateway
	dispatcher *notify.Dispatcher
	log        ports.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New — конструктор движка.
func New(
	store ports.OrderStore,
	subscriber *feed.Subscriber,
	gateway *usecase.OrderGateway,
	dispatcher *notify.Dispatcher,
	log ports.Logger,
) *Engine {
	return &Engine{
		store:      store,
		subscriber: subscriber,
		gateway:    gateway,
		dispatcher: dispatcher,
		log:        log,
	}
}

// Start — запускает цикл подписки в отдельной горутине.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		if err := e.subscriber.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			e.log.Errorf(runCtx, "subscriber stopped: %v", err)
		}
	}(e.done)

	return nil
}

// Stop — останавливает подписчика и ждёт завершения его горутины.
// Повторный Stop безопасен.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// List — снимок заказов, новые первыми.
func (e *Engine) List() []*domain.Order { return e.store.List() }

// Loading — true только до завершения первой полной выборки.
func (e *Engine) Loading() bool { return e.subscriber.Loading() }

// State — состояние цикла подписки.
func (e *Engine) State() feed.State { return e.subscriber.State() }

// Arrivals — канал подлинно новых заказов.
func (e *Engine) Arrivals() <-chan *domain.Order { return e.dispatcher.Arrivals() }

// Refetch — ручная полная пересинхронизация без пересоздания подписки.
func (e *Engine) Refetch(ctx context.Context) error { return e.subscriber.Refetch(ctx) }

// CreateOrder — делегирование в шлюз мутаций.
func (e *Engine) CreateOrder(ctx context.Context, draft *domain.Order) usecase.Result {
	return e.gateway.CreateOrder(ctx, draft)
}

// UpdateOrderStatus — делегирование в шлюз мутаций.
func (e *Engine) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) usecase.Result {
	return e.gateway.UpdateOrderStatus(ctx, id, status)
}

// DeleteOrder — делегирование в шлюз мутаций.
func (e *Engine) DeleteOrder(ctx context.Context, id string) usecase.Result {
	return e.gateway.DeleteOrder(ctx, id)
}
