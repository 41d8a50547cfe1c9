package feed

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
)

// State — состояние подписчика. Желаемый жизненный цикл:
// connecting → active → (backoff → connecting)* → closed.
type State int32

const (
	StateConnecting State = iota
	StateActive
	StateBackoff
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateActive:
		return "active"
	case StateBackoff:
		return "backoff"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// DefaultReconnectDelay — фиксированная пауза перед повторным подключением.
const DefaultReconnectDelay = 5 * time.Second

// Subscriber — держит ровно одно логически-активное подключение к ленте
// изменений и доставляет каждое событие в локальное хранилище ровно один раз.
// Повторное подключение — явный цикл состояний с отменяемым таймером,
// при каждом (ре)коннекте выполняется полная повторная выборка.
type Subscriber struct {
	feed     ports.ChangeFeed
	remote   ports.RemoteOrders
	store    ports.OrderStore
	notifier ports.ArrivalNotifier
	log      ports.Logger

	reconnectDelay time.Duration

	state   atomic.Int32
	loading atomic.Bool // true до первой успешной полной выборки
}

// NewSubscriber — конструктор. reconnectDelay <= 0 → DefaultReconnectDelay.
func NewSubscriber(
	feed ports.ChangeFeed,
	remote ports.RemoteOrders,
	store ports.OrderStore,
	notifier ports.ArrivalNotifier,
	log ports.Logger,
	reconnectDelay time.Duration,
) *Subscriber {
	if reconnectDelay <= 0 {
		reconnectDelay = DefaultReconnectDelay
	}
	s := &Subscriber{
		feed:           feed,
		remote:         remote,
		store:          store,
		notifier:       notifier,
		log:            log,
		reconnectDelay: reconnectDelay,
	}
	s.loading.Store(true)
	return s
}

// Run — основной цикл:
// 1) открываем подключение и сеем хранилище полной выборкой;
// 2) обрабатываем события в порядке доставки;
// 3) терминальная ошибка → суперсед хэндла, пауза, заново с шага 1;
// 4) отмена контекста → закрываем активный хэндл и выходим.
func (s *Subscriber) Run(ctx context.Context) error {
	defer s.setState(StateClosed)

	for {
		s.setState(StateConnecting)

		handle, err := s.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warnf(ctx, "feed connect failed: %v (retry in %s)", err, s.reconnectDelay)
			metrics.FeedReconnects.Inc()
			s.setState(StateBackoff)
			if !s.waitReconnect(ctx) {
				return ctx.Err()
			}
			continue
		}

		s.setState(StateActive)
		s.log.Infof(ctx, "feed subscription active orders=%d", s.store.Len())

		consumeErr := s.consume(ctx, handle)

		// Старый хэндл навсегда инертен: его поздние события отбрасываются.
		handle.Supersede()

		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.log.Warnf(ctx, "feed subscription lost: %v (reconnect in %s)", consumeErr, s.reconnectDelay)
		metrics.FeedReconnects.Inc()
		s.setState(StateBackoff)
		if !s.waitReconnect(ctx) {
			return ctx.Err()
		}
	}
}

// connect — открывает подписку и сеет хранилище полной выборкой.
// Порядок важен: подписка открывается ДО выборки, чтобы события,
// пришедшие во время выборки, не потерялись (идемпотентный upsert
// поглотит пересечение).
func (s *Subscriber) connect(ctx context.Context) (*Handle, error) {
	conn, err := s.feed.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.remote.ListAll(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	// Выборка, завершившаяся после остановки, не применяется.
	if ctx.Err() != nil {
		_ = conn.Close()
		return nil, ctx.Err()
	}

	s.store.ReplaceAll(orders)
	s.loading.Store(false)

	return newHandle(conn), nil
}

// Refetch — ручная полная пересинхронизация без пересоздания подписки.
func (s *Subscriber) Refetch(ctx context.Context) error {
	orders, err := s.remote.ListAll(ctx)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.store.ReplaceAll(orders)
	return nil
}

// Loading — true только во время самой первой полной выборки.
func (s *Subscriber) Loading() bool { return s.loading.Load() }

// State — текущее состояние цикла подписки.
func (s *Subscriber) State() State { return State(s.state.Load()) }

func (s *Subscriber) setState(st State) { s.state.Store(int32(st)) }
