package feed

import (
	"context"
	"time"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
)

// consume — обрабатывает события хэндла до терминальной ошибки или отмены.
// Один цикл на хэндл: порядок применения равен порядку доставки.
func (s *Subscriber) consume(ctx context.Context, h *Handle) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-h.Events():
			if !ok {
				return s.terminalErr(h)
			}
			s.Apply(ctx, h, ev)

		case err := <-h.Err():
			if err == nil {
				err = domain.ErrSubscription
			}
			return err
		}
	}
}

// Apply — применяет одно событие к хранилищу.
// insert: upsert + классификация подлинного прибытия (уведомление один раз);
// update: безусловный upsert, без уведомления;
// delete: безусловный remove.
// События вытесненного хэндла отбрасываются до любых побочных эффектов.
func (s *Subscriber) Apply(ctx context.Context, h *Handle, ev domain.ChangeEvent) {
	if h.Superseded() {
		metrics.FeedEventsDiscarded.Inc()
		return
	}

	metrics.FeedEventsReceived.WithLabelValues(string(ev.Type)).Inc()

	switch ev.Type {
	case domain.EventInsert:
		if ev.Order == nil {
			s.log.Warnf(ctx, "insert event without record id=%s (skipped)", ev.OrderID)
			return
		}
		if inserted := s.store.Upsert(ev.Order); inserted {
			// Подлинное прибытие: id раньше в хранилище не было.
			s.notifier.OrderArrived(ctx, ev.Order)
		} else {
			// Эхо собственной мутации или повтор после ресинка — тихое обновление.
			s.log.Infof(ctx, "insert for known order id=%s applied as update", ev.Order.ID)
		}

	case domain.EventUpdate:
		if ev.Order == nil {
			s.log.Warnf(ctx, "update event without record id=%s (skipped)", ev.OrderID)
			return
		}
		s.store.Upsert(ev.Order)

	case domain.EventDelete:
		id := ev.ID()
		if id == "" {
			s.log.Warnf(ctx, "delete event without id (skipped)")
			return
		}
		s.store.Remove(id)

	default:
		s.log.Warnf(ctx, "unknown event type %q id=%s (skipped)", ev.Type, ev.ID())
		return
	}

	metrics.FeedEventsApplied.WithLabelValues(string(ev.Type)).Inc()
}

// terminalErr — причина закрытия канала событий; если транспорт её не
// сообщил, считаем обрыв подписки.
func (s *Subscriber) terminalErr(h *Handle) error {
	select {
	case err := <-h.Err():
		if err != nil {
			return err
		}
	default:
	}
	return domain.ErrSubscription
}

// waitReconnect — отменяемая пауза фиксированной длины.
// false — контекст отменён, цикл должен завершиться.
func (s *Subscriber) waitReconnect(ctx context.Context) bool {
	timer := time.NewTimer(s.reconnectDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
