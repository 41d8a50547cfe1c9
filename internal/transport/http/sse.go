package rest

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/notify"
	"github.com/Gunvolt24/orders_live/internal/ports"
)

// Проверка, что Hub удовлетворяет интерфейсу ToastSink.
var _ notify.ToastSink = (*Hub)(nil)

// clientBuffer — ёмкость очереди одного SSE-клиента.
const clientBuffer = 16

// Event — одно SSE-сообщение для приборной панели.
type Event struct {
	Name string // toast | order_arrived
	Data []byte // готовый JSON
}

// Hub — раздаёт события всем подключённым SSE-клиентам.
// Отправка неблокирующая: медленный клиент теряет события,
// обработка лент и мутаций не останавливается.
type Hub struct {
	log ports.Logger

	mu      sync.Mutex
	clients map[chan Event]struct{}
}

// NewHub — конструктор.
func NewHub(log ports.Logger) *Hub {
	return &Hub{log: log, clients: make(map[chan Event]struct{})}
}

// Subscribe — регистрирует клиента; cancel снимает регистрацию.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, clientBuffer)

	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// ClientCount — число подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ShowToast — трансляция тоста на панель (реализация notify.ToastSink).
func (h *Hub) ShowToast(ctx context.Context, t notify.Toast) error {
	payload, err := json.Marshal(map[string]any{
		"text":        t.Text,
		"emphasis":    t.Emphasis,
		"duration_ms": t.Duration.Milliseconds(),
	})
	if err != nil {
		return err
	}
	h.broadcast(ctx, Event{Name: "toast", Data: payload})
	return nil
}

// PumpArrivals — читает канал прибытий и транслирует каждый заказ
// как событие order_arrived, пока контекст жив.
func (h *Hub) PumpArrivals(ctx context.Context, arrivals <-chan *domain.Order) {
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-arrivals:
			if !ok {
				return
			}
			payload, err := json.Marshal(order)
			if err != nil {
				h.log.Warnf(ctx, "marshal arrival %s: %v", order.ID, err)
				continue
			}
			h.broadcast(ctx, Event{Name: "order_arrived", Data: payload})
		}
	}
}

func (h *Hub) broadcast(ctx context.Context, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			// очередь клиента полна — событие для него теряется
			h.log.Warnf(ctx, "sse client too slow, dropped %s event", ev.Name)
		}
	}
}

// keepAliveInterval — период комментариев-пингов, чтобы промежуточные
// прокси не закрывали простаивающее SSE-соединение.
const keepAliveInterval = 25 * time.Second
