// Package notify — доставка уведомлений о заказах интерфейсному слою.
// Всё best-effort: сбой звука или тоста логируется и не
// останавливает обработку событий.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
)

// Проверка, что Dispatcher удовлетворяет интерфейсу ArrivalNotifier.
var _ ports.ArrivalNotifier = (*Dispatcher)(nil)

// DefaultToastDuration — сколько тост остаётся на экране.
const DefaultToastDuration = 8 * time.Second

// DefaultArrivalsBuffer — ёмкость канала прибытий.
const DefaultArrivalsBuffer = 64

// Toast — одно всплывающее уведомление.
type Toast struct {
	Text     string
	Emphasis bool // визуальный акцент для новых заказов
	Duration time.Duration
}

// ToastSink — приёмник тостов (SSE-хаб, консоль).
type ToastSink interface {
	ShowToast(ctx context.Context, t Toast) error
}

// SoundPlayer — звуковой сигнал нового заказа.
// Перед воспроизведением сигнал перематывается на начало,
// чтобы быстрые подряд заказы звучали каждый раз.
type SoundPlayer interface {
	Rewind() error
	Play() error
}

// Dispatcher — раздаёт уведомления о подлинно новых заказах:
// звук, тост и буферизованный канал для наблюдателей.
type Dispatcher struct {
	toasts   ToastSink
	sound    SoundPlayer
	log      ports.Logger
	duration time.Duration
	arrivals chan *domain.Order
}

// Option — настройка Dispatcher.
type Option func(*Dispatcher)

// WithToastDuration — переопределить длительность тоста.
func WithToastDuration(d time.Duration) Option {
	return func(dp *Dispatcher) {
		if d > 0 {
			dp.duration = d
		}
	}
}

// WithArrivalsBuffer — переопределить ёмкость канала прибытий.
func WithArrivalsBuffer(n int) Option {
	return func(dp *Dispatcher) {
		if n > 0 {
			dp.arrivals = make(chan *domain.Order, n)
		}
	}
}

// NewDispatcher — конструктор. toasts и sound могут быть nil —
// тогда соответствующий канал уведомлений просто не используется.
func NewDispatcher(toasts ToastSink, sound SoundPlayer, log ports.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		toasts:   toasts,
		sound:    sound,
		log:      log,
		duration: DefaultToastDuration,
		arrivals: make(chan *domain.Order, DefaultArrivalsBuffer),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OrderArrived — уведомление о впервые увиденном заказе.
// Не блокируется: полный канал прибытий приводит к потере
// уведомления с записью в лог, обработка событий продолжается.
func (d *Dispatcher) OrderArrived(ctx context.Context, order *domain.Order) {
	if order == nil {
		return
	}
	metrics.Notifications.WithLabelValues("emitted").Inc()

	d.playCue(ctx)

	text := fmt.Sprintf("Новый заказ: %s — %.2f", order.CustomerName, order.TotalAmount)
	d.showToast(ctx, Toast{Text: text, Emphasis: true, Duration: d.duration})

	select {
	case d.arrivals <- order.Clone():
	default:
		metrics.Notifications.WithLabelValues("dropped").Inc()
		d.log.Warnf(ctx, "канал прибытий переполнен, уведомление о заказе %s потеряно", order.ID)
	}
}

// Announce — произвольный тост от шлюза мутаций (успех или ошибка).
func (d *Dispatcher) Announce(ctx context.Context, text string, emphasis bool) {
	d.showToast(ctx, Toast{Text: text, Emphasis: emphasis, Duration: d.duration})
}

// Arrivals — канал подлинно новых заказов для интерфейсного слоя.
func (d *Dispatcher) Arrivals() <-chan *domain.Order { return d.arrivals }

func (d *Dispatcher) playCue(ctx context.Context) {
	if d.sound == nil {
		return
	}
	if err := d.sound.Rewind(); err != nil {
		metrics.Notifications.WithLabelValues("sound_failed").Inc()
		d.log.Warnf(ctx, "перемотка звукового сигнала: %v", err)
		return
	}
	if err := d.sound.Play(); err != nil {
		metrics.Notifications.WithLabelValues("sound_failed").Inc()
		d.log.Warnf(ctx, "воспроизведение звукового сигнала: %v", err)
	}
}

func (d *Dispatcher) showToast(ctx context.Context, t Toast) {
	if d.toasts == nil {
		return
	}
	if err := d.toasts.ShowToast(ctx, t); err != nil {
		d.log.Warnf(ctx, "показ тоста: %v", err)
	}
}
