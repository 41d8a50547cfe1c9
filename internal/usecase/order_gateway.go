package usecase

import (
	"context"
	"time"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/pkg/i18n"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
)

// Announcer — приёмник тостов об исходе мутации (успех и ошибка).
type Announcer interface {
	Announce(ctx context.Context, text string, emphasis bool)
}

// Result — исход мутации. Ошибка никогда не уходит наверх «сырой»:
// поле Kind классифицировано, Message локализовано и готово к показу.
type Result struct {
	Order   *domain.Order    // подтверждённая запись при успехе
	Err     error            // первопричина (для логов), nil при успехе
	Kind    domain.ErrorKind // классификация при ошибке
	Message string           // локализованный текст для пользователя
}

// OK — успешность операции.
func (r Result) OK() bool { return r.Err == nil }

// OrderGateway — шлюз мутаций заказов (без знаний о транспорте).
// Удалённый сервис авторитетен: локальное хранилище обновляется только
// подтверждёнными записями из ответа. Повторов нет — политика переподключения
// живёт в подписчике ленты.
type OrderGateway struct {
	remote    ports.RemoteOrders   // прямой доступ к удалённому сервису
	store     ports.OrderStore     // локальное хранилище для отражения результата
	validator ports.OrderValidator // проверка ввода до удалённого вызова
	announcer Announcer            // тосты об исходе
	log       ports.Logger         // прямой доступ к логгеру
	lang      string               // язык сообщений пользователю
}

// NewOrderGateway — DI-конструктор. announcer может быть nil.
func NewOrderGateway(
	remote ports.RemoteOrders,
	store ports.OrderStore,
	validator ports.OrderValidator,
	announcer Announcer,
	log ports.Logger,
	lang string,
) *OrderGateway {
	return &OrderGateway{
		remote:    remote,
		store:     store,
		validator: validator,
		announcer: announcer,
		log:       log,
		lang:      lang,
	}
}

// CreateOrder — создать заказ.
// Шаги:
//  1. дефолты: payment_method=cash, status=pending;
//  2. валидация до удалённого вызова (ошибка — без похода в сеть);
//  3. Insert в удалённый сервис, ответ — подтверждённая запись;
//  4. отражение подтверждённой записи в локальное хранилище.
func (g *OrderGateway) CreateOrder(ctx context.Context, draft *domain.Order) Result {
	if draft == nil {
		return g.fail(ctx, i18n.OpCreate, domain.ErrValidation)
	}

	order := draft.Clone()
	if order.PaymentMethod == "" {
		order.PaymentMethod = domain.PaymentCash
	}
	if order.Status == "" {
		order.Status = domain.StatusPending
	}

	if err := g.validator.Validate(ctx, order); err != nil {
		g.log.Warnf(ctx, "валидация заказа: %v", err)
		return g.fail(ctx, i18n.OpCreate, err)
	}

	start := time.Now()
	created, err := g.remote.Insert(ctx, order)
	if err != nil {
		g.log.Errorf(ctx, "remote.Insert: %v", err)
		return g.fail(ctx, i18n.OpCreate, err)
	}
	g.log.Infof(ctx, "заказ %s создан за %s", created.ID, time.Since(start))

	g.store.Upsert(created)
	return g.ok(ctx, i18n.OpCreate, created)
}

// UpdateOrderStatus — обновить статус заказа по id.
// Неизвестный статус отклоняется до удалённого вызова; внепотоковые
// переходы не блокируются — удалённый сервис авторитетен.
func (g *OrderGateway) UpdateOrderStatus(ctx context.Context, id string, status domain.Status) Result {
	if id == "" || !status.IsValid() {
		return g.fail(ctx, i18n.OpUpdateStatus, domain.ErrValidation)
	}

	updated, err := g.remote.UpdateStatus(ctx, id, status)
	if err != nil {
		g.log.Errorf(ctx, "remote.UpdateStatus id=%s: %v", id, err)
		return g.fail(ctx, i18n.OpUpdateStatus, err)
	}

	g.store.Upsert(updated)
	return g.ok(ctx, i18n.OpUpdateStatus, updated)
}

// DeleteOrder — удалить заказ по id.
func (g *OrderGateway) DeleteOrder(ctx context.Context, id string) Result {
	if id == "" {
		return g.fail(ctx, i18n.OpDelete, domain.ErrValidation)
	}

	if err := g.remote.Delete(ctx, id); err != nil {
		g.log.Errorf(ctx, "remote.Delete id=%s: %v", id, err)
		return g.fail(ctx, i18n.OpDelete, err)
	}

	g.store.Remove(id)
	return g.ok(ctx, i18n.OpDelete, nil)
}

func (g *OrderGateway) ok(ctx context.Context, op i18n.Op, order *domain.Order) Result {
	metrics.Mutations.WithLabelValues(string(op), "ok").Inc()

	msg := i18n.SuccessMessage(g.lang, op)
	if g.announcer != nil {
		g.announcer.Announce(ctx, msg, false)
	}
	return Result{Order: order, Message: msg}
}

func (g *OrderGateway) fail(ctx context.Context, op i18n.Op, err error) Result {
	metrics.Mutations.WithLabelValues(string(op), "error").Inc()

	kind := domain.Classify(err)
	msg := i18n.Message(g.lang, kind)
	if g.announcer != nil {
		g.announcer.Announce(ctx, msg, true)
	}
	return Result{Err: err, Kind: kind, Message: msg}
}
