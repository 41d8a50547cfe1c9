package kafka

import (
	"context"
	"errors"
	"sync"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Source удовлетворяет порту приложения.
var _ ports.ChangeFeed = (*Source)(nil)

// reader — минимальный контракт над kafka.Reader,
// чтобы легко подменять его фейками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Source — лента изменений поверх CDC-топика Kafka.
// Каждый Subscribe открывает отдельный reader; политика переподключения
// целиком на стороне подписчика — первая же ошибка чтения терминальна
// для подключения.
type Source struct {
	cfg SourceConfig
	log ports.Logger

	// newReader вынесен для тестов.
	newReader func() reader
}

func NewSource(cfg SourceConfig, log ports.Logger) *Source {
	s := &Source{cfg: cfg, log: log}
	s.newReader = func() reader { return kafka.NewReader(cfg.ReaderConfig()) }
	return s
}

// Subscribe — открывает подключение и запускает горутину доставки.
func (s *Source) Subscribe(ctx context.Context) (ports.FeedConn, error) {
	conn := &Conn{
		reader: s.newReader(),
		log:    s.log,
		events: make(chan domain.ChangeEvent, s.cfg.queueSize()),
		errs:   make(chan error, 1),
	}

	runCtx, cancel := context.WithCancel(context.Background())
	conn.cancel = cancel
	go conn.run(runCtx)

	// Отмена внешнего контекста закрывает подключение.
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-runCtx.Done():
		}
	}()

	return conn, nil
}

// Conn — одно подключение к топику.
type Conn struct {
	reader reader
	log    ports.Logger

	events chan domain.ChangeEvent
	errs   chan error

	cancel    context.CancelFunc
	closeOnce sync.Once
}

func (c *Conn) Events() <-chan domain.ChangeEvent { return c.events }
func (c *Conn) Err() <-chan error                 { return c.errs }

// Close — останавливает доставку и закрывает reader. Идемпотентен.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.reader.Close()
	})
	return err
}

// run — цикл доставки:
// 1) читаем сообщение без автокоммита;
// 2) малформенный конверт → лог и коммит (пропускаем навсегда);
// 3) доставленное событие → коммит оффсета (at-least-once, дедуп у подписчика);
// 4) ошибка чтения → терминальна, сообщаем подписчику и выходим.
func (c *Conn) run(ctx context.Context) {
	defer close(c.events)

	for {
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			if ctx.Err() != nil || errors.Is(fetchErr, context.Canceled) {
				return
			}
			c.errs <- fetchErr
			return
		}

		ev, decErr := DecodeEnvelope(msg.Value)
		if decErr != nil {
			c.log.Warnf(ctx, "malformed feed message offset=%d: %v (skipped)", msg.Offset, decErr)
			c.commitSafely(ctx, &msg)
			continue
		}

		select {
		case c.events <- ev:
		case <-ctx.Done():
			return
		}

		c.commitSafely(ctx, &msg)
	}
}

// commitSafely — коммитит оффсет и логирует ошибку.
func (c *Conn) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil && ctx.Err() == nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}
