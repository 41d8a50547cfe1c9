package engine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/engine"
	"github.com/Gunvolt24/orders_live/internal/feed"
	"github.com/Gunvolt24/orders_live/internal/notify"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/internal/store/memory"
	"github.com/Gunvolt24/orders_live/internal/usecase"
	"github.com/Gunvolt24/orders_live/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type fakeConn struct {
	events chan domain.ChangeEvent
	errs   chan error
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{events: make(chan domain.ChangeEvent, 16), errs: make(chan error, 1)}
}

func (c *fakeConn) Events() <-chan domain.ChangeEvent { return c.events }
func (c *fakeConn) Err() <-chan error                 { return c.errs }
func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.events) })
	return nil
}

type fakeFeed struct {
	mu   sync.Mutex
	conn *fakeConn
}

func (f *fakeFeed) Subscribe(context.Context) (ports.FeedConn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conn = newFakeConn()
	return f.conn, nil
}

func (f *fakeFeed) push(ev domain.ChangeEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conn.events <- ev
}

// fakeRemote — авторитетное хранилище в памяти: назначает id и таймстемпы.
type fakeRemote struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*domain.Order
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{orders: make(map[string]*domain.Order)}
}

func (r *fakeRemote) ListAll(context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *fakeRemote) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	created := order.Clone()
	if created.ID == "" {
		created.ID = fmt.Sprintf("srv-%d", r.seq)
	}
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	r.orders[created.ID] = created
	return created.Clone(), nil
}

func (r *fakeRemote) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return o.Clone(), nil
}

func (r *fakeRemote) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func newEngine(t *testing.T) (*engine.Engine, *fakeFeed, *fakeRemote) {
	t.Helper()

	feedSrc := &fakeFeed{}
	remote := newFakeRemote()
	store := memory.NewOrderStore()
	dispatcher := notify.NewDispatcher(nil, nil, noopLogger{})
	sub := feed.NewSubscriber(feedSrc, remote, store, dispatcher, noopLogger{}, 10*time.Millisecond)
	gateway := usecase.NewOrderGateway(remote, store, validate.NewOrderValidator(), dispatcher, noopLogger{}, "en")

	e := engine.New(store, sub, gateway, dispatcher, noopLogger{})

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(e.Stop)

	waitFor(t, func() bool { return !e.Loading() }, "initial fetch did not finish")
	return e, feedSrc, remote
}

func TestEngine_StartSeedsAndDeliversEvents(t *testing.T) {
	e, feedSrc, _ := newEngine(t)

	if got := e.List(); len(got) != 0 {
		t.Fatalf("want empty store, got %d", len(got))
	}

	arrived := &domain.Order{ID: "o-1", CustomerName: "Kari", Status: domain.StatusPending}
	feedSrc.push(domain.ChangeEvent{Type: domain.EventInsert, Order: arrived})

	waitFor(t, func() bool { return len(e.List()) == 1 }, "insert not applied")

	select {
	case got := <-e.Arrivals():
		if got.ID != "o-1" {
			t.Fatalf("arrival mismatch: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("arrival notification missing")
	}
}

func TestEngine_MutationsReflectLocally(t *testing.T) {
	e, _, remote := newEngine(t)

	res := e.CreateOrder(context.Background(), &domain.Order{
		CustomerName:  "Ola",
		CustomerPhone: "+47 900 00 002",
		Items:         []domain.Item{{Name: "Pepperoni", Price: 169, Quantity: 1}},
		TotalAmount:   169,
	})
	if !res.OK() {
		t.Fatalf("create failed: %+v", res)
	}
	id := res.Order.ID

	// подтверждённый результат отражён локально, не дожидаясь эха ленты
	if got := e.List(); len(got) != 1 || got[0].ID != id {
		t.Fatalf("created order not reflected: %+v", got)
	}

	if res := e.UpdateOrderStatus(context.Background(), id, domain.StatusPreparing); !res.OK() {
		t.Fatalf("update failed: %+v", res)
	}
	if got := e.List(); got[0].Status != domain.StatusPreparing {
		t.Fatalf("status not reflected: %+v", got[0])
	}

	if res := e.DeleteOrder(context.Background(), id); !res.OK() {
		t.Fatalf("delete failed: %+v", res)
	}
	if got := e.List(); len(got) != 0 {
		t.Fatalf("delete not reflected: %+v", got)
	}
	if all, _ := remote.ListAll(context.Background()); len(all) != 0 {
		t.Fatalf("remote still holds orders: %+v", all)
	}
}

func TestEngine_RefetchResyncs(t *testing.T) {
	e, _, remote := newEngine(t)

	// запись появилась в удалённом хранилище мимо ленты
	_, err := remote.Insert(context.Background(), &domain.Order{CustomerName: "Kari", CustomerPhone: "1"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := e.Refetch(context.Background()); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := e.List(); len(got) != 1 {
		t.Fatalf("refetch did not seed store: %+v", got)
	}
}

func TestEngine_DoubleStartAndStop(t *testing.T) {
	e, _, _ := newEngine(t)

	if err := e.Start(context.Background()); err != engine.ErrAlreadyStarted {
		t.Fatalf("want ErrAlreadyStarted, got %v", err)
	}

	e.Stop()
	e.Stop() // повторный Stop безопасен

	if got := e.State(); got != feed.StateClosed {
		t.Fatalf("want closed state, got %s", got)
	}
}
