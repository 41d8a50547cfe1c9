package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/engine"
	"github.com/Gunvolt24/orders_live/internal/feed"
	"github.com/Gunvolt24/orders_live/internal/notify"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/internal/store/memory"
	rest "github.com/Gunvolt24/orders_live/internal/transport/http"
	"github.com/Gunvolt24/orders_live/internal/usecase"
	"github.com/Gunvolt24/orders_live/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type stubConn struct {
	events chan domain.ChangeEvent
	errs   chan error
	once   sync.Once
}

func (c *stubConn) Events() <-chan domain.ChangeEvent { return c.events }
func (c *stubConn) Err() <-chan error                 { return c.errs }
func (c *stubConn) Close() error {
	c.once.Do(func() { close(c.events) })
	return nil
}

type stubFeed struct{}

func (stubFeed) Subscribe(context.Context) (ports.FeedConn, error) {
	return &stubConn{events: make(chan domain.ChangeEvent, 1), errs: make(chan error, 1)}, nil
}

// stubRemote — управляемое удалённое хранилище для HTTP-тестов.
type stubRemote struct {
	mu        sync.Mutex
	seq       int
	orders    map[string]*domain.Order
	insertErr error
	updateErr error
	deleteErr error
}

func newStubRemote() *stubRemote { return &stubRemote{orders: make(map[string]*domain.Order)} }

func (r *stubRemote) ListAll(context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (r *stubRemote) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, r.insertErr
	}
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

func (r *stubRemote) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	return o.Clone(), nil
}

func (r *stubRemote) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.orders, id)
	return nil
}

func newServer(t *testing.T, remote *stubRemote) (*gin.Engine, *engine.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := noopLogger{}
	store := memory.NewOrderStore()
	hub := rest.NewHub(log)
	dispatcher := notify.NewDispatcher(hub, nil, log)
	sub := feed.NewSubscriber(stubFeed{}, remote, store, dispatcher, log, time.Minute)
	gateway := usecase.NewOrderGateway(remote, store, validate.NewOrderValidator(), dispatcher, log, "en")
	eng := engine.New(store, sub, gateway, dispatcher, log)

	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("start engine: %v", err)
	}
	t.Cleanup(eng.Stop)

	deadline := time.Now().Add(2 * time.Second)
	for eng.Loading() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	h := rest.NewHandler(eng, hub, log)
	return rest.NewRouter(h, rest.RouterOptions{}), eng
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const draftJSON = `{
	"customer_name": "Kari",
	"customer_phone": "+47 912 34 567",
	"items": [{"name": "Margherita", "price": 149, "quantity": 1}],
	"total_amount": 149
}`

func TestHTTP_Ping(t *testing.T) {
	r, _ := newServer(t, newStubRemote())
	w := doJSON(t, r, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("ping: %d %q", w.Code, w.Body.String())
	}
}

func TestHTTP_CreateAndList(t *testing.T) {
	r, _ := newServer(t, newStubRemote())

	w := doJSON(t, r, http.MethodPost, "/orders", draftJSON)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	var created struct {
		Order   *domain.Order `json:"order"`
		Message string        `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Order.ID == "" || created.Order.Status != domain.StatusPending || created.Order.PaymentMethod != domain.PaymentCash {
		t.Fatalf("defaults not applied: %+v", created.Order)
	}
	if created.Message == "" {
		t.Fatalf("message missing")
	}

	lw := doJSON(t, r, http.MethodGet, "/orders", "")
	if lw.Code != http.StatusOK {
		t.Fatalf("list: %d", lw.Code)
	}
	var listed struct {
		Orders  []*domain.Order `json:"orders"`
		Loading bool            `json:"loading"`
	}
	if err := json.Unmarshal(lw.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Loading || len(listed.Orders) != 1 || listed.Orders[0].ID != created.Order.ID {
		t.Fatalf("list mismatch: %+v", listed)
	}
}

func TestHTTP_CreateValidationFails(t *testing.T) {
	r, _ := newServer(t, newStubRemote())

	w := doJSON(t, r, http.MethodPost, "/orders", `{"customer_name":"","customer_phone":"1","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"kind":"validation"`) {
		t.Fatalf("kind missing: %s", w.Body.String())
	}
}

func TestHTTP_ErrorKindStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", domain.ErrDuplicate, http.StatusConflict},
		{"reference", domain.ErrReference, http.StatusUnprocessableEntity},
		{"permission", domain.ErrPermission, http.StatusForbidden},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"network", fmt.Errorf("connection refused"), http.StatusBadGateway},
		{"unknown", fmt.Errorf("weird"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			remote := newStubRemote()
			remote.insertErr = tc.err
			r, _ := newServer(t, remote)

			w := doJSON(t, r, http.MethodPost, "/orders", draftJSON)
			if w.Code != tc.want {
				t.Fatalf("want %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestHTTP_UpdateStatus(t *testing.T) {
	remote := newStubRemote()
	r, _ := newServer(t, remote)

	cw := doJSON(t, r, http.MethodPost, "/orders", draftJSON)
	var created struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(cw.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w := doJSON(t, r, http.MethodPatch, "/orders/"+created.Order.ID+"/status", `{"status":"preparing"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"preparing"`) {
		t.Fatalf("updated order missing: %s", w.Body.String())
	}

	// неизвестный статус — отказ валидации до удалённого вызова
	bad := doJSON(t, r, http.MethodPatch, "/orders/"+created.Order.ID+"/status", `{"status":"teleported"}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", bad.Code)
	}
}

func TestHTTP_DeleteOrder(t *testing.T) {
	remote := newStubRemote()
	r, eng := newServer(t, remote)

	cw := doJSON(t, r, http.MethodPost, "/orders", draftJSON)
	var created struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(cw.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, "/orders/"+created.Order.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	if len(eng.List()) != 0 {
		t.Fatalf("order still present locally")
	}
}

func TestHTTP_Refetch(t *testing.T) {
	remote := newStubRemote()
	r, eng := newServer(t, remote)

	// запись появилась мимо ленты
	if _, err := remote.Insert(context.Background(), &domain.Order{CustomerName: "Kari", CustomerPhone: "1"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/orders/refetch", "")
	if w.Code != http.StatusOK {
		t.Fatalf("refetch: %d %s", w.Code, w.Body.String())
	}
	if len(eng.List()) != 1 {
		t.Fatalf("refetch did not reseed")
	}
}

func TestHTTP_InvalidJSONBody(t *testing.T) {
	r, _ := newServer(t, newStubRemote())

	w := doJSON(t, r, http.MethodPost, "/orders", `{broken`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestHTTP_Metrics(t *testing.T) {
	r, _ := newServer(t, newStubRemote())
	w := doJSON(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
}
