package feed

import (
	"sync/atomic"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
)

// Handle — одно логическое подключение к ленте изменений.
// После Supersede хэндл инертен: его события никогда не применяются,
// даже если транспорт успел их доставить (гонка при реконнекте).
type Handle struct {
	conn       ports.FeedConn
	superseded atomic.Bool
}

func newHandle(conn ports.FeedConn) *Handle {
	return &Handle{conn: conn}
}

// Events — события нижележащего подключения.
func (h *Handle) Events() <-chan domain.ChangeEvent { return h.conn.Events() }

// Err — терминальная ошибка нижележащего подключения.
func (h *Handle) Err() <-chan error { return h.conn.Err() }

// Supersede — пометить хэндл вытесненным и закрыть транспорт. Идемпотентен.
func (h *Handle) Supersede() {
	if h.superseded.CompareAndSwap(false, true) {
		_ = h.conn.Close()
	}
}

// Superseded — был ли хэндл вытеснен.
func (h *Handle) Superseded() bool { return h.superseded.Load() }
