package memory

import (
	"container/list"
	"sync"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
	"github.com/Gunvolt24/orders_live/pkg/metrics"
)

// Проверка, что OrderStore удовлетворяет порту приложения.
var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore — упорядоченная in-memory коллекция заказов.
// Инварианты: не более одной записи на id; перечисление — от новых к старым
// (ReplaceAll задаёт порядок целиком, живые insert'ы встают в начало,
// замена по известному id сохраняет позицию).
type OrderStore struct {
	ll    *list.List               // порядок перечисления (front = новейший)
	index map[string]*list.Element // id → элемент списка

	mu sync.RWMutex
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		ll:    list.New(),
		index: make(map[string]*list.Element),
	}
}

// List — снимок текущего содержимого; возвращаются копии,
// мутации снаружи на хранилище не влияют.
func (s *OrderStore) List() []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Order, 0, s.ll.Len())
	for elem := s.ll.Front(); elem != nil; elem = elem.Next() {
		out = append(out, elem.Value.(*domain.Order).Clone())
	}
	return out
}

// Upsert — вставка в начало для неизвестного id, замена на месте для известного.
// Возвращает true только для настоящей вставки: по этому признаку подписчик
// классифицирует подлинное прибытие.
func (s *OrderStore) Upsert(order *domain.Order) bool {
	if order == nil || order.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[order.ID]; ok {
		elem.Value = order.Clone()
		metrics.StoreOps.WithLabelValues("replace").Inc()
		return false
	}

	s.index[order.ID] = s.ll.PushFront(order.Clone())
	metrics.StoreOps.WithLabelValues("insert").Inc()
	metrics.StoreSize.Set(float64(len(s.index)))
	return true
}

// Remove — удаление по id; отсутствие записи — не ошибка.
func (s *OrderStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.ll.Remove(elem)
	metrics.StoreOps.WithLabelValues("remove").Inc()
	metrics.StoreSize.Set(float64(len(s.index)))
	return true
}

// ReplaceAll — полная замена содержимого снимком от удалённого сервиса.
// Порядок orders принимается как есть; дубликаты id схлопываются
// (остаётся первая запись).
func (s *OrderStore) ReplaceAll(orders []*domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ll.Init()
	s.index = make(map[string]*list.Element, len(orders))

	for _, order := range orders {
		if order == nil || order.ID == "" {
			continue
		}
		if _, dup := s.index[order.ID]; dup {
			continue
		}
		s.index[order.ID] = s.ll.PushBack(order.Clone())
	}

	metrics.StoreOps.WithLabelValues("reseed").Inc()
	metrics.StoreSize.Set(float64(len(s.index)))
}

// Contains — известен ли id хранилищу.
func (s *OrderStore) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.index[id]
	return ok
}

// Len — число заказов.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.index)
}
