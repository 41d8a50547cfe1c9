package kafka

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

// Envelope — обёртка CDC-события в топике заказов.
// Для delete удалённая сторона присылает только ключ старой записи.
type Envelope struct {
	EventType string        `json:"event_type"`
	Record    *domain.Order `json:"record,omitempty"`
	OldRecord *RecordKey    `json:"old_record,omitempty"`
}

// RecordKey — ключ записи в old_record.
type RecordKey struct {
	ID string `json:"id"`
}

// DecodeEnvelope — разбирает сырое сообщение топика в доменное событие.
// Тип события нормализуется без учёта регистра (источник шлёт INSERT/UPDATE/DELETE).
func DecodeEnvelope(raw []byte) (domain.ChangeEvent, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("invalid envelope json: %w", err)
	}

	var ev domain.ChangeEvent
	switch strings.ToLower(strings.TrimSpace(env.EventType)) {
	case "insert":
		ev.Type = domain.EventInsert
	case "update":
		ev.Type = domain.EventUpdate
	case "delete":
		ev.Type = domain.EventDelete
	default:
		return domain.ChangeEvent{}, fmt.Errorf("unknown event_type %q", env.EventType)
	}

	ev.Order = env.Record
	if env.OldRecord != nil {
		ev.OrderID = env.OldRecord.ID
	}

	switch ev.Type {
	case domain.EventInsert, domain.EventUpdate:
		if env.Record == nil || env.Record.ID == "" {
			return domain.ChangeEvent{}, fmt.Errorf("%s event without record", ev.Type)
		}
	case domain.EventDelete:
		if ev.ID() == "" {
			return domain.ChangeEvent{}, fmt.Errorf("delete event without record key")
		}
	}

	return ev, nil
}

// EncodeEnvelope — обратная операция; используется генератором событий и тестами.
func EncodeEnvelope(ev domain.ChangeEvent) ([]byte, error) {
	env := Envelope{EventType: string(ev.Type), Record: ev.Order}
	if ev.Type == domain.EventDelete {
		env.Record = nil
		env.OldRecord = &RecordKey{ID: ev.ID()}
	}
	return json.Marshal(env)
}
