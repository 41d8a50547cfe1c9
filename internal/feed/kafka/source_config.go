package kafka

import (
	"strings"

	"github.com/segmentio/kafka-go"
)

// SourceConfig — настройки подключения к CDC-топику заказов.
type SourceConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string

	// QueueSize — буфер канала событий одного подключения.
	QueueSize int
}

// ReaderConfig — конфигурация kafka.Reader; ручной коммит оффсетов.
func (c *SourceConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		CommitInterval: 0,
	}

	switch strings.ToLower(strings.TrimSpace(c.StartOffset)) {
	case "first":
		rc.StartOffset = kafka.FirstOffset
	default:
		rc.StartOffset = kafka.LastOffset
	}

	return rc
}

func (c *SourceConfig) queueSize() int {
	if c.QueueSize <= 0 {
		return 64
	}
	return c.QueueSize
}
