package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/orders_live/internal/domain"
	myka "github.com/Gunvolt24/orders_live/internal/feed/kafka"
)

// Генератор CDC-событий для ручной проверки панели: пишет в топик
// конверты insert/update/delete со случайными заказами.

var customers = []struct{ name, phone string }{
	{"Kari Nordmann", "+47 912 34 567"},
	{"Ola Hansen", "+47 400 11 222"},
	{"Ingrid Berg", "+47 988 77 665"},
	{"Lars Dahl", "+47 455 66 778"},
}

var menu = []domain.Item{
	{Name: "Margherita", Price: 149},
	{Name: "Pepperoni", Price: 169},
	{Name: "Quattro Formaggi", Price: 189},
	{Name: "Cola 0.5", Price: 39},
}

func randomOrder() *domain.Order {
	c := customers[rand.Intn(len(customers))]

	n := 1 + rand.Intn(3)
	items := make([]domain.Item, 0, n)
	total := 0.0
	for i := 0; i < n; i++ {
		it := menu[rand.Intn(len(menu))]
		it.Quantity = 1 + rand.Intn(2)
		items = append(items, it)
		total += it.Price * float64(it.Quantity)
	}

	now := time.Now().UTC()
	return &domain.Order{
		ID:            uuid.NewString(),
		CustomerName:  c.name,
		CustomerPhone: c.phone,
		Items:         items,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		PaymentMethod: domain.PaymentCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "comma-separated kafka brokers")
	topic := flag.String("topic", "orders", "topic to publish to")
	count := flag.Int("n", 10, "number of insert events (0 = until interrupted)")
	interval := flag.Duration("interval", 2*time.Second, "pause between events")
	lifecycle := flag.Bool("lifecycle", false, "also publish update and delete for every order")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:    *topic,
		Balancer: &kafka.LeastBytes{},
	}
	defer func() { _ = w.Close() }()

	publish := func(ev domain.ChangeEvent) error {
		raw, err := myka.EncodeEnvelope(ev)
		if err != nil {
			return err
		}
		return w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.ID()), Value: raw})
	}

	sent := 0
	for ctx.Err() == nil && (*count == 0 || sent < *count) {
		order := randomOrder()
		if err := publish(domain.ChangeEvent{Type: domain.EventInsert, Order: order}); err != nil {
			fmt.Fprintf(os.Stderr, "publish insert: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("insert %s (%s, %.2f)\n", order.ID, order.CustomerName, order.TotalAmount)
		sent++

		if *lifecycle {
			updated := order.Clone()
			updated.Status = domain.StatusPreparing
			if err := publish(domain.ChangeEvent{Type: domain.EventUpdate, Order: updated}); err != nil {
				fmt.Fprintf(os.Stderr, "publish update: %v\n", err)
				os.Exit(1)
			}
			if err := publish(domain.ChangeEvent{Type: domain.EventDelete, OrderID: order.ID}); err != nil {
				fmt.Fprintf(os.Stderr, "publish delete: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  + update/delete %s\n", order.ID)
		}

		select {
		case <-ctx.Done():
		case <-time.After(*interval):
		}
	}
}
