package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
)

// Проверка, что OrderRemote удовлетворяет интерфейсу RemoteOrders.
var _ ports.RemoteOrders = (*OrderRemote)(nil)

// OrderRemote — реализация удалённого хранилища заказов на Postgres (pgxpool).
// Хранилище авторитетно: id и таймстемпы назначаются здесь, вызывающая
// сторона получает подтверждённую запись через RETURNING.
type OrderRemote struct {
	pool *pgxpool.Pool
}

// NewOrderRemote - конструктор OrderRemote.
func NewOrderRemote(pool *pgxpool.Pool) *OrderRemote { return &OrderRemote{pool: pool} }

const orderColumns = `
	id, customer_name, customer_phone, items, total_amount,
	status, payment_method, notes, created_at, updated_at`

// ListAll — полная выборка заказов, новые первыми.
func (r *OrderRemote) ListAll(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", mapPgErr(err))
	}
	defer rows.Close()

	var result []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", mapPgErr(err))
	}
	return result, nil
}

// Insert — создать заказ. Пустой id заменяется на новый uuid,
// статус и способ оплаты получают значения по умолчанию.
func (r *OrderRemote) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrValidation
	}

	id := order.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := order.Status
	if status == "" {
		status = domain.StatusPending
	}
	payment := order.PaymentMethod
	if payment == "" {
		payment = domain.PaymentCash
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO orders (
			id, customer_name, customer_phone, items, total_amount,
			status, payment_method, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+orderColumns,
		id, order.CustomerName, order.CustomerPhone, items, order.TotalAmount,
		status, payment, order.Notes,
	)

	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", mapPgErr(err))
	}
	return created, nil
}

// UpdateStatus — обновление статуса по id; updated_at назначает БД.
func (r *OrderRemote) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns,
		id, status,
	)

	updated, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", mapPgErr(err))
	}
	return updated, nil
}

// Delete — удалить заказ по id. Отсутствующая запись — не ошибка:
// повторное удаление идемпотентно.
func (r *OrderRemote) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", mapPgErr(err))
	}
	return nil
}

// pgx.Row и pgx.Rows сканируются одинаково.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order domain.Order
		items []byte
	)
	if err := row.Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &items, &order.TotalAmount,
		&order.Status, &order.PaymentMethod, &order.Notes, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &order, nil
}

// mapPgErr — переводит коды Postgres в доменные ошибки,
// по которым шлюз мутаций подбирает сообщение пользователю.
func mapPgErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, pgErr.ConstraintName)
	case "23503": // foreign_key_violation
		return fmt.Errorf("%w: %s", domain.ErrReference, pgErr.ConstraintName)
	case "42501": // insufficient_privilege
		return fmt.Errorf("%w: %s", domain.ErrPermission, pgErr.Message)
	}
	return err
}
