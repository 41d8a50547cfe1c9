package ports

import (
	"context"

	"github.com/Gunvolt24/orders_live/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, order *domain.Order) error
}
