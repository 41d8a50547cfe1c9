package validate

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/Gunvolt24/orders_live/internal/domain"
	"github.com/Gunvolt24/orders_live/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// OrderValidator — структурная валидация заказа по тегам домена.
// Возвращает domain.ErrValidation (с обёрнутой причиной) при любой проблеме.
type OrderValidator struct {
	v *validator.Validate
}

// NewOrderValidator — конструктор OrderValidator.
func NewOrderValidator() *OrderValidator {
	return &OrderValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate — проверяет корректность полей заказа до обращения к удалённой стороне.
func (ov *OrderValidator) Validate(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", domain.ErrValidation)
	}
	if err := ov.v.Struct(order); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: поле %s не прошло правило %q", domain.ErrValidation, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
