package domain

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ErrorKind — классификация отказов для пользовательских сообщений.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"   // некорректный ввод, до удалённого вызова не дошло
	KindNetwork      ErrorKind = "network"      // сетевая недоступность
	KindTimeout      ErrorKind = "timeout"      // удалённый сервис не ответил вовремя
	KindPermission   ErrorKind = "permission"   // запрет на запись со стороны удалённого сервиса
	KindDuplicate    ErrorKind = "duplicate"    // конфликт уникальности (23505)
	KindReference    ErrorKind = "reference"    // нарушение внешнего ключа (23503)
	KindSubscription ErrorKind = "subscription" // обрыв ленты изменений; пользователю не показывается
	KindUnknown      ErrorKind = "unknown"
)

var (
	// ErrValidation — базовая (sentinel error) ошибка валидации ввода.
	ErrValidation = errors.New("order validation failed")
	// ErrDuplicate — заказ с таким ключом уже существует.
	ErrDuplicate = errors.New("order already exists")
	// ErrReference — ссылка на несуществующую сущность (товар/пользователь).
	ErrReference = errors.New("order references unknown entity")
	// ErrPermission — удалённый сервис отклонил запись.
	ErrPermission = errors.New("write not permitted")
	// ErrNotFound — заказ не найден удалённым сервисом.
	ErrNotFound = errors.New("order not found")
	// ErrSubscription — терминальная ошибка подписки на ленту изменений.
	ErrSubscription = errors.New("change feed subscription failed")
)

// Classify — относит ошибку к одному из ErrorKind.
// Сначала проверяются sentinel-ошибки (их навешивает слой remote),
// затем контекст/сеть, в конце — подстроки сообщения (удалённый сервис
// не всегда даёт типизированную ошибку).
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrReference):
		return KindReference
	case errors.Is(err, ErrPermission):
		return KindPermission
	case errors.Is(err, ErrSubscription):
		return KindSubscription
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return KindTimeout
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection refused"), strings.Contains(msg, "fetch"):
		return KindNetwork
	case strings.Contains(msg, "permission"), strings.Contains(msg, "auth"):
		return KindPermission
	}

	return KindUnknown
}
