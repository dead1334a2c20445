// Package errs содержит типы ошибок, которыми ядро синхронизации сообщает о сбоях.
// Проверяются через errors.As.
package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ParseError — строка количества или цены из фида не соответствует ожидаемому формату.
type ParseError struct {
	Field   string
	Value   string
	OfferID string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s %q", e.Field, e.Value)
	if e.OfferID != "" {
		msg += fmt.Sprintf(" (offer %s)", e.OfferID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError — некорректный аргумент (размер пакета, колонка фида и т.п.).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError — сбой при обращении к внешнему API: таймаут, обрыв соединения,
// неуспешный HTTP-статус или несогласованный ответ пагинации.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout сообщает, был ли сбой вызван истечением времени ожидания.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// IsTimeout проверяет всю цепочку ошибок на таймаут транспорта.
func IsTimeout(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConnection проверяет, что транспорт не смог установить соединение или получить ответ.
func IsConnection(err error) bool {
	var te *TransportError
	if !errors.As(err, &te) || te.StatusCode != 0 {
		return false
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(te.Err, &opErr) || errors.As(te.Err, &dnsErr)
}
