package etu

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork — таймаут или ошибка соединения.
	ErrNetwork = errors.New("etu: network failure")
	// ErrUpstream — API ответило не 200 или прислало битый JSON.
	ErrUpstream = errors.New("etu: upstream failure")
)

type Kind int

const (
	KindNetwork Kind = iota + 1
	KindUpstream
)

// Error описывает неудачный запрос к API. Сопоставляется с ErrNetwork/ErrUpstream через errors.Is.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("etu %s: status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("etu %s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("etu %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("etu %s: failed", e.Op)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrUpstream:
		return e.Kind == KindUpstream
	}
	return false
}

func networkError(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

func upstreamError(op string, status int, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Status: status, Err: err}
}

// IsFailure сообщает, что ошибка пришла из API (сеть или ответ), а не из логики бота.
func IsFailure(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrUpstream)
}
