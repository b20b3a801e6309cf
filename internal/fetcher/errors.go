package fetcher

import (
	"errors"
	"fmt"
)

// Kind классифицирует сбой обращения к внешнему API.
type Kind int

const (
	KindNone Kind = iota
	KindTransport
	KindStatus
	KindDecode
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindUpstream:
		return "upstream"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error описывает типизированный результат неудачного обращения. Вызывающий код
// логирует его и показывает пустую страницу.
type Error struct {
	Kind       Kind
	Upstream   string
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Upstream, e.StatusCode)
	case KindUpstream:
		return fmt.Sprintf("%s: upstream error: %v", e.Upstream, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Upstream, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Upstream строит ошибку для случая, когда API ответило 200, но само
// сообщило о проблеме (status != "ok", response_code != 0 и т.п.).
func Upstream(upstream, reason string) *Error {
	return &Error{Kind: KindUpstream, Upstream: upstream, Err: errors.New(reason)}
}

// KindOf возвращает класс ошибки: KindNone для nil и KindTransport
// для посторонних ошибок.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindTransport
}
