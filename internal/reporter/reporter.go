// Package reporter отправляет ошибки обработки событий во внешний трекер.
package reporter

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter принимает ошибку с тегами контекста.
type Reporter interface {
	Capture(err error, tags map[string]string)
	Flush(timeout time.Duration)
}

// Nop ничего не отправляет. Используется, когда трекер не настроен.
type Nop struct{}

func (Nop) Capture(error, map[string]string) {}
func (Nop) Flush(time.Duration)               {}

// Sentry отправляет ошибки в Sentry.
type Sentry struct {
	hub *sentry.Hub
}

// New возвращает Sentry-репортер для dsn или Nop, если dsn пуст.
func New(dsn, env string) (Reporter, error) {
	const op = "reporter.New"

	if dsn == "" {
		return Nop{}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Capture(err error, tags map[string]string) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		s.hub.CaptureException(err)
	})
}

func (s *Sentry) Flush(timeout time.Duration) {
	s.hub.Flush(timeout)
}
