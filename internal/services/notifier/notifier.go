package notifier

import (
	"sentinel-ingest-go/internal/config"
)

// Notifier is the best-effort dispatch contract. One attempt, no retry;
// a failure is logged by the caller and never fails an accepted event.
type Notifier interface {
	Send(address, subject, body string) error
}

// New returns the configured backend, or a no-op notifier when
// dispatch is disabled
func New(cfg *config.Config) Notifier {
	if !cfg.NotifierEnabled {
		return &NoopNotifier{}
	}
	return NewSMTPNotifier(cfg)
}

// NoopNotifier swallows sends. Used when dispatch is disabled and in
// tests.
type NoopNotifier struct{}

func (n *NoopNotifier) Send(address, subject, body string) error {
	return nil
}
