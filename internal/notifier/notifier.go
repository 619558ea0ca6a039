// Package notifier reports batch-run outcomes over Telegram and accepts
// manual commands via long polling.
package notifier

// Notifier delivers a run report or alert to whoever operates the pipeline.
type Notifier interface {
	Send(text string) error
}

// NoopNotifier is used when Telegram is not configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Send(_ string) error { return nil }
