package composer

import (
	"context"
	"log/slog"
)

// Notifier surfaces one-shot, user-visible notices. The presentation
// layer decides how blocking they are; the core only classifies them.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// SlogNotifier routes notices to the structured log. Default when the
// caller injects nothing (headless runs, tests).
type SlogNotifier struct{}

func (SlogNotifier) Info(msg string)  { slog.Info(msg) }
func (SlogNotifier) Warn(msg string)  { slog.Warn(msg) }
func (SlogNotifier) Error(msg string) { slog.Error(msg) }

// ResyncFunc refreshes the authoritative attachment list from the
// backend. Implementations must treat it as an idempotent "set
// authoritative state", never a merge.
type ResyncFunc func(ctx context.Context) error

// DispatchFunc hands a finished message to the external dispatcher.
type DispatchFunc func(text string)
