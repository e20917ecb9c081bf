// Package eventbus distributes dispatch events to every configured sink.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/ports"
)

// Sink is a named publisher, the name is used in logs and errors.
type Sink struct {
	Name      string
	Publisher ports.EventPublisher
}

// FanOut publishes each event to all sinks in order. A failing sink does not stop the
// others from receiving the event.
type FanOut struct {
	sinks  []Sink
	logger *slog.Logger
}

var _ ports.EventPublisher = (*FanOut)(nil)

// NewFanOut skips sinks without a publisher. A nil logger means slog.Default.
func NewFanOut(logger *slog.Logger, sinks ...Sink) *FanOut {
	if logger == nil {
		logger = slog.Default()
	}

	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s.Publisher != nil {
			kept = append(kept, s)
		}
	}

	return &FanOut{
		sinks:  kept,
		logger: logger.With("component", "eventbus"),
	}
}

// Publish returns the joined sink errors, nil when every sink accepted the event.
func (f *FanOut) Publish(ctx context.Context, event events.Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publisher.Publish(ctx, event); err != nil {
			f.logger.ErrorContext(ctx, "sink failed",
				"sink", s.Name,
				"event", event.Name(),
				"error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Sinks returns the names of the configured sinks.
func (f *FanOut) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name
	}
	return names
}
